package controller

import (
	"course_catalog_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// respondError 将服务层错误映射为 HTTP 状态码
func respondError(ctx *gin.Context, err error) {
	switch {
	case util.IsValidationError(err):
		util.BadRequest(ctx, err.Error())
	case util.IsNotFound(err):
		util.Error(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, util.ErrUnauthorized):
		util.Unauthorized(ctx)
	case errors.Is(err, util.ErrPermissionDenied), errors.Is(err, util.ErrInstructorNotFound):
		util.Forbidden(ctx)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		util.Error(ctx, http.StatusConflict, "resource already exists")
	case errors.Is(err, util.ErrSlugExhausted):
		util.Error(ctx, http.StatusConflict, "could not allocate a unique slug, set one explicitly")
	default:
		util.LogInternalError(ctx, err)
	}
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id := util.MustParseUint(ctx.Param(name))
	if id == 0 {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return id, true
}
