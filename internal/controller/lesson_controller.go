package controller

import (
	"context"
	"course_catalog_backend/internal/model"
	"course_catalog_backend/internal/service"
	"course_catalog_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	Service *service.LessonService
}

func NewLessonController(s *service.LessonService) *LessonController {
	return &LessonController{Service: s}
}

type CreateLessonRequest struct {
	Title      string `json:"title" binding:"required"`
	ContentIDs []uint `json:"contentIds"`
}

type RenameLessonRequest struct {
	Title string `json:"title" binding:"required"`
}

type LessonContentsRequest struct {
	ContentIDs []uint `json:"contentIds"`
}

type LessonContentRequest struct {
	Title     string `json:"title"`
	VideoLink string `json:"videoLink" binding:"required"`
}

// ListCourseLessons godoc
// @Summary 课程的课时列表
// @Tags 课时
// @Produce json
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/lessons [get]
func (c *LessonController) ListCourseLessons(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	lessons, err := c.Service.ListByCourse(ctx.Request.Context(), courseID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}

// CreateLesson godoc
// @Summary 创建课时
// @Tags 课时
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param request body CreateLessonRequest true "课时"
// @Success 201 {object} util.Response
// @Router /api/courses/{id}/lessons [post]
func (c *LessonController) CreateLesson(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req CreateLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	lesson, err := c.Service.CreateLesson(ctx.Request.Context(), util.GetUserFromContext(ctx), courseID, req.Title, req.ContentIDs)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

// GetLesson godoc
// @Summary 课时详情（含视频内容）
// @Tags 课时
// @Produce json
// @Param id path int true "课时ID"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id} [get]
func (c *LessonController) GetLesson(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	lesson, err := c.Service.GetLesson(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// RenameLesson godoc
// @Summary 修改课时标题
// @Tags 课时
// @Accept json
// @Security ApiKeyAuth
// @Param id path int true "课时ID"
// @Param request body RenameLessonRequest true "标题"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id} [put]
func (c *LessonController) RenameLesson(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req RenameLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	lesson, err := c.Service.RenameLesson(ctx.Request.Context(), util.GetUserFromContext(ctx), id, req.Title)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// DeleteLesson godoc
// @Summary 删除课时
// @Tags 课时
// @Security ApiKeyAuth
// @Param id path int true "课时ID"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id} [delete]
func (c *LessonController) DeleteLesson(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.Service.DeleteLesson(ctx.Request.Context(), util.GetUserFromContext(ctx), id); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type contentsOp func(ctx context.Context, claims *util.Claims, lessonID uint, ids []uint) (*model.Lesson, error)

func (c *LessonController) changeContents(ctx *gin.Context, op contentsOp) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req LessonContentsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	lesson, err := op(ctx.Request.Context(), util.GetUserFromContext(ctx), id, req.ContentIDs)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// AttachContents godoc
// @Summary 为课时添加视频内容
// @Tags 课时
// @Accept json
// @Security ApiKeyAuth
// @Param id path int true "课时ID"
// @Param request body LessonContentsRequest true "内容ID"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id}/contents [post]
func (c *LessonController) AttachContents(ctx *gin.Context) {
	c.changeContents(ctx, c.Service.AttachContents)
}

// DetachContents godoc
// @Summary 移除课时的视频内容（内容本身保留）
// @Tags 课时
// @Accept json
// @Security ApiKeyAuth
// @Param id path int true "课时ID"
// @Param request body LessonContentsRequest true "内容ID"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id}/contents [delete]
func (c *LessonController) DetachContents(ctx *gin.Context) {
	c.changeContents(ctx, c.Service.DetachContents)
}

// ReplaceContents godoc
// @Summary 重设课时的视频内容
// @Tags 课时
// @Accept json
// @Security ApiKeyAuth
// @Param id path int true "课时ID"
// @Param request body LessonContentsRequest true "内容ID"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id}/contents [put]
func (c *LessonController) ReplaceContents(ctx *gin.Context) {
	c.changeContents(ctx, c.Service.ReplaceContents)
}

// ListContents godoc
// @Summary 视频内容列表
// @Tags 课时内容
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/lesson-contents [get]
func (c *LessonController) ListContents(ctx *gin.Context) {
	contents, err := c.Service.ListContents(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, contents)
}

// GetContent godoc
// @Summary 视频内容详情（含引用它的课时）
// @Tags 课时内容
// @Produce json
// @Param id path int true "内容ID"
// @Success 200 {object} util.Response
// @Router /api/lesson-contents/{id} [get]
func (c *LessonController) GetContent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	content, err := c.Service.GetContent(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, content)
}

// CreateContent godoc
// @Summary 创建视频内容
// @Tags 课时内容
// @Accept json
// @Security ApiKeyAuth
// @Param request body LessonContentRequest true "内容"
// @Success 201 {object} util.Response
// @Router /api/lesson-contents [post]
func (c *LessonController) CreateContent(ctx *gin.Context) {
	var req LessonContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	content, err := c.Service.CreateContent(ctx.Request.Context(), util.GetUserFromContext(ctx), req.Title, req.VideoLink)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, content)
}

// UpdateContent godoc
// @Summary 更新视频内容
// @Description 内容被多个课时共享时，需要能管理所有引用它的课程
// @Tags 课时内容
// @Accept json
// @Security ApiKeyAuth
// @Param id path int true "内容ID"
// @Param request body LessonContentRequest true "内容"
// @Success 200 {object} util.Response
// @Router /api/lesson-contents/{id} [put]
func (c *LessonController) UpdateContent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req LessonContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	content, err := c.Service.UpdateContent(ctx.Request.Context(), util.GetUserFromContext(ctx), id, req.Title, req.VideoLink)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, content)
}

// DeleteContent godoc
// @Summary 删除视频内容
// @Description 内容被多个课时共享时，需要能管理所有引用它的课程
// @Tags 课时内容
// @Security ApiKeyAuth
// @Param id path int true "内容ID"
// @Success 200 {object} util.Response
// @Router /api/lesson-contents/{id} [delete]
func (c *LessonController) DeleteContent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.Service.DeleteContent(ctx.Request.Context(), util.GetUserFromContext(ctx), id); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
