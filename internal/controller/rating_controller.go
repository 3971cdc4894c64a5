package controller

import (
	"course_catalog_backend/internal/service"
	"course_catalog_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RatingController struct {
	Service *service.RatingService
}

func NewRatingController(s *service.RatingService) *RatingController {
	return &RatingController{Service: s}
}

type RateRequest struct {
	Score int `json:"score" binding:"required"`
}

// GetCourseRating godoc
// @Summary 课程评分汇总
// @Tags 评分
// @Produce json
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/rating [get]
func (c *RatingController) GetCourseRating(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	rating, err := c.Service.CourseRating(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, rating)
}

// RateCourse godoc
// @Summary 为课程评分（1-5，重复评分覆盖）
// @Tags 评分
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param request body RateRequest true "评分"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/rating [post]
func (c *RatingController) RateCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req RateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	rating, err := c.Service.RateCourse(ctx.Request.Context(), util.GetUserFromContext(ctx), id, req.Score)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, rating)
}

// GetMyRating godoc
// @Summary 当前用户对课程的评分，未评分为0
// @Tags 评分
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/rating/me [get]
func (c *RatingController) GetMyRating(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	score, err := c.Service.UserScore(ctx.Request.Context(), util.GetUserFromContext(ctx), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"score": score})
}
