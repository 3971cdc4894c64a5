package controller

import (
	"course_catalog_backend/internal/config"
	"course_catalog_backend/internal/repository"
	"course_catalog_backend/internal/service"
	"course_catalog_backend/internal/util"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	Service *service.CourseService
	Cfg     *config.CatalogConfig
}

func NewCourseController(s *service.CourseService, cfg *config.CatalogConfig) *CourseController {
	return &CourseController{Service: s, Cfg: cfg}
}

// CourseForm 课程表单，缩略图通过 thumbnail 文件字段上传
// swagger:model CourseForm
type CourseForm struct {
	Title           string `form:"title" binding:"required"`
	Slug            string `form:"slug"`
	Description     string `form:"description"`
	Price           string `form:"price"`
	OfferPrice      string `form:"offerPrice"`
	Language        string `form:"language"`
	CategoryID      uint   `form:"categoryId" binding:"required"`
	RemoveThumbnail bool   `form:"removeThumbnail"`
}

func (f *CourseForm) toInput() (service.CourseInput, error) {
	price, err := util.ParseOptionalFloat(f.Price)
	if err != nil {
		return service.CourseInput{}, util.ErrInvalidPrice
	}
	offer, err := util.ParseOptionalFloat(f.OfferPrice)
	if err != nil {
		return service.CourseInput{}, util.ErrInvalidPrice
	}
	return service.CourseInput{
		Title:           f.Title,
		Slug:            f.Slug,
		Description:     f.Description,
		Price:           price,
		OfferPrice:      offer,
		Language:        f.Language,
		CategoryID:      f.CategoryID,
		RemoveThumbnail: f.RemoveThumbnail,
	}, nil
}

// bindCourseForm 缩略图可选
func bindCourseForm(ctx *gin.Context) (service.CourseInput, bool) {
	var form CourseForm
	if err := ctx.ShouldBind(&form); err != nil {
		util.BadRequest(ctx, err.Error())
		return service.CourseInput{}, false
	}
	in, err := form.toInput()
	if err != nil {
		respondError(ctx, err)
		return service.CourseInput{}, false
	}
	return in, true
}

// ListCourses godoc
// @Summary 课程列表
// @Tags 课程
// @Produce json
// @Param categoryId query int false "分类ID"
// @Param instructorId query int false "讲师ID"
// @Param language query string false "语言"
// @Param search query string false "标题关键字"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Failure 400 {object} util.Response
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	page, limit := util.ParsePage(ctx.Query("page"), ctx.Query("limit"), c.Cfg.DefaultPageSize, c.Cfg.MaxPageSize)
	categoryID, err := util.ParseOptionalID(ctx.Query("categoryId"))
	if err != nil {
		respondError(ctx, fmt.Errorf("%w: categoryId", util.ErrInvalidFilter))
		return
	}
	instructorID, err := util.ParseOptionalID(ctx.Query("instructorId"))
	if err != nil {
		respondError(ctx, fmt.Errorf("%w: instructorId", util.ErrInvalidFilter))
		return
	}
	filter := repository.CourseFilter{
		CategoryID:   categoryID,
		InstructorID: instructorID,
		Language:     ctx.Query("language"),
		Search:       ctx.Query("search"),
		Page:         page,
		Limit:        limit,
	}

	courses, total, err := c.Service.List(ctx.Request.Context(), filter)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: courses, Total: total, Page: page, Limit: limit})
}

// GetCourseBySlug godoc
// @Summary 课程详情
// @Tags 课程
// @Produce json
// @Param slug path string true "课程 slug"
// @Success 200 {object} util.Response{data=service.CourseView}
// @Failure 404 {object} util.Response
// @Router /courses/{slug} [get]
func (c *CourseController) GetCourseBySlug(ctx *gin.Context) {
	course, err := c.Service.GetBySlug(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// GetCourse godoc
// @Summary 按ID获取课程
// @Tags 课程
// @Produce json
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response{data=service.CourseView}
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	course, err := c.Service.GetByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// CreateCourse godoc
// @Summary 创建课程
// @Tags 课程
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param title formData string true "标题"
// @Param slug formData string false "slug，留空自动生成"
// @Param description formData string false "简介"
// @Param price formData number false "价格"
// @Param offerPrice formData number false "优惠价"
// @Param language formData string false "语言"
// @Param categoryId formData int true "分类ID"
// @Param thumbnail formData file false "缩略图"
// @Success 201 {object} util.Response{data=service.CourseView}
// @Failure 400 {object} util.Response
// @Router /api/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	in, ok := bindCourseForm(ctx)
	if !ok {
		return
	}
	file, ok := optionalFormFile(ctx, "thumbnail")
	if !ok {
		return
	}

	course, err := c.Service.Create(ctx.Request.Context(), util.GetUserFromContext(ctx), in, file)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// UpdateCourse godoc
// @Summary 更新课程
// @Description 整体替换课程字段；上传新缩略图或 removeThumbnail=true 时旧文件会被删除
// @Tags 课程
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response{data=service.CourseView}
// @Router /api/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	in, ok := bindCourseForm(ctx)
	if !ok {
		return
	}
	file, ok := optionalFormFile(ctx, "thumbnail")
	if !ok {
		return
	}

	course, err := c.Service.Update(ctx.Request.Context(), util.GetUserFromContext(ctx), id, in, file)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// DeleteCourse godoc
// @Summary 删除课程
// @Tags 课程
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.Service.Delete(ctx.Request.Context(), util.GetUserFromContext(ctx), id); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// optionalFormFile 未上传文件时返回 nil
func optionalFormFile(ctx *gin.Context, name string) (*multipart.FileHeader, bool) {
	file, err := ctx.FormFile(name)
	switch {
	case err == nil:
		return file, true
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return nil, true
	default:
		util.BadRequest(ctx, err.Error())
		return nil, false
	}
}
