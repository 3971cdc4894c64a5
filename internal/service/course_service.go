package service

import (
	"context"
	"course_catalog_backend/internal/config"
	"course_catalog_backend/internal/model"
	"course_catalog_backend/internal/repository"
	"course_catalog_backend/internal/util"
	"course_catalog_backend/pkg/logger"
	"course_catalog_backend/pkg/tracing"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// CourseInput 创建和更新课程的参数，更新时为整体替换；slug 创建后不可修改，更新时留空或传原值
type CourseInput struct {
	Title           string
	Slug            string
	Description     string
	Price           *float64
	OfferPrice      *float64
	Language        string
	CategoryID      uint
	RemoveThumbnail bool
}

// CourseView 课程及其访问地址、评分汇总
type CourseView struct {
	model.Course
	URL          string        `json:"url"`
	ThumbnailURL string        `json:"thumbnailUrl,omitempty"`
	Rating       *model.Rating `json:"rating,omitempty"`
}

type CourseService struct {
	Repo       *repository.CourseRepository
	Categories *repository.CategoryRepository
	Users      *repository.UserRepository
	Ratings    *repository.RatingRepository
	Storage    *StorageService
	Redis      *redis.Client
	Cfg        *config.CatalogConfig
	Now        func() time.Time
}

func NewCourseService(
	repo *repository.CourseRepository,
	categories *repository.CategoryRepository,
	users *repository.UserRepository,
	ratings *repository.RatingRepository,
	storage *StorageService,
	rdb *redis.Client,
	cfg *config.CatalogConfig,
) *CourseService {
	return &CourseService{
		Repo:       repo,
		Categories: categories,
		Users:      users,
		Ratings:    ratings,
		Storage:    storage,
		Redis:      rdb,
		Cfg:        cfg,
		Now:        time.Now,
	}
}

func (s *CourseService) Create(ctx context.Context, claims *util.Claims, in CourseInput, file *multipart.FileHeader) (*CourseView, error) {
	ctx, span := tracing.Tracer.Start(ctx, "CourseService.Create")
	defer span.End()

	if claims == nil {
		return nil, util.ErrUnauthorized
	}
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}
	if _, err := s.Users.FindByID(ctx, claims.UserID); err != nil {
		return nil, err
	}

	course := &model.Course{
		Title:        in.Title,
		Slug:         in.Slug,
		Description:  in.Description,
		Price:        in.Price,
		OfferPrice:   in.OfferPrice,
		Language:     in.Language,
		CategoryID:   in.CategoryID,
		InstructorID: claims.UserID,
	}

	var uploaded string
	if file != nil {
		p, err := s.uploadThumbnail(ctx, file)
		if err != nil {
			return nil, err
		}
		uploaded = p
		course.Thumbnail = p
	}

	if err := s.save(ctx, course, uploaded); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("course.slug", course.Slug))

	return s.GetByID(ctx, course.ID)
}

func (s *CourseService) Update(ctx context.Context, claims *util.Claims, id uint, in CourseInput, file *multipart.FileHeader) (*CourseView, error) {
	ctx, span := tracing.Tracer.Start(ctx, "CourseService.Update")
	defer span.End()
	span.SetAttributes(attribute.Int("course.id", int(id)))

	existing, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManageCourse(claims, existing) {
		return nil, util.ErrPermissionDenied
	}
	if in.Slug != "" && existing.Slug != "" && in.Slug != existing.Slug {
		return nil, util.ErrSlugImmutable
	}
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	course := *existing
	course.Category = nil
	course.Instructor = nil
	course.Title = in.Title
	if course.Slug == "" {
		course.Slug = in.Slug
	}
	course.Description = in.Description
	course.Price = in.Price
	course.OfferPrice = in.OfferPrice
	course.Language = in.Language
	course.CategoryID = in.CategoryID

	var uploaded string
	switch {
	case file != nil:
		p, err := s.uploadThumbnail(ctx, file)
		if err != nil {
			return nil, err
		}
		uploaded = p
		course.Thumbnail = p
	case in.RemoveThumbnail:
		course.Thumbnail = ""
	}

	if err := s.save(ctx, &course, uploaded); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, course.ID)
}

// save 保存失败时删除本次上传的文件；提交后的清理失败只记录日志
func (s *CourseService) save(ctx context.Context, course *model.Course, uploaded string) error {
	err := s.Repo.Save(ctx, course)
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrCourseHook) {
		logger.Log.Error("Course saved but post-commit cleanup failed",
			zap.Uint("course_id", course.ID),
			zap.Error(err),
		)
		return nil
	}
	if uploaded != "" {
		if _, derr := s.Storage.DeleteIfExists(ctx, uploaded); derr != nil {
			logger.Log.Error("Failed to remove uploaded thumbnail after failed save",
				zap.String("path", uploaded),
				zap.Error(derr),
			)
		}
	}
	return err
}

func (s *CourseService) Delete(ctx context.Context, claims *util.Claims, id uint) error {
	ctx, span := tracing.Tracer.Start(ctx, "CourseService.Delete")
	defer span.End()

	existing, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !canManageCourse(claims, existing) {
		return util.ErrPermissionDenied
	}

	_, err = s.Repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrCourseHook) {
		logger.Log.Error("Course deleted but post-commit cleanup failed",
			zap.Uint("course_id", id),
			zap.Error(err),
		)
		return nil
	}
	return err
}

func (s *CourseService) GetByID(ctx context.Context, id uint) (*CourseView, error) {
	course, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, course)
}

// GetBySlug 课程详情，启用 Redis 时走缓存
func (s *CourseService) GetBySlug(ctx context.Context, slug string) (*CourseView, error) {
	key := courseCacheKey(slug)
	if s.Redis != nil {
		data, err := s.Redis.Get(ctx, key).Bytes()
		if err == nil {
			var cached CourseView
			if json.Unmarshal(data, &cached) == nil {
				return &cached, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("Failed to read course cache", zap.String("key", key), zap.Error(err))
		}
	}

	course, err := s.Repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	v, err := s.view(ctx, course)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(v); err == nil {
			if err := s.Redis.Set(ctx, key, data, s.Cfg.CourseCacheTTL).Err(); err != nil {
				logger.Log.Warn("Failed to write course cache", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return v, nil
}

func (s *CourseService) List(ctx context.Context, f repository.CourseFilter) ([]CourseView, int64, error) {
	courses, total, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	views := make([]CourseView, 0, len(courses))
	for i := range courses {
		views = append(views, s.summary(&courses[i]))
	}
	return views, total, nil
}

func (s *CourseService) summary(course *model.Course) CourseView {
	v := CourseView{Course: *course, URL: course.AbsoluteURL()}
	if course.Thumbnail != "" {
		v.ThumbnailURL = s.Storage.GetURL(course.Thumbnail)
	}
	return v
}

func (s *CourseService) view(ctx context.Context, course *model.Course) (*CourseView, error) {
	v := s.summary(course)
	rating, err := s.Ratings.FindAggregate(ctx, course)
	if err != nil {
		return nil, err
	}
	v.Rating = rating
	return &v, nil
}

func (s *CourseService) validate(ctx context.Context, in CourseInput) error {
	title := strings.TrimSpace(in.Title)
	if title == "" || utf8.RuneCountInString(in.Title) > 250 {
		return util.ErrInvalidTitle
	}
	if in.Slug != "" && (!util.IsValidSlug(in.Slug) || len(in.Slug) > s.Cfg.SlugMaxLength) {
		return util.ErrInvalidSlug
	}
	if utf8.RuneCountInString(in.Language) > 50 {
		return util.ErrInvalidLanguage
	}
	if (in.Price != nil && *in.Price < 0) || (in.OfferPrice != nil && *in.OfferPrice < 0) {
		return util.ErrInvalidPrice
	}
	_, err := s.Categories.FindByID(ctx, in.CategoryID)
	return err
}

// uploadThumbnail 按日期目录保存，返回存储内的相对路径
func (s *CourseService) uploadThumbnail(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if !util.HasImageExtension(file.Filename) {
		return "", util.ErrInvalidThumbnail
	}
	if s.Cfg.MaxThumbnailSize > 0 && file.Size > s.Cfg.MaxThumbnailSize {
		return "", util.ErrThumbnailTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// 深度验证 MIME 类型
	mimeType, err := util.ValidateMimeType(src, []string{util.MimeImage})
	if err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrInvalidThumbnail, err)
	}
	// 重置读取指针
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := path.Join(s.Cfg.ThumbnailDir, s.Now().Format(util.DateFormat), uuid.New().String()+ext)

	if _, err := s.Storage.Upload(ctx, name, src, file.Size, mimeType); err != nil {
		return "", err
	}
	return name, nil
}

func canManageCourse(claims *util.Claims, course *model.Course) bool {
	if claims == nil {
		return false
	}
	return claims.Role == model.Admin || claims.UserID == course.InstructorID
}
