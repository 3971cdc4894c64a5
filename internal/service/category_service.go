package service

import (
	"context"
	"course_catalog_backend/internal/model"
	"course_catalog_backend/internal/repository"
	"course_catalog_backend/internal/util"
	"course_catalog_backend/pkg/logger"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type CategoryService struct {
	Repo  *repository.CategoryRepository
	Cache cacheEvicter
}

// NewCategoryService rdb 为 nil 时不处理课程详情缓存
func NewCategoryService(repo *repository.CategoryRepository, rdb *redis.Client) *CategoryService {
	s := &CategoryService{Repo: repo}
	if rdb != nil {
		s.Cache = rdb
	}
	return s
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.Repo.FindAll(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id uint) (*model.Category, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, name string) (*model.Category, error) {
	name, err := normalizeCategoryName(name)
	if err != nil {
		return nil, err
	}
	category := &model.Category{Name: name}
	if err := s.Repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Rename(ctx context.Context, id uint, name string) (*model.Category, error) {
	name, err := normalizeCategoryName(name)
	if err != nil {
		return nil, err
	}
	category, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	category.Name = name
	if err := s.Repo.Update(ctx, category); err != nil {
		return nil, err
	}
	s.evictCourses(ctx, id)
	return category, nil
}

// evictCourses 缓存的课程详情内嵌分类，改名后需要失效
func (s *CategoryService) evictCourses(ctx context.Context, categoryID uint) {
	if s.Cache == nil {
		return
	}
	slugs, err := s.Repo.CourseSlugs(ctx, categoryID)
	if err != nil {
		logger.Log.Warn("Failed to list courses for cache eviction", zap.Uint("category_id", categoryID), zap.Error(err))
		return
	}
	keys := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		keys = append(keys, courseCacheKey(slug))
	}
	evictKeys(ctx, s.Cache, keys...)
}

// Delete 分类下的课程会一并删除
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	err := s.Repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrCourseHook) {
		logger.Log.Error("Category deleted but course cleanup failed", zap.Uint("category_id", id), zap.Error(err))
		return nil
	}
	return err
}

func normalizeCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > 20 {
		return "", util.ErrInvalidCategoryName
	}
	return name, nil
}
