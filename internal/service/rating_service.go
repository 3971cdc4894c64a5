package service

import (
	"context"
	"course_catalog_backend/internal/model"
	"course_catalog_backend/internal/repository"
	"course_catalog_backend/internal/util"
	"course_catalog_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type RatingService struct {
	Repo    *repository.RatingRepository
	Courses *repository.CourseRepository
	Redis   *redis.Client
}

func NewRatingService(repo *repository.RatingRepository, courses *repository.CourseRepository, rdb *redis.Client) *RatingService {
	return &RatingService{Repo: repo, Courses: courses, Redis: rdb}
}

// RateCourse 同一用户重复评分会覆盖之前的分数
func (s *RatingService) RateCourse(ctx context.Context, claims *util.Claims, courseID uint, score int) (*model.Rating, error) {
	if claims == nil {
		return nil, util.ErrUnauthorized
	}
	if score < model.MinRatingScore || score > model.MaxRatingScore {
		return nil, util.ErrInvalidRatingScore
	}
	course, err := s.Courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	rating, err := s.Repo.Rate(ctx, claims.UserID, course, score)
	if err != nil {
		return nil, err
	}

	// 详情缓存中带有评分汇总
	if s.Redis != nil {
		if err := s.Redis.Del(ctx, courseCacheKey(course.Slug)).Err(); err != nil {
			logger.Log.Warn("Failed to evict course cache", zap.String("slug", course.Slug), zap.Error(err))
		}
	}
	return rating, nil
}

func (s *RatingService) CourseRating(ctx context.Context, courseID uint) (*model.Rating, error) {
	course, err := s.Courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return s.Repo.FindAggregate(ctx, course)
}

func (s *RatingService) UserScore(ctx context.Context, claims *util.Claims, courseID uint) (int, error) {
	if claims == nil {
		return 0, util.ErrUnauthorized
	}
	course, err := s.Courses.FindByID(ctx, courseID)
	if err != nil {
		return 0, err
	}
	return s.Repo.FindUserScore(ctx, claims.UserID, course)
}
