package service

import (
	"context"
	"course_catalog_backend/internal/model"
	"course_catalog_backend/internal/repository"
	"course_catalog_backend/pkg/logger"
	"course_catalog_backend/pkg/monitoring"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ThumbnailHook 课程删除或更换缩略图后清理存储中的旧文件。
// 清理发生在事务提交之后，回滚的保存不会误删仍被引用的文件
type ThumbnailHook struct {
	repository.NopCourseHook
	Storage *StorageService
}

func NewThumbnailHook(storage *StorageService) *ThumbnailHook {
	return &ThumbnailHook{Storage: storage}
}

func (h *ThumbnailHook) AfterSave(ctx context.Context, old, cur *model.Course) error {
	// 新建时没有旧文件
	if old == nil || old.Thumbnail == "" || old.Thumbnail == cur.Thumbnail {
		return nil
	}
	return h.remove(ctx, old.Thumbnail, "replaced", cur.ID)
}

func (h *ThumbnailHook) AfterDelete(ctx context.Context, deleted *model.Course) error {
	if deleted.Thumbnail == "" {
		return nil
	}
	return h.remove(ctx, deleted.Thumbnail, "deleted", deleted.ID)
}

func (h *ThumbnailHook) remove(ctx context.Context, path, reason string, courseID uint) error {
	removed, err := h.Storage.DeleteIfExists(ctx, path)
	if err != nil {
		return fmt.Errorf("delete thumbnail %s: %w", path, err)
	}
	if removed {
		monitoring.ThumbnailDeletions.WithLabelValues(reason).Inc()
		logger.Log.Info("Thumbnail removed",
			zap.Uint("course_id", courseID),
			zap.String("path", path),
			zap.String("reason", reason),
		)
	}
	return nil
}

// CourseCacheHook 课程变更后清除详情缓存
type CourseCacheHook struct {
	repository.NopCourseHook
	Redis *redis.Client
}

func NewCourseCacheHook(rdb *redis.Client) *CourseCacheHook {
	return &CourseCacheHook{Redis: rdb}
}

func (h *CourseCacheHook) AfterSave(ctx context.Context, old, cur *model.Course) error {
	keys := []string{courseCacheKey(cur.Slug)}
	if old != nil && old.Slug != cur.Slug {
		keys = append(keys, courseCacheKey(old.Slug))
	}
	h.evict(ctx, keys...)
	return nil
}

func (h *CourseCacheHook) AfterDelete(ctx context.Context, deleted *model.Course) error {
	h.evict(ctx, courseCacheKey(deleted.Slug))
	return nil
}

func (h *CourseCacheHook) evict(ctx context.Context, keys ...string) {
	if h.Redis == nil {
		return
	}
	evictKeys(ctx, h.Redis, keys...)
}

// cacheEvicter *redis.Client 满足该接口
type cacheEvicter interface {
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// evictKeys 缓存失效失败只记录日志，TTL 兜底
func evictKeys(ctx context.Context, cache cacheEvicter, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := cache.Del(ctx, keys...).Err(); err != nil {
		logger.Log.Warn("Failed to evict course cache", zap.Strings("keys", keys), zap.Error(err))
	}
}

const courseCacheKeyPrefix = "course:slug:"

func courseCacheKey(slug string) string {
	return courseCacheKeyPrefix + slug
}
