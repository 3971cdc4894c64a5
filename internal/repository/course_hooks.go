package repository

import (
	"context"
	"course_catalog_backend/internal/model"
	"course_catalog_backend/internal/util"

	"gorm.io/gorm"
)

// CourseHook 课程生命周期事件，由 CourseRepository 在固定时机显式调用
//
//	BeforeSave  事务内、写入前调用，old 为 nil 表示新建
//	AfterSave   提交后调用
//	AfterDelete 提交后调用，包括分类级联删除的课程
type CourseHook interface {
	BeforeSave(tx *gorm.DB, old, cur *model.Course) error
	AfterSave(ctx context.Context, old, cur *model.Course) error
	AfterDelete(ctx context.Context, deleted *model.Course) error
}

// NopCourseHook 嵌入后只需实现关心的事件
type NopCourseHook struct{}

func (NopCourseHook) BeforeSave(tx *gorm.DB, old, cur *model.Course) error { return nil }

func (NopCourseHook) AfterSave(ctx context.Context, old, cur *model.Course) error { return nil }

func (NopCourseHook) AfterDelete(ctx context.Context, deleted *model.Course) error { return nil }

// SlugHook 首次保存时生成 slug，已有 slug 不会被覆盖
type SlugHook struct {
	NopCourseHook
	Generator *util.SlugGenerator
}

func NewSlugHook(generator *util.SlugGenerator) *SlugHook {
	return &SlugHook{Generator: generator}
}

func (h *SlugHook) BeforeSave(tx *gorm.DB, old, cur *model.Course) error {
	// 已保存过的 slug 不随更新改变，清空或改写都会被还原
	if old != nil && old.Slug != "" {
		cur.Slug = old.Slug
		return nil
	}
	if cur.Slug != "" {
		return nil
	}

	slug, err := h.Generator.Generate(cur.Title, func(candidate string) (bool, error) {
		return slugTaken(tx, candidate, cur.ID)
	})
	if err != nil {
		return err
	}
	cur.Slug = slug
	return nil
}

func slugTaken(tx *gorm.DB, slug string, excludeID uint) (bool, error) {
	var count int64
	q := tx.Model(&model.Course{}).Where("slug = ?", slug)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
