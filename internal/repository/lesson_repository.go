package repository

import (
	"context"
	"course_catalog_backend/internal/model"
	"course_catalog_backend/internal/util"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const lessonContentJoinTable = "lessons_video_link"

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

// Create 创建课时并关联已有的内容
func (r *LessonRepository) Create(ctx context.Context, lesson *model.Lesson) error {
	contents := lesson.Contents
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(lesson).Error; err != nil {
			return err
		}
		if len(contents) == 0 {
			return nil
		}
		return tx.Model(lesson).Association("Contents").Append(&contents)
	})
}

func (r *LessonRepository) FindByID(ctx context.Context, id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.WithContext(ctx).
		Preload("Contents", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		First(&lesson, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *LessonRepository) FindByCourse(ctx context.Context, courseID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.WithContext(ctx).
		Preload("Contents", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Where("course_id = ?", courseID).
		Order("id asc").
		Find(&lessons).Error
	return lessons, err
}

// Update 只更新课时本身，关联通过 Attach/Detach/Replace 维护
func (r *LessonRepository) Update(ctx context.Context, lesson *model.Lesson) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Save(lesson).Error
}

func (r *LessonRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Lesson{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return util.ErrLessonNotFound
		}
		return deleteLessons(tx, []uint{id})
	})
}

func (r *LessonRepository) AttachContents(ctx context.Context, lessonID uint, contents []model.LessonContent) error {
	if len(contents) == 0 {
		return nil
	}
	return r.association(ctx, lessonID).Append(&contents)
}

func (r *LessonRepository) DetachContents(ctx context.Context, lessonID uint, contents []model.LessonContent) error {
	if len(contents) == 0 {
		return nil
	}
	return r.association(ctx, lessonID).Delete(&contents)
}

func (r *LessonRepository) ReplaceContents(ctx context.Context, lessonID uint, contents []model.LessonContent) error {
	assoc := r.association(ctx, lessonID)
	if len(contents) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(&contents)
}

func (r *LessonRepository) association(ctx context.Context, lessonID uint) *gorm.Association {
	lesson := &model.Lesson{BaseModel: model.BaseModel{ID: lessonID}}
	return r.DB.WithContext(ctx).Model(lesson).Association("Contents")
}

func deleteLessons(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Exec("DELETE FROM "+lessonContentJoinTable+" WHERE lesson_id IN ?", ids).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&model.Lesson{}).Error
}
