package repository

import (
	"context"
	"course_catalog_backend/internal/model"
	"course_catalog_backend/internal/util"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LessonContentRepository struct {
	DB *gorm.DB
}

func NewLessonContentRepository(db *gorm.DB) *LessonContentRepository {
	return &LessonContentRepository{DB: db}
}

func (r *LessonContentRepository) Create(ctx context.Context, content *model.LessonContent) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(content).Error
}

func (r *LessonContentRepository) FindAll(ctx context.Context) ([]model.LessonContent, error) {
	var contents []model.LessonContent
	err := r.DB.WithContext(ctx).Order("id asc").Find(&contents).Error
	return contents, err
}

func (r *LessonContentRepository) FindByID(ctx context.Context, id uint) (*model.LessonContent, error) {
	var content model.LessonContent
	err := r.DB.WithContext(ctx).First(&content, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLessonContentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &content, nil
}

// FindByIDs 任一 ID 不存在时返回 ErrLessonContentNotFound
func (r *LessonContentRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.LessonContent, error) {
	var contents []model.LessonContent
	if len(ids) == 0 {
		return contents, nil
	}
	unique := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Order("id asc").Find(&contents).Error; err != nil {
		return nil, err
	}
	if len(contents) != len(unique) {
		return nil, util.ErrLessonContentNotFound
	}
	return contents, nil
}

// FindLessons 引用该内容的所有课时
func (r *LessonContentRepository) FindLessons(ctx context.Context, contentID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	content := &model.LessonContent{BaseModel: model.BaseModel{ID: contentID}}
	err := r.DB.WithContext(ctx).Model(content).Order("lessons.id asc").Association("Lessons").Find(&lessons)
	return lessons, err
}

func (r *LessonContentRepository) Update(ctx context.Context, content *model.LessonContent) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Save(content).Error
}

// Delete 删除内容并解除与课时的关联，课时本身保留
func (r *LessonContentRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec("DELETE FROM "+lessonContentJoinTable+" WHERE lesson_content_id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		res = tx.Delete(&model.LessonContent{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrLessonContentNotFound
		}
		return nil
	})
}
