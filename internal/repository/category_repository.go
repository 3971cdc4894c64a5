package repository

import (
	"context"
	"course_catalog_backend/internal/model"
	"course_catalog_backend/internal/util"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoryRepository struct {
	DB      *gorm.DB
	Courses *CourseRepository
}

func NewCategoryRepository(db *gorm.DB, courses *CourseRepository) *CategoryRepository {
	return &CategoryRepository{DB: db, Courses: courses}
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	return r.DB.WithContext(ctx).Create(category).Error
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.DB.WithContext(ctx).Order("name asc").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uint) (*model.Category, error) {
	var category model.Category
	err := r.DB.WithContext(ctx).First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *model.Category) error {
	return r.DB.WithContext(ctx).Save(category).Error
}

func (r *CategoryRepository) CourseSlugs(ctx context.Context, id uint) ([]string, error) {
	var slugs []string
	err := r.DB.WithContext(ctx).Model(&model.Course{}).Where("category_id = ?", id).Order("id asc").Pluck("slug", &slugs).Error
	return slugs, err
}

// Delete 删除分类时级联删除其下课程，课程的 AfterDelete 同样会触发
func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	var courses []model.Course
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category model.Category
		err := tx.First(&category, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCategoryNotFound
		}
		if err != nil {
			return err
		}

		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("category_id = ?", id).Find(&courses).Error; err != nil {
			return err
		}
		ids := make([]uint, 0, len(courses))
		for _, c := range courses {
			ids = append(ids, c.ID)
		}
		if err := deleteCourses(tx, ids); err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
	if err != nil {
		return err
	}
	return r.Courses.afterDelete(ctx, courses)
}
