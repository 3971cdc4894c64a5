package repository

import (
	"context"
	"course_catalog_backend/internal/model"
	"course_catalog_backend/internal/util"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrCourseHook 记录已提交，但提交后的生命周期处理失败
var ErrCourseHook = errors.New("course lifecycle hook failed")

type CourseFilter struct {
	CategoryID   uint
	InstructorID uint
	Language     string
	Search       string
	Page         int
	Limit        int
}

type CourseRepository struct {
	DB    *gorm.DB
	hooks []CourseHook
}

func NewCourseRepository(db *gorm.DB, hooks ...CourseHook) *CourseRepository {
	return &CourseRepository{DB: db, hooks: hooks}
}

// Save 新建或更新课程。更新时在事务内锁定旧记录，
// BeforeSave 在写入前执行，AfterSave 在提交后执行并拿到旧记录
func (r *CourseRepository) Save(ctx context.Context, course *model.Course) error {
	var old *model.Course
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if course.ID != 0 {
			var prev model.Course
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&prev, course.ID).Error
			switch {
			case err == nil:
				old = &prev
			case errors.Is(err, gorm.ErrRecordNotFound):
				// 旧记录已不存在，按新建处理
			default:
				return err
			}
		}

		for _, h := range r.hooks {
			if err := h.BeforeSave(tx, old, course); err != nil {
				return err
			}
		}

		if old == nil {
			return tx.Omit(clause.Associations).Create(course).Error
		}
		course.Timestamp = old.Timestamp
		return tx.Omit(clause.Associations).Save(course).Error
	})
	if err != nil {
		return err
	}

	var hookErrs []error
	for _, h := range r.hooks {
		if err := h.AfterSave(ctx, old, course); err != nil {
			hookErrs = append(hookErrs, err)
		}
	}
	return joinHookErrors(hookErrs)
}

func (r *CourseRepository) FindByID(ctx context.Context, id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.WithContext(ctx).Preload("Category").Preload("Instructor").First(&course, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) FindBySlug(ctx context.Context, slug string) (*model.Course, error) {
	var course model.Course
	err := r.DB.WithContext(ctx).Preload("Category").Preload("Instructor").
		Where("slug = ?", slug).First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	return slugTaken(r.DB.WithContext(ctx), slug, 0)
}

func (r *CourseRepository) List(ctx context.Context, f CourseFilter) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64

	query := r.DB.WithContext(ctx).Model(&model.Course{})
	if f.CategoryID != 0 {
		query = query.Where("category_id = ?", f.CategoryID)
	}
	if f.InstructorID != 0 {
		query = query.Where("instructor_id = ?", f.InstructorID)
	}
	if f.Language != "" {
		query = query.Where("language = ?", f.Language)
	}
	if f.Search != "" {
		query = query.Where("title LIKE ?", "%"+f.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * f.Limit).Limit(f.Limit)
	}

	err := query.Preload("Category").Order("timestamp desc, id desc").Find(&courses).Error
	return courses, total, err
}

// Delete 删除课程及其课时、评分，提交后触发 AfterDelete
func (r *CourseRepository) Delete(ctx context.Context, id uint) (*model.Course, error) {
	var deleted model.Course
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&deleted, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		if err != nil {
			return err
		}
		return deleteCourses(tx, []uint{id})
	})
	if err != nil {
		return nil, err
	}

	return &deleted, r.afterDelete(ctx, []model.Course{deleted})
}

func (r *CourseRepository) afterDelete(ctx context.Context, courses []model.Course) error {
	var hookErrs []error
	for i := range courses {
		for _, h := range r.hooks {
			if err := h.AfterDelete(ctx, &courses[i]); err != nil {
				hookErrs = append(hookErrs, err)
			}
		}
	}
	return joinHookErrors(hookErrs)
}

// deleteCourses 级联删除课时、课时与内容的关联、评分以及课程本身
func deleteCourses(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	var lessonIDs []uint
	if err := tx.Model(&model.Lesson{}).Where("course_id IN ?", ids).Pluck("id", &lessonIDs).Error; err != nil {
		return err
	}
	if err := deleteLessons(tx, lessonIDs); err != nil {
		return err
	}
	if err := deleteRatings(tx, model.CourseContentType, ids); err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&model.Course{}).Error
}

func joinHookErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrCourseHook, errors.Join(errs...))
}
