package service

import (
	"context"
	"course_catalog_backend/internal/model"
	"course_catalog_backend/internal/repository"
	"course_catalog_backend/internal/util"
	"strings"
	"unicode/utf8"
)

// LessonService 课时及其视频内容，内容可被多个课时共享
type LessonService struct {
	Lessons  *repository.LessonRepository
	Contents *repository.LessonContentRepository
	Courses  *repository.CourseRepository
}

func NewLessonService(lessons *repository.LessonRepository, contents *repository.LessonContentRepository, courses *repository.CourseRepository) *LessonService {
	return &LessonService{Lessons: lessons, Contents: contents, Courses: courses}
}

func (s *LessonService) CreateLesson(ctx context.Context, claims *util.Claims, courseID uint, title string, contentIDs []uint) (*model.Lesson, error) {
	if err := validateLessonTitle(title); err != nil {
		return nil, err
	}
	if err := s.authorizeCourse(ctx, claims, courseID); err != nil {
		return nil, err
	}
	contents, err := s.Contents.FindByIDs(ctx, contentIDs)
	if err != nil {
		return nil, err
	}

	lesson := &model.Lesson{CourseID: courseID, Title: strings.TrimSpace(title), Contents: contents}
	if err := s.Lessons.Create(ctx, lesson); err != nil {
		return nil, err
	}
	return s.Lessons.FindByID(ctx, lesson.ID)
}

func (s *LessonService) GetLesson(ctx context.Context, id uint) (*model.Lesson, error) {
	return s.Lessons.FindByID(ctx, id)
}

func (s *LessonService) ListByCourse(ctx context.Context, courseID uint) ([]model.Lesson, error) {
	if _, err := s.Courses.FindByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.Lessons.FindByCourse(ctx, courseID)
}

func (s *LessonService) RenameLesson(ctx context.Context, claims *util.Claims, id uint, title string) (*model.Lesson, error) {
	if err := validateLessonTitle(title); err != nil {
		return nil, err
	}
	lesson, err := s.lessonForWrite(ctx, claims, id)
	if err != nil {
		return nil, err
	}
	lesson.Title = strings.TrimSpace(title)
	if err := s.Lessons.Update(ctx, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *LessonService) DeleteLesson(ctx context.Context, claims *util.Claims, id uint) error {
	if _, err := s.lessonForWrite(ctx, claims, id); err != nil {
		return err
	}
	return s.Lessons.Delete(ctx, id)
}

func (s *LessonService) AttachContents(ctx context.Context, claims *util.Claims, lessonID uint, contentIDs []uint) (*model.Lesson, error) {
	return s.changeContents(ctx, claims, lessonID, contentIDs, s.Lessons.AttachContents)
}

func (s *LessonService) DetachContents(ctx context.Context, claims *util.Claims, lessonID uint, contentIDs []uint) (*model.Lesson, error) {
	return s.changeContents(ctx, claims, lessonID, contentIDs, s.Lessons.DetachContents)
}

func (s *LessonService) ReplaceContents(ctx context.Context, claims *util.Claims, lessonID uint, contentIDs []uint) (*model.Lesson, error) {
	return s.changeContents(ctx, claims, lessonID, contentIDs, s.Lessons.ReplaceContents)
}

func (s *LessonService) changeContents(
	ctx context.Context,
	claims *util.Claims,
	lessonID uint,
	contentIDs []uint,
	apply func(context.Context, uint, []model.LessonContent) error,
) (*model.Lesson, error) {
	if _, err := s.lessonForWrite(ctx, claims, lessonID); err != nil {
		return nil, err
	}
	contents, err := s.Contents.FindByIDs(ctx, contentIDs)
	if err != nil {
		return nil, err
	}
	if err := apply(ctx, lessonID, contents); err != nil {
		return nil, err
	}
	return s.Lessons.FindByID(ctx, lessonID)
}

func (s *LessonService) CreateContent(ctx context.Context, claims *util.Claims, title, videoLink string) (*model.LessonContent, error) {
	if claims == nil {
		return nil, util.ErrUnauthorized
	}
	content := &model.LessonContent{}
	if err := applyContentFields(content, title, videoLink); err != nil {
		return nil, err
	}
	if err := s.Contents.Create(ctx, content); err != nil {
		return nil, err
	}
	return content, nil
}

func (s *LessonService) ListContents(ctx context.Context) ([]model.LessonContent, error) {
	return s.Contents.FindAll(ctx)
}

// GetContent 返回内容以及引用它的课时
func (s *LessonService) GetContent(ctx context.Context, id uint) (*model.LessonContent, error) {
	content, err := s.Contents.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	lessons, err := s.Contents.FindLessons(ctx, id)
	if err != nil {
		return nil, err
	}
	content.Lessons = lessons
	return content, nil
}

func (s *LessonService) UpdateContent(ctx context.Context, claims *util.Claims, id uint, title, videoLink string) (*model.LessonContent, error) {
	content, err := s.contentForWrite(ctx, claims, id)
	if err != nil {
		return nil, err
	}
	if err := applyContentFields(content, title, videoLink); err != nil {
		return nil, err
	}
	if err := s.Contents.Update(ctx, content); err != nil {
		return nil, err
	}
	return content, nil
}

func (s *LessonService) DeleteContent(ctx context.Context, claims *util.Claims, id uint) error {
	if _, err := s.contentForWrite(ctx, claims, id); err != nil {
		return err
	}
	return s.Contents.Delete(ctx, id)
}

// contentForWrite 内容被共享时，调用者必须能管理所有引用它的课程
func (s *LessonService) contentForWrite(ctx context.Context, claims *util.Claims, id uint) (*model.LessonContent, error) {
	if claims == nil {
		return nil, util.ErrUnauthorized
	}
	content, err := s.Contents.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if claims.Role == model.Admin {
		return content, nil
	}

	lessons, err := s.Contents.FindLessons(ctx, id)
	if err != nil {
		return nil, err
	}
	checked := make(map[uint]bool, len(lessons))
	for _, lesson := range lessons {
		if checked[lesson.CourseID] {
			continue
		}
		if err := s.authorizeCourse(ctx, claims, lesson.CourseID); err != nil {
			return nil, err
		}
		checked[lesson.CourseID] = true
	}
	return content, nil
}

func (s *LessonService) lessonForWrite(ctx context.Context, claims *util.Claims, id uint) (*model.Lesson, error) {
	lesson, err := s.Lessons.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeCourse(ctx, claims, lesson.CourseID); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *LessonService) authorizeCourse(ctx context.Context, claims *util.Claims, courseID uint) error {
	course, err := s.Courses.FindByID(ctx, courseID)
	if err != nil {
		return err
	}
	if !canManageCourse(claims, course) {
		return util.ErrPermissionDenied
	}
	return nil
}

func validateLessonTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" || utf8.RuneCountInString(title) > 250 {
		return util.ErrInvalidTitle
	}
	return nil
}

func applyContentFields(content *model.LessonContent, title, videoLink string) error {
	if utf8.RuneCountInString(title) > 250 {
		return util.ErrInvalidTitle
	}
	videoLink = strings.TrimSpace(videoLink)
	if err := util.ValidateVideoLink(videoLink); err != nil {
		return err
	}
	content.Title = strings.TrimSpace(title)
	content.VideoLink = videoLink
	return nil
}
