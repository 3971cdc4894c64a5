package service

import (
	"context"
	"course_catalog_backend/internal/model"
	"course_catalog_backend/internal/repository"
	"course_catalog_backend/internal/testutil"
	"course_catalog_backend/internal/util"
	"errors"
	"testing"
)

func TestLessonServiceOwnershipAndContents(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	cat := testutil.SeedCategory(t, ctx, db, "Programming")
	owner := testutil.SeedUser(t, ctx, db, "gopher", model.Instructor)
	course := testutil.SeedCourse(t, ctx, db, "intro-to-go", cat.ID, owner.ID)

	courses := repository.NewCourseRepository(db)
	svc := NewLessonService(repository.NewLessonRepository(db), repository.NewLessonContentRepository(db), courses)
	ownerClaims := &util.Claims{UserID: owner.ID, Role: model.Instructor}
	stranger := &util.Claims{UserID: owner.ID + 1, Role: model.Instructor}

	if _, err := svc.CreateContent(ctx, ownerClaims, "Intro", "ftp://videos.example.com/1"); !errors.Is(err, util.ErrInvalidVideoLink) {
		t.Fatalf("ftp link: want ErrInvalidVideoLink got %v", err)
	}
	v1, err := svc.CreateContent(ctx, ownerClaims, "Intro", " https://videos.example.com/1 ")
	if err != nil {
		t.Fatalf("CreateContent: %v", err)
	}
	if v1.VideoLink != "https://videos.example.com/1" {
		t.Fatalf("video link must be trimmed: %q", v1.VideoLink)
	}
	v2, err := svc.CreateContent(ctx, ownerClaims, "", "https://videos.example.com/2")
	if err != nil {
		t.Fatalf("CreateContent untitled: %v", err)
	}

	if _, err := svc.CreateLesson(ctx, stranger, course.ID, "Basics", nil); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("stranger create: want ErrPermissionDenied got %v", err)
	}
	if _, err := svc.CreateLesson(ctx, ownerClaims, course.ID, "Basics", []uint{v1.ID, 999}); !errors.Is(err, util.ErrLessonContentNotFound) {
		t.Fatalf("unknown content: want ErrLessonContentNotFound got %v", err)
	}
	if _, err := svc.CreateLesson(ctx, ownerClaims, course.ID, " ", nil); !errors.Is(err, util.ErrInvalidTitle) {
		t.Fatalf("blank title: want ErrInvalidTitle got %v", err)
	}

	lesson, err := svc.CreateLesson(ctx, ownerClaims, course.ID, "Basics", []uint{v1.ID})
	if err != nil {
		t.Fatalf("CreateLesson: %v", err)
	}
	lesson, err = svc.AttachContents(ctx, ownerClaims, lesson.ID, []uint{v2.ID})
	if err != nil {
		t.Fatalf("AttachContents: %v", err)
	}
	if len(lesson.Contents) != 2 {
		t.Fatalf("contents after attach: want=2 got=%d", len(lesson.Contents))
	}
	if _, err := svc.DetachContents(ctx, stranger, lesson.ID, []uint{v1.ID}); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("stranger detach: want ErrPermissionDenied got %v", err)
	}

	content, err := svc.GetContent(ctx, v2.ID)
	if err != nil {
		t.Fatalf("GetContent: %v", err)
	}
	if len(content.Lessons) != 1 || content.Lessons[0].ID != lesson.ID {
		t.Fatalf("content lessons: %+v", content.Lessons)
	}

	listed, err := svc.ListByCourse(ctx, course.ID)
	if err != nil || len(listed) != 1 {
		t.Fatalf("ListByCourse: err=%v len=%d", err, len(listed))
	}
	if _, err := svc.ListByCourse(ctx, course.ID+1); !errors.Is(err, util.ErrCourseNotFound) {
		t.Fatalf("unknown course: want ErrCourseNotFound got %v", err)
	}

	admin := &util.Claims{UserID: 999, Role: model.Admin}
	if err := svc.DeleteLesson(ctx, admin, lesson.ID); err != nil {
		t.Fatalf("admin DeleteLesson: %v", err)
	}
}

func TestLessonContentWritesRequireOwnership(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	cat := testutil.SeedCategory(t, ctx, db, "Programming")
	owner := testutil.SeedUser(t, ctx, db, "gopher", model.Instructor)
	other := testutil.SeedUser(t, ctx, db, "rustacean", model.Instructor)
	course := testutil.SeedCourse(t, ctx, db, "intro-to-go", cat.ID, owner.ID)
	otherCourse := testutil.SeedCourse(t, ctx, db, "intro-to-rust", cat.ID, other.ID)

	svc := NewLessonService(repository.NewLessonRepository(db), repository.NewLessonContentRepository(db), repository.NewCourseRepository(db))
	ownerClaims := &util.Claims{UserID: owner.ID, Role: model.Instructor}
	otherClaims := &util.Claims{UserID: other.ID, Role: model.Instructor}

	if _, err := svc.CreateContent(ctx, nil, "Intro", "https://videos.example.com/1"); !errors.Is(err, util.ErrUnauthorized) {
		t.Fatalf("anonymous create: want ErrUnauthorized got %v", err)
	}
	shared, err := svc.CreateContent(ctx, ownerClaims, "Intro", "https://videos.example.com/1")
	if err != nil {
		t.Fatalf("CreateContent: %v", err)
	}
	lesson, err := svc.CreateLesson(ctx, ownerClaims, course.ID, "Basics", []uint{shared.ID})
	if err != nil {
		t.Fatalf("CreateLesson: %v", err)
	}

	if _, err := svc.UpdateContent(ctx, otherClaims, shared.ID, "hijacked", "https://videos.example.com/x"); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("unowned update: want ErrPermissionDenied got %v", err)
	}
	if err := svc.DeleteContent(ctx, otherClaims, shared.ID); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("unowned delete: want ErrPermissionDenied got %v", err)
	}
	got, err := svc.GetLesson(ctx, lesson.ID)
	if err != nil {
		t.Fatalf("GetLesson: %v", err)
	}
	if len(got.Contents) != 1 || got.Contents[0].Title != "Intro" {
		t.Fatalf("lesson contents after rejected writes: %+v", got.Contents)
	}

	// 另一位讲师也引用后，原作者不能再单独修改
	if _, err := svc.CreateLesson(ctx, otherClaims, otherCourse.ID, "Ownership", []uint{shared.ID}); err != nil {
		t.Fatalf("CreateLesson other: %v", err)
	}
	if _, err := svc.UpdateContent(ctx, ownerClaims, shared.ID, "Intro v2", "https://videos.example.com/1"); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("shared update: want ErrPermissionDenied got %v", err)
	}

	admin := &util.Claims{UserID: 999, Role: model.Admin}
	updated, err := svc.UpdateContent(ctx, admin, shared.ID, "Intro v2", "https://videos.example.com/1")
	if err != nil || updated.Title != "Intro v2" {
		t.Fatalf("admin update: err=%v content=%+v", err, updated)
	}

	// 未被引用的内容任何讲师都可以维护
	loose, err := svc.CreateContent(ctx, otherClaims, "Loose", "https://videos.example.com/2")
	if err != nil {
		t.Fatalf("CreateContent loose: %v", err)
	}
	if err := svc.DeleteContent(ctx, ownerClaims, loose.ID); err != nil {
		t.Fatalf("delete unattached: %v", err)
	}
	if err := svc.DeleteContent(ctx, admin, shared.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
}

func TestRatingServiceBounds(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	cat := testutil.SeedCategory(t, ctx, db, "Programming")
	owner := testutil.SeedUser(t, ctx, db, "gopher", model.Instructor)
	course := testutil.SeedCourse(t, ctx, db, "intro-to-go", cat.ID, owner.ID)

	svc := NewRatingService(repository.NewRatingRepository(db), repository.NewCourseRepository(db), nil)
	student := &util.Claims{UserID: 42, Role: model.Student}

	for _, score := range []int{0, 6} {
		if _, err := svc.RateCourse(ctx, student, course.ID, score); !errors.Is(err, util.ErrInvalidRatingScore) {
			t.Fatalf("score %d: want ErrInvalidRatingScore got %v", score, err)
		}
	}
	if _, err := svc.RateCourse(ctx, nil, course.ID, 3); !errors.Is(err, util.ErrUnauthorized) {
		t.Fatalf("anonymous: want ErrUnauthorized got %v", err)
	}
	if _, err := svc.RateCourse(ctx, student, course.ID+1, 3); !errors.Is(err, util.ErrCourseNotFound) {
		t.Fatalf("unknown course: want ErrCourseNotFound got %v", err)
	}

	agg, err := svc.RateCourse(ctx, student, course.ID, 4)
	if err != nil {
		t.Fatalf("RateCourse: %v", err)
	}
	if agg.Count != 1 || agg.Average != 4 {
		t.Fatalf("aggregate: %+v", agg)
	}
	score, err := svc.UserScore(ctx, student, course.ID)
	if err != nil || score != 4 {
		t.Fatalf("UserScore: err=%v score=%d", err, score)
	}
}
