package repository

import (
	"context"
	"course_catalog_backend/internal/model"
	"course_catalog_backend/internal/testutil"
	"testing"
)

func TestRateReplacesUserScore(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	cat := testutil.SeedCategory(t, ctx, db, "Programming")
	owner := testutil.SeedUser(t, ctx, db, "gopher", model.Instructor)
	alice := testutil.SeedUser(t, ctx, db, "alice", model.Student)
	bob := testutil.SeedUser(t, ctx, db, "bob", model.Student)
	course := testutil.SeedCourse(t, ctx, db, "intro-to-go", cat.ID, owner.ID)

	repo := NewRatingRepository(db)

	empty, err := repo.FindAggregate(ctx, course)
	if err != nil {
		t.Fatalf("FindAggregate: %v", err)
	}
	if empty.Count != 0 || empty.ContentType != model.CourseContentType || empty.ObjectID != course.ID {
		t.Fatalf("empty aggregate: %+v", empty)
	}

	steps := []struct {
		user    uint
		score   int
		count   int
		average float64
	}{
		{alice.ID, 5, 1, 5},
		{alice.ID, 3, 1, 3},
		{bob.ID, 4, 2, 3.5},
	}
	for _, s := range steps {
		agg, err := repo.Rate(ctx, s.user, course, s.score)
		if err != nil {
			t.Fatalf("Rate: %v", err)
		}
		if agg.Count != s.count || agg.Average != s.average {
			t.Fatalf("after user=%d score=%d: want count=%d avg=%v got count=%d avg=%v",
				s.user, s.score, s.count, s.average, agg.Count, agg.Average)
		}
	}

	var aggregates int64
	db.Model(&model.Rating{}).Count(&aggregates)
	if aggregates != 1 {
		t.Fatalf("aggregate rows: want=1 got=%d", aggregates)
	}

	score, err := repo.FindUserScore(ctx, alice.ID, course)
	if err != nil || score != 3 {
		t.Fatalf("FindUserScore: err=%v score=%d", err, score)
	}
	score, err = repo.FindUserScore(ctx, owner.ID, course)
	if err != nil || score != 0 {
		t.Fatalf("FindUserScore unrated: err=%v score=%d", err, score)
	}
}
