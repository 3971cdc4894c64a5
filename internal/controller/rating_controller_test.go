package controller

import (
	"context"
	"course_catalog_backend/internal/model"
	"course_catalog_backend/internal/testutil"
	"fmt"
	"net/http"
	"testing"
)

func TestRateCourseEndpoint(t *testing.T) {
	api := newCatalogAPI(t)
	ctx := context.Background()
	owner := testutil.SeedUser(t, ctx, api.db, "owner", model.Instructor)
	course := testutil.SeedCourse(t, ctx, api.db, "intro-to-go", api.category.ID, owner.ID)
	path := fmt.Sprintf("/api/courses/%d/rating", course.ID)

	tests := []struct {
		name  string
		token string
		body  string
		code  int
	}{
		{"anonymous", "", `{"score":4}`, http.StatusUnauthorized},
		{"missing score", api.student, `{}`, http.StatusBadRequest},
		{"below range", api.student, `{"score":-1}`, http.StatusBadRequest},
		{"above range", api.student, `{"score":6}`, http.StatusBadRequest},
		{"valid", api.student, `{"score":4}`, http.StatusOK},
		{"re-rate", api.student, `{"score":2}`, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := api.json(http.MethodPost, path, tt.token, tt.body)
			if w.Code != tt.code {
				t.Fatalf("want=%d got=%d body=%s", tt.code, w.Code, w.Body.String())
			}
		})
	}

	w, resp := api.json(http.MethodGet, path, "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("get rating: status=%d body=%s", w.Code, w.Body.String())
	}
	agg := dataMap(t, resp)
	if agg["count"] != float64(1) || agg["average"] != float64(2) {
		t.Fatalf("aggregate after re-rate: %v", agg)
	}

	w, _ = api.json(http.MethodPost, fmt.Sprintf("/api/courses/%d/rating", course.ID+100), api.student, `{"score":3}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown course: want=404 got=%d", w.Code)
	}
}
