package controller

import (
	"context"
	"course_catalog_backend/internal/model"
	"course_catalog_backend/internal/testutil"
	"fmt"
	"net/http"
	"testing"
)

func contentCount(t *testing.T, data map[string]interface{}) int {
	t.Helper()
	switch contents := data["contents"].(type) {
	case nil:
		return 0
	case []interface{}:
		return len(contents)
	default:
		t.Fatalf("contents: unexpected %#v", contents)
		return 0
	}
}

func TestLessonContentEndpoints(t *testing.T) {
	api := newCatalogAPI(t)

	w, resp := api.form(t, http.MethodPost, "/api/courses", api.owner, api.courseFields("Intro to Go"), nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create course: status=%d body=%s", w.Code, w.Body.String())
	}
	courseID := uint(dataMap(t, resp)["id"].(float64))

	var contentIDs []uint
	for i := 1; i <= 3; i++ {
		body := fmt.Sprintf(`{"title":"Part %d","videoLink":"https://videos.example.com/%d"}`, i, i)
		w, resp = api.json(http.MethodPost, "/api/lesson-contents", api.owner, body)
		if w.Code != http.StatusCreated {
			t.Fatalf("create content: status=%d body=%s", w.Code, w.Body.String())
		}
		contentIDs = append(contentIDs, uint(dataMap(t, resp)["id"].(float64)))
	}
	w, _ = api.json(http.MethodPost, "/api/lesson-contents", api.owner, `{"title":"Bad","videoLink":"ftp://videos.example.com/1"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("ftp link: want=400 got=%d", w.Code)
	}

	w, resp = api.json(http.MethodPost, fmt.Sprintf("/api/courses/%d/lessons", courseID), api.owner,
		fmt.Sprintf(`{"title":"Basics","contentIds":[%d]}`, contentIDs[0]))
	if w.Code != http.StatusCreated {
		t.Fatalf("create lesson: status=%d body=%s", w.Code, w.Body.String())
	}
	lessonPath := fmt.Sprintf("/api/lessons/%.0f/contents", dataMap(t, resp)["id"].(float64))

	tests := []struct {
		name   string
		method string
		token  string
		body   string
		code   int
		count  int
	}{
		{"attach", http.MethodPost, api.owner, fmt.Sprintf(`{"contentIds":[%d,%d]}`, contentIDs[1], contentIDs[2]), http.StatusOK, 3},
		{"detach", http.MethodDelete, api.owner, fmt.Sprintf(`{"contentIds":[%d]}`, contentIDs[0]), http.StatusOK, 2},
		{"replace", http.MethodPut, api.owner, fmt.Sprintf(`{"contentIds":[%d]}`, contentIDs[0]), http.StatusOK, 1},
		{"unknown content", http.MethodPost, api.owner, `{"contentIds":[999]}`, http.StatusNotFound, 0},
		{"stranger", http.MethodPost, api.stranger, fmt.Sprintf(`{"contentIds":[%d]}`, contentIDs[1]), http.StatusForbidden, 0},
		{"malformed body", http.MethodPost, api.owner, `{"contentIds":"x"}`, http.StatusBadRequest, 0},
		{"clear", http.MethodPut, api.owner, `{"contentIds":[]}`, http.StatusOK, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := api.json(tt.method, lessonPath, tt.token, tt.body)
			if w.Code != tt.code {
				t.Fatalf("want=%d got=%d body=%s", tt.code, w.Code, w.Body.String())
			}
			if tt.code == http.StatusOK {
				if n := contentCount(t, dataMap(t, resp)); n != tt.count {
					t.Fatalf("contents: want=%d got=%d", tt.count, n)
				}
			}
		})
	}

	w, _ = api.json(http.MethodPost, "/api/lessons/abc/contents", api.owner, `{"contentIds":[]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad lesson id: want=400 got=%d", w.Code)
	}
}

func TestUpdateSharedContentRequiresOwnership(t *testing.T) {
	api := newCatalogAPI(t)
	ctx := context.Background()
	owner := testutil.SeedUser(t, ctx, api.db, "owner", model.Instructor)
	course := testutil.SeedCourse(t, ctx, api.db, "intro-to-go", api.category.ID, owner.ID)
	content := testutil.SeedLessonContent(t, ctx, api.db, "https://videos.example.com/1")
	lesson := &model.Lesson{CourseID: course.ID, Title: "Basics", Contents: []model.LessonContent{*content}}
	if err := api.db.WithContext(ctx).Create(lesson).Error; err != nil {
		t.Fatalf("seed lesson: %v", err)
	}

	w, _ := api.json(http.MethodPut, fmt.Sprintf("/api/lesson-contents/%d", content.ID), api.stranger,
		`{"title":"hijacked","videoLink":"https://videos.example.com/x"}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("unowned update: want=403 got=%d body=%s", w.Code, w.Body.String())
	}
}
