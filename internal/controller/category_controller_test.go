package controller

import (
	"course_catalog_backend/internal/repository"
	"course_catalog_backend/internal/service"
	"course_catalog_backend/internal/testutil"
	"course_catalog_backend/internal/util"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newCategoryRouter(t *testing.T) *gin.Engine {
	t.Helper()
	db := testutil.DB(t)
	courses := repository.NewCourseRepository(db)
	c := NewCategoryController(service.NewCategoryService(repository.NewCategoryRepository(db, courses), nil))

	r := gin.New()
	r.GET("/api/categories", c.ListCategories)
	r.POST("/api/categories", c.CreateCategory)
	r.PUT("/api/categories/:id", c.UpdateCategory)
	r.DELETE("/api/categories/:id", c.DeleteCategory)
	return r
}

func doJSON(r http.Handler, method, path, body string) (*httptest.ResponseRecorder, util.Response) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp util.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestCategoryEndpoints(t *testing.T) {
	r := newCategoryRouter(t)

	w, resp := doJSON(r, http.MethodPost, "/api/categories", `{"name":"Programming"}`)
	if w.Code != http.StatusCreated || resp.Code != http.StatusCreated {
		t.Fatalf("create: status=%d body=%s", w.Code, w.Body.String())
	}
	id := uint(resp.Data.(map[string]interface{})["id"].(float64))

	w, _ = doJSON(r, http.MethodPost, "/api/categories", `{"name":"A name that is far too long"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("long name: want=400 got=%d", w.Code)
	}

	w, _ = doJSON(r, http.MethodPost, "/api/categories", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing name: want=400 got=%d", w.Code)
	}

	w, resp = doJSON(r, http.MethodPut, fmt.Sprintf("/api/categories/%d", id), `{"name":"Design"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("rename: status=%d body=%s", w.Code, w.Body.String())
	}
	if name := resp.Data.(map[string]interface{})["name"]; name != "Design" {
		t.Fatalf("rename: got name=%v", name)
	}

	w, resp = doJSON(r, http.MethodGet, "/api/categories", "")
	if w.Code != http.StatusOK || len(resp.Data.([]interface{})) != 1 {
		t.Fatalf("list: status=%d body=%s", w.Code, w.Body.String())
	}

	w, _ = doJSON(r, http.MethodPut, "/api/categories/abc", `{"name":"Design"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad id: want=400 got=%d", w.Code)
	}

	w, _ = doJSON(r, http.MethodDelete, fmt.Sprintf("/api/categories/%d", id), "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete: status=%d body=%s", w.Code, w.Body.String())
	}
	w, _ = doJSON(r, http.MethodDelete, fmt.Sprintf("/api/categories/%d", id), "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("delete again: want=404 got=%d", w.Code)
	}
}

func TestRespondErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{util.ErrInvalidSlug, http.StatusBadRequest},
		{fmt.Errorf("%w: boom", util.ErrInvalidThumbnail), http.StatusBadRequest},
		{util.ErrCourseNotFound, http.StatusNotFound},
		{util.ErrUnauthorized, http.StatusUnauthorized},
		{util.ErrPermissionDenied, http.StatusForbidden},
		{util.ErrInstructorNotFound, http.StatusForbidden},
		{gorm.ErrDuplicatedKey, http.StatusConflict},
		{fmt.Errorf("%w: \"x\"", util.ErrSlugExhausted), http.StatusConflict},
		{errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(w)
		ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		respondError(ctx, tt.err)
		if w.Code != tt.want {
			t.Fatalf("%v: want=%d got=%d", tt.err, tt.want, w.Code)
		}
	}
}
