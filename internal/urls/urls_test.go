package urls

import (
	"errors"
	"testing"
)

func TestReverseCourseDetail(t *testing.T) {
	got, err := Reverse(CourseDetail, Params{"slug": "intro-to-go"})
	if err != nil {
		t.Fatalf("Reverse: %v", err)
	}
	if got != "/courses/intro-to-go" {
		t.Fatalf("url: want=%q got=%q", "/courses/intro-to-go", got)
	}
}

func TestReverseEscapesValues(t *testing.T) {
	r := NewRegistry()
	r.Register("files", "/files/:name/raw")

	got, err := r.Reverse("files", Params{"name": "a b/c"})
	if err != nil {
		t.Fatalf("Reverse: %v", err)
	}
	if got != "/files/a%20b%2Fc/raw" {
		t.Fatalf("url: want=%q got=%q", "/files/a%20b%2Fc/raw", got)
	}
}

func TestReverseWildcard(t *testing.T) {
	r := NewRegistry()
	r.Register("media", "/media/*path")

	got, err := r.Reverse("media", Params{"path": "photos/course/2026-10-18/a.png"})
	if err != nil {
		t.Fatalf("Reverse: %v", err)
	}
	if got != "/media/photos/course/2026-10-18/a.png" {
		t.Fatalf("url: got=%q", got)
	}
}

func TestReverseErrors(t *testing.T) {
	r := NewRegistry()
	r.Register("detail", "/courses/:slug")

	if _, err := r.Reverse("missing", nil); !errors.Is(err, ErrNoReverseMatch) {
		t.Fatalf("unknown route: want ErrNoReverseMatch got=%v", err)
	}
	if _, err := r.Reverse("detail", Params{}); !errors.Is(err, ErrMissingParam) {
		t.Fatalf("missing param: want ErrMissingParam got=%v", err)
	}
	if _, err := r.Reverse("detail", Params{"slug": ""}); !errors.Is(err, ErrMissingParam) {
		t.Fatalf("empty param: want ErrMissingParam got=%v", err)
	}
}

func TestMustReversePanicsOnEmptySlug(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	MustReverse(CourseDetail, Params{"slug": ""})
}
