package util

import (
	"errors"
	"regexp"
	"strings"
	"testing"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9_]+(?:[-_][a-z0-9_]+)*$`)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Intro to Go":            "intro-to-go",
		"  Hello,   World!  ":    "hello-world",
		"C++ Basics":             "c-basics",
		"Crème Brûlée 101":       "creme-brulee-101",
		"snake_case -- dashes":   "snake_case-dashes",
		"---":                    "",
		"中文课程":                   "",
		"Go: Concurrency & Sync": "go-concurrency-sync",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q): want=%q got=%q", in, want, got)
		}
	}
}

func TestGenerateRandomString(t *testing.T) {
	s := GenerateRandomString(16)
	if len(s) != 16 {
		t.Fatalf("len: want=16 got=%d", len(s))
	}
	if strings.Trim(s, slugAlphabet) != "" {
		t.Fatalf("unexpected characters in %q", s)
	}
}

func TestSlugGeneratorNoCollision(t *testing.T) {
	g := NewSlugGenerator(50, 10)
	got, err := g.Generate("Intro to Go", func(string) (bool, error) { return false, nil })
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "intro-to-go" {
		t.Fatalf("slug: want=%q got=%q", "intro-to-go", got)
	}
}

func TestSlugGeneratorAppendsSuffixOnCollision(t *testing.T) {
	g := NewSlugGenerator(50, 10)
	g.Random = func(int) string { return "x1a2" }
	collisions := 0
	g.OnCollision = func() { collisions++ }

	taken := map[string]bool{"intro-to-go": true}
	got, err := g.Generate("Intro to Go", func(s string) (bool, error) { return taken[s], nil })
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "intro-to-go-x1a2" {
		t.Fatalf("slug: want=%q got=%q", "intro-to-go-x1a2", got)
	}
	if collisions != 1 {
		t.Fatalf("collisions: want=1 got=%d", collisions)
	}
}

func TestSlugGeneratorFallbackForEmptyTitle(t *testing.T) {
	g := NewSlugGenerator(50, 10)
	got, err := g.Generate("!!!", func(string) (bool, error) { return false, nil })
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "course" {
		t.Fatalf("slug: want=%q got=%q", "course", got)
	}
}

func TestSlugGeneratorRespectsMaxLength(t *testing.T) {
	g := NewSlugGenerator(20, 10)
	title := strings.Repeat("abcdefghij ", 10)
	first := true
	got, err := g.Generate(title, func(string) (bool, error) {
		if first {
			first = false
			return true, nil
		}
		return false, nil
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(got) > 20 {
		t.Fatalf("slug too long: %q (%d)", got, len(got))
	}
	if !slugPattern.MatchString(got) {
		t.Fatalf("slug not url safe: %q", got)
	}
}

func TestSlugGeneratorExhausted(t *testing.T) {
	g := NewSlugGenerator(50, 3)
	calls := 0
	_, err := g.Generate("Intro", func(string) (bool, error) {
		calls++
		return true, nil
	})
	if !errors.Is(err, ErrSlugExhausted) {
		t.Fatalf("want ErrSlugExhausted got=%v", err)
	}
	if calls != 3 {
		t.Fatalf("calls: want=3 got=%d", calls)
	}
}

func TestSlugGeneratorPropagatesLookupError(t *testing.T) {
	boom := errors.New("db down")
	g := NewSlugGenerator(50, 3)
	if _, err := g.Generate("Intro", func(string) (bool, error) { return false, boom }); !errors.Is(err, boom) {
		t.Fatalf("want lookup error got=%v", err)
	}
}
