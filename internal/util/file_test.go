package util

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateVideoLink(t *testing.T) {
	valid := []string{
		"https://www.youtube.com/watch?v=abc",
		"http://cdn.example.com/video.mp4",
	}
	for _, link := range valid {
		if err := ValidateVideoLink(link); err != nil {
			t.Fatalf("ValidateVideoLink(%q): %v", link, err)
		}
	}

	invalid := []string{
		"",
		"not a url",
		"ftp://example.com/video.mp4",
		"/relative/path.mp4",
		"https://example.com/" + strings.Repeat("a", 500),
	}
	for _, link := range invalid {
		if err := ValidateVideoLink(link); !errors.Is(err, ErrInvalidVideoLink) {
			t.Fatalf("ValidateVideoLink(%q): want ErrInvalidVideoLink got=%v", link, err)
		}
	}
}

func TestHasImageExtension(t *testing.T) {
	if !HasImageExtension("cover.PNG") {
		t.Fatalf("cover.PNG should be accepted")
	}
	if HasImageExtension("cover.exe") {
		t.Fatalf("cover.exe should be rejected")
	}
}

func TestParsePage(t *testing.T) {
	page, limit := ParsePage("", "", 20, 100)
	if page != 1 || limit != 20 {
		t.Fatalf("defaults: got page=%d limit=%d", page, limit)
	}
	page, limit = ParsePage("3", "500", 20, 100)
	if page != 3 || limit != 100 {
		t.Fatalf("clamp: got page=%d limit=%d", page, limit)
	}
}
