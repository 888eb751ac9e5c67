package article

import (
	"regexp"
	"testing"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"How to Train Your Dragon", "how-to-train-your-dragon"},
		{"Hello, World!", "hello-world"},
		{"  leading and trailing  ", "leading-and-trailing"},
		{"Multiple---separators___here", "multiple-separators-here"},
		{"UPPER case 123", "upper-case-123"},
	}
	for _, tc := range cases {
		got := Slugify(tc.title)
		if got != tc.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	a := Slugify("Some Repeatable Title")
	b := Slugify("Some Repeatable Title")
	if a != b {
		t.Fatalf("slug derivation not deterministic: %q vs %q", a, b)
	}
}

func TestSlugifyURLSafe(t *testing.T) {
	titles := []string{
		"What's new in Go 1.24?",
		"100% coverage & other myths",
		"tabs\tand\nnewlines",
	}
	for _, title := range titles {
		got := Slugify(title)
		if !slugPattern.MatchString(got) {
			t.Fatalf("Slugify(%q) = %q is not URL-safe", title, got)
		}
	}
}

func TestSuffixSlug(t *testing.T) {
	base := Slugify("duplicate title")
	a := SuffixSlug(base)
	b := SuffixSlug(base)
	if a == b {
		t.Fatalf("expected distinct suffixes, got %q twice", a)
	}
	if !slugPattern.MatchString(a) {
		t.Fatalf("suffixed slug %q is not URL-safe", a)
	}
}
