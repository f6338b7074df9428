package webpage

import (
	"errors"
	"strings"
	"testing"
)

func parseDoc(t *testing.T, markup string) *Document {
	t.Helper()
	doc, err := Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return doc
}

func TestTitle_SingleHeading(t *testing.T) {
	doc := parseDoc(t, `<html><body><h1>some title / part 1</h1></body></html>`)
	got, err := doc.Title()
	if err != nil {
		t.Fatalf("Title() error = %v", err)
	}
	if want := "some title / part 1"; got != want {
		t.Fatalf("Title() = %q, want %q", got, want)
	}
}

func TestTitle_NestedMarkup(t *testing.T) {
	doc := parseDoc(t, `<html><body><h1><span>part</span> one</h1></body></html>`)
	got, err := doc.Title()
	if err != nil {
		t.Fatalf("Title() error = %v", err)
	}
	if want := "part one"; got != want {
		t.Fatalf("Title() = %q, want %q", got, want)
	}
}

func TestTitle_Missing(t *testing.T) {
	doc := parseDoc(t, `<html><body><h2>not a title</h2></body></html>`)
	if _, err := doc.Title(); !errors.Is(err, ErrTitleMissing) {
		t.Fatalf("Title() error = %v, want ErrTitleMissing", err)
	}
}

func TestTitle_Ambiguous(t *testing.T) {
	doc := parseDoc(t, `<html><body><h1>one</h1><h1>two</h1></body></html>`)
	if _, err := doc.Title(); !errors.Is(err, ErrTitleAmbiguous) {
		t.Fatalf("Title() error = %v, want ErrTitleAmbiguous", err)
	}
}
