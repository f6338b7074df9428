// Package webpage extracts the title and embedded playback metadata from a
// watch page document.
package webpage

import (
	"errors"
	"io"

	"github.com/PuerkitoBio/goquery"
)

var (
	ErrTitleMissing   = errors.New("page title missing")
	ErrTitleAmbiguous = errors.New("page title ambiguous")
)

// Document wraps a parsed watch page.
type Document struct {
	doc *goquery.Document
}

// Parse reads page markup into a queryable document.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return &Document{doc: doc}, nil
}

// Title returns the inner text of the page's single h1 element, unmodified.
// Zero or multiple headings mean the page does not have the expected
// structure; both fail rather than silently picking one.
func (d *Document) Title() (string, error) {
	heading := d.doc.Find("h1")
	switch heading.Length() {
	case 0:
		return "", ErrTitleMissing
	case 1:
		return heading.Text(), nil
	default:
		return "", ErrTitleAmbiguous
	}
}
