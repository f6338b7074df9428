package webpage

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/famomatic/bvget/internal/pagejs"
)

// ErrMetadataNotFound reports that no script block in the whole document
// yielded the requested assignment.
var ErrMetadataNotFound = errors.New("playback metadata not found")

// Mode selects how the assignment is pulled out of a script block.
type Mode string

const (
	// ModePrefix matches blocks whose trimmed content starts with the
	// literal `<global>.<property>=` and returns the remainder verbatim.
	// Fast path for pages that emit the assignment as the block's sole
	// content.
	ModePrefix Mode = "prefix"
	// ModeAST parses each block as a program and slices the assigned
	// expression out of the original block text, for pages that mix the
	// assignment with other statements.
	ModeAST Mode = "ast"
)

// Target names the global assignment to extract and how.
type Target struct {
	Global   string
	Property string
	Mode     Mode
}

func (t Target) prefix() string { return t.Global + "." + t.Property + "=" }

// GlobalJSON scans script blocks in document order and returns the raw text
// assigned to the target global. In AST mode, JSON payload blocks are not
// candidates and blocks that fail to parse are skipped. Returns
// ErrMetadataNotFound when no block matches.
func (d *Document) GlobalJSON(t Target) (string, error) {
	selector := "script"
	if t.Mode == ModeAST {
		selector = "script:not([type*=json])"
	}

	var out string
	found := false
	d.doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		content := strings.TrimSpace(sel.Text())
		if content == "" {
			return true
		}
		switch t.Mode {
		case ModeAST:
			span, err := pagejs.FindAssignment(content, t.Global, t.Property)
			if err != nil {
				return true
			}
			out = span.Slice(content)
		default:
			if !strings.HasPrefix(content, t.prefix()) {
				return true
			}
			out = strings.TrimPrefix(content, t.prefix())
		}
		found = true
		return false
	})
	if !found {
		return "", ErrMetadataNotFound
	}
	return out, nil
}
