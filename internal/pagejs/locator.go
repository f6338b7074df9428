// Package pagejs locates global-variable assignments inside page scripts by
// parsing them as real programs instead of string matching.
package pagejs

import (
	"errors"
	"fmt"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/parser"
)

// ErrNoAssignment reports a syntactically valid fragment that contains no
// matching assignment.
var ErrNoAssignment = errors.New("assignment not found")

// ParseError wraps a syntax error from the script parser. The fragment is
// unusable; callers move on to the next candidate block.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse script: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Span is a half-open byte range into the source text given to FindAssignment.
type Span struct {
	Start int
	End   int
}

// FindAssignment parses src and returns the span of the right-hand side of
// the first `<global>.<property> = <expr>` assignment found in statement
// position. The span indexes the original source, so slicing it recovers the
// expression text byte-for-byte as the page emitted it, never a
// re-serialization of the tree.
func FindAssignment(src, global, property string) (Span, error) {
	program, err := parser.ParseFile(nil, "", src, 0)
	if err != nil {
		return Span{}, &ParseError{Err: err}
	}
	if span, ok := findInStatements(program.Body, global, property); ok {
		return span, nil
	}
	return Span{}, ErrNoAssignment
}

// Slice returns the portion of src covered by span.
func (s Span) Slice(src string) string {
	return src[s.Start:s.End]
}

// The walk covers a closed set of node shapes: expression and block
// statements, assignment and comma expressions. Everything else is a no-op,
// not an error. Only one matching assignment is expected per fragment, so the
// first hit wins.
func findInStatements(stmts []ast.Statement, global, property string) (Span, bool) {
	for _, stmt := range stmts {
		switch node := stmt.(type) {
		case *ast.ExpressionStatement:
			if span, ok := findInExpression(node.Expression, global, property); ok {
				return span, true
			}
		case *ast.BlockStatement:
			if span, ok := findInStatements(node.List, global, property); ok {
				return span, true
			}
		}
	}
	return Span{}, false
}

func findInExpression(expr ast.Expression, global, property string) (Span, bool) {
	switch node := expr.(type) {
	case *ast.AssignExpression:
		if matchesTarget(node.Left, global, property) {
			return spanOf(node.Right), true
		}
		// Chained form: a = window.x = {...}
		return findInExpression(node.Right, global, property)
	case *ast.SequenceExpression:
		for _, sub := range node.Sequence {
			if span, ok := findInExpression(sub, global, property); ok {
				return span, true
			}
		}
	}
	return Span{}, false
}

// matchesTarget accepts exactly Identifier(global).property. Bracket access,
// nested members and anything else are ignored.
func matchesTarget(target ast.Expression, global, property string) bool {
	dot, ok := target.(*ast.DotExpression)
	if !ok {
		return false
	}
	base, ok := dot.Left.(*ast.Identifier)
	if !ok {
		return false
	}
	return base.Name.String() == global && dot.Identifier.Name.String() == property
}

// goja file indexes are 1-based.
func spanOf(n ast.Node) Span {
	return Span{Start: int(n.Idx0()) - 1, End: int(n.Idx1()) - 1}
}
