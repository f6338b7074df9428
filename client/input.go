package client

import (
	"regexp"
	"strings"
)

var (
	bvIDPattern     = regexp.MustCompile(`^BV[0-9A-Za-z]+$`)
	watchURLPattern = regexp.MustCompile(`bilibili\.com/video/(BV[0-9A-Za-z]+)`)
)

// ExtractVideoID accepts either a raw BV id or common bilibili URL shapes.
func ExtractVideoID(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", ErrInvalidInput
	}
	if bvIDPattern.MatchString(s) {
		return s, nil
	}
	m := watchURLPattern.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1], nil
	}
	return "", ErrInvalidInput
}
