// Package cookies reads browser-exported cookie files so the login
// credential can come from a cookies.txt instead of the JSON config.
package cookies

import (
	"bufio"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ParseNetscape parses the Netscape cookies.txt format.
// Format: domain flag path secure expiration name value, tab separated.
// Comment and blank lines are skipped; the #HttpOnly_ domain prefix browsers
// emit is honored rather than discarded as a comment.
func ParseNetscape(r io.Reader) ([]*http.Cookie, error) {
	var cookies []*http.Cookie
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		httpOnly := false
		if strings.HasPrefix(line, "#HttpOnly_") {
			httpOnly = true
			line = strings.TrimPrefix(line, "#HttpOnly_")
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, "\t")
		if len(parts) < 7 {
			continue
		}

		expiresUnix, _ := strconv.ParseInt(parts[4], 10, 64)
		cookies = append(cookies, &http.Cookie{
			Domain:   parts[0],
			Path:     parts[2],
			Secure:   strings.EqualFold(parts[3], "TRUE"),
			Expires:  time.Unix(expiresUnix, 0),
			Name:     parts[5],
			Value:    parts[6],
			HttpOnly: httpOnly,
		})
	}

	return cookies, scanner.Err()
}

// FindValue returns the value of the first cookie with the given name, or an
// empty string when absent.
func FindValue(cookies []*http.Cookie, name string) string {
	for _, c := range cookies {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}
