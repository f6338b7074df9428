package pagejs

import (
	"errors"
	"testing"
)

func TestFindAssignment_RecoversOriginalText(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		global   string
		property string
		want     string
	}{
		{
			name:     "sole statement",
			src:      `window.__playinfo__={"a":1};`,
			global:   "window",
			property: "__playinfo__",
			want:     `{"a":1}`,
		},
		{
			name:     "formatting and literal spelling preserved",
			src:      "window.state = { \"n\" :\t[1e3, 0x10,  null] };",
			global:   "window",
			property: "state",
			want:     "{ \"n\" :\t[1e3, 0x10,  null] }",
		},
		{
			name:     "assignment amid other statements",
			src:      "var a = 1;\nfunction f() { return a; }\nwindow.state={\"k\":\"v\"};\nf();",
			global:   "window",
			property: "state",
			want:     `{"k":"v"}`,
		},
		{
			name:     "comma expression",
			src:      `a = 1, window.state = {"x":2}, b = 3;`,
			global:   "window",
			property: "state",
			want:     `{"x":2}`,
		},
		{
			name:     "nested block",
			src:      `{ window.state = {"y":[]}; }`,
			global:   "window",
			property: "state",
			want:     `{"y":[]}`,
		},
		{
			name:     "chained assignment",
			src:      `cached = window.state = {"z":0};`,
			global:   "window",
			property: "state",
			want:     `{"z":0}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span, err := FindAssignment(tt.src, tt.global, tt.property)
			if err != nil {
				t.Fatalf("FindAssignment() error = %v", err)
			}
			if got := span.Slice(tt.src); got != tt.want {
				t.Fatalf("FindAssignment() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindAssignment_FirstMatchWins(t *testing.T) {
	src := `window.state={"first":1};window.state={"second":2};`
	span, err := FindAssignment(src, "window", "state")
	if err != nil {
		t.Fatalf("FindAssignment() error = %v", err)
	}
	if got, want := span.Slice(src), `{"first":1}`; got != want {
		t.Fatalf("FindAssignment() = %q, want %q", got, want)
	}
}

func TestFindAssignment_NoMatch(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "different global", src: `w.state = {"a":1};`},
		{name: "different property", src: `window.other = {"a":1};`},
		{name: "bracket access not matched", src: `window["state"] = {"a":1};`},
		{name: "nested member target", src: `window.app.state = {"a":1};`},
		{name: "plain variable", src: `var state = {"a":1};`},
		{name: "empty program", src: ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FindAssignment(tt.src, "window", "state")
			if !errors.Is(err, ErrNoAssignment) {
				t.Fatalf("FindAssignment() error = %v, want ErrNoAssignment", err)
			}
		})
	}
}

func TestFindAssignment_ParseError(t *testing.T) {
	_, err := FindAssignment(`window.state = {`, "window", "state")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("FindAssignment() error = %T(%v), want *ParseError", err, err)
	}
	if parseErr.Unwrap() == nil {
		t.Fatalf("ParseError.Unwrap() = nil, want wrapped parser error")
	}
}
