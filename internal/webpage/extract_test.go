package webpage

import (
	"errors"
	"testing"
)

func TestGlobalJSON_PrefixMode(t *testing.T) {
	markup := `<html><head>` +
		`<script>var unrelated = true;</script>` +
		`<script>window.__playinfo__={"data":{"accept_quality":[80]}}</script>` +
		`</head><body><h1>t</h1></body></html>`
	doc := parseDoc(t, markup)

	got, err := doc.GlobalJSON(Target{Global: "window", Property: "__playinfo__", Mode: ModePrefix})
	if err != nil {
		t.Fatalf("GlobalJSON() error = %v", err)
	}
	if want := `{"data":{"accept_quality":[80]}}`; got != want {
		t.Fatalf("GlobalJSON() = %q, want %q", got, want)
	}
}

func TestGlobalJSON_PrefixModeTrimsBlockWhitespace(t *testing.T) {
	markup := "<html><head><script>\n  window.__playinfo__={\"data\":1}\n</script></head></html>"
	doc := parseDoc(t, markup)

	got, err := doc.GlobalJSON(Target{Global: "window", Property: "__playinfo__", Mode: ModePrefix})
	if err != nil {
		t.Fatalf("GlobalJSON() error = %v", err)
	}
	if want := `{"data":1}`; got != want {
		t.Fatalf("GlobalJSON() = %q, want %q", got, want)
	}
}

func TestGlobalJSON_ASTMode(t *testing.T) {
	markup := `<html><head><script>` +
		`var loaded = false;` +
		`window.__INITIAL_STATE__={"videoData":{"bvid":"BV1xx411c7mD","cid":279786}};` +
		`loaded = true;` +
		`</script></head></html>`
	doc := parseDoc(t, markup)

	got, err := doc.GlobalJSON(Target{Global: "window", Property: "__INITIAL_STATE__", Mode: ModeAST})
	if err != nil {
		t.Fatalf("GlobalJSON() error = %v", err)
	}
	if want := `{"videoData":{"bvid":"BV1xx411c7mD","cid":279786}}`; got != want {
		t.Fatalf("GlobalJSON() = %q, want %q", got, want)
	}
}

func TestGlobalJSON_ASTModeSkipsBrokenBlocks(t *testing.T) {
	markup := `<html><head>` +
		`<script>function {</script>` +
		`<script>window.__INITIAL_STATE__={"ok":true};</script>` +
		`</head></html>`
	doc := parseDoc(t, markup)

	got, err := doc.GlobalJSON(Target{Global: "window", Property: "__INITIAL_STATE__", Mode: ModeAST})
	if err != nil {
		t.Fatalf("GlobalJSON() error = %v", err)
	}
	if want := `{"ok":true}`; got != want {
		t.Fatalf("GlobalJSON() = %q, want %q", got, want)
	}
}

func TestGlobalJSON_ASTModeIgnoresJSONBlocks(t *testing.T) {
	markup := `<html><head>` +
		`<script type="application/json">window.state={"from":"json"}</script>` +
		`<script>window.state={"from":"program"};</script>` +
		`</head></html>`
	doc := parseDoc(t, markup)

	got, err := doc.GlobalJSON(Target{Global: "window", Property: "state", Mode: ModeAST})
	if err != nil {
		t.Fatalf("GlobalJSON() error = %v", err)
	}
	if want := `{"from":"program"}`; got != want {
		t.Fatalf("GlobalJSON() = %q, want %q", got, want)
	}
}

func TestGlobalJSON_NotFound(t *testing.T) {
	doc := parseDoc(t, `<html><head><script>var a = 1;</script></head></html>`)
	for _, mode := range []Mode{ModePrefix, ModeAST} {
		if _, err := doc.GlobalJSON(Target{Global: "window", Property: "__playinfo__", Mode: mode}); !errors.Is(err, ErrMetadataNotFound) {
			t.Fatalf("GlobalJSON(mode=%s) error = %v, want ErrMetadataNotFound", mode, err)
		}
	}
}
