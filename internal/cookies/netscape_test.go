package cookies

import (
	"strings"
	"testing"
)

const sampleCookiesFile = "# Netscape HTTP Cookie File\n" +
	"# This is a generated file! Do not edit.\n" +
	"\n" +
	".bilibili.com\tTRUE\t/\tFALSE\t1893456000\tbuvid3\tabc-def\n" +
	"#HttpOnly_.bilibili.com\tTRUE\t/\tTRUE\t1893456000\tSESSDATA\tsecret%2Ctoken\n" +
	"malformed line without tabs\n"

func TestParseNetscape(t *testing.T) {
	cookies, err := ParseNetscape(strings.NewReader(sampleCookiesFile))
	if err != nil {
		t.Fatalf("ParseNetscape() error = %v", err)
	}
	if got, want := len(cookies), 2; got != want {
		t.Fatalf("len(cookies) = %d, want %d", got, want)
	}

	first := cookies[0]
	if first.Name != "buvid3" || first.Value != "abc-def" || first.Domain != ".bilibili.com" {
		t.Fatalf("cookies[0] = %+v, want buvid3=abc-def on .bilibili.com", first)
	}
	if first.HttpOnly {
		t.Fatalf("cookies[0].HttpOnly = true, want false")
	}

	second := cookies[1]
	if second.Name != "SESSDATA" {
		t.Fatalf("cookies[1].Name = %q, want SESSDATA", second.Name)
	}
	if !second.HttpOnly {
		t.Fatalf("cookies[1].HttpOnly = false, want true for #HttpOnly_ line")
	}
	if !second.Secure {
		t.Fatalf("cookies[1].Secure = false, want true")
	}
}

func TestFindValue(t *testing.T) {
	cookies, err := ParseNetscape(strings.NewReader(sampleCookiesFile))
	if err != nil {
		t.Fatalf("ParseNetscape() error = %v", err)
	}
	if got, want := FindValue(cookies, "SESSDATA"), "secret%2Ctoken"; got != want {
		t.Fatalf("FindValue(SESSDATA) = %q, want %q", got, want)
	}
	if got := FindValue(cookies, "missing"); got != "" {
		t.Fatalf("FindValue(missing) = %q, want empty", got)
	}
}
