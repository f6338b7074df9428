package muxer

import (
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func testEntry() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func TestNewFFmpeg_DefaultPath(t *testing.T) {
	f := NewFFmpeg("", testEntry())
	if f.path != "ffmpeg" {
		t.Fatalf("path = %q, want %q", f.path, "ffmpeg")
	}
}

func TestMergeArgs(t *testing.T) {
	got := mergeArgs("t_video.mp4", "t_audio.mp4", "t.mp4")
	want := []string{
		"-hide_banner",
		"-nostdin",
		"-loglevel", "error",
		"-i", "t_video.mp4",
		"-i", "t_audio.mp4",
		"-c:v", "copy",
		"-c:a", "aac",
		"-y", "t.mp4",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("mergeArgs() = %v, want %v", got, want)
	}
}

func TestMerge_MissingBinary(t *testing.T) {
	f := NewFFmpeg("/nonexistent/ffmpeg-for-test", testEntry())
	if f.Available() {
		t.Fatalf("Available() = true for a nonexistent binary")
	}

	err := f.Merge(context.Background(), "v.mp4", "a.mp4", "out.mp4")
	var mergeErr *MergeError
	if !errors.As(err, &mergeErr) {
		t.Fatalf("Merge() error = %T(%v), want *MergeError", err, err)
	}
	if mergeErr.ExitCode != -1 {
		t.Fatalf("MergeError.ExitCode = %d, want -1", mergeErr.ExitCode)
	}
	if mergeErr.Unwrap() == nil {
		t.Fatalf("MergeError.Unwrap() = nil, want wrapped exec error")
	}
}

func TestMergeError_Message(t *testing.T) {
	err := &MergeError{ExitCode: 1, Stderr: "Unknown encoder 'xyz'\n"}
	msg := err.Error()
	if !strings.Contains(msg, "exit code 1") {
		t.Fatalf("Error() = %q, want exit code mentioned", msg)
	}
	if !strings.Contains(msg, "Unknown encoder 'xyz'") {
		t.Fatalf("Error() = %q, want captured stderr included", msg)
	}
}

func TestMergeError_FallsBackToStdout(t *testing.T) {
	err := &MergeError{ExitCode: 2, Stdout: "only stdout text"}
	if !strings.Contains(err.Error(), "only stdout text") {
		t.Fatalf("Error() = %q, want stdout fallback", err.Error())
	}
}
