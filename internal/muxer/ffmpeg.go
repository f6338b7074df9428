// Package muxer merges separately fetched video and audio streams through an
// external ffmpeg process.
package muxer

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/sirupsen/logrus"
)

// Muxer defines the merge operation performed after both streams are on
// disk.
type Muxer interface {
	Available() bool
	Merge(ctx context.Context, videoPath, audioPath, outputPath string) error
}

// MergeError reports an ffmpeg run that exited non-zero or terminated
// abnormally. Stdout and Stderr carry the captured process output for
// diagnostics; ExitCode is -1 when the process did not exit on its own.
type MergeError struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

func (e *MergeError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		msg = strings.TrimSpace(e.Stdout)
	}
	if msg == "" {
		return fmt.Sprintf("ffmpeg merge failed (exit code %d): %v", e.ExitCode, e.Err)
	}
	return fmt.Sprintf("ffmpeg merge failed (exit code %d): %s", e.ExitCode, msg)
}

func (e *MergeError) Unwrap() error { return e.Err }

// FFmpeg implements Muxer using the ffmpeg command line tool.
type FFmpeg struct {
	path string
	log  *logrus.Entry
}

// NewFFmpeg returns an FFmpeg muxer. An empty path falls back to "ffmpeg" in
// PATH.
func NewFFmpeg(path string, log *logrus.Entry) *FFmpeg {
	if path == "" {
		path = "ffmpeg"
	}
	return &FFmpeg{path: path, log: log}
}

// Available checks if ffmpeg is executable.
func (f *FFmpeg) Available() bool {
	_, err := exec.LookPath(f.path)
	return err == nil
}

func mergeArgs(videoPath, audioPath, outputPath string) []string {
	// ffmpeg -i video.mp4 -i audio.mp4 -c:v copy -c:a aac -y output.mp4
	return []string{
		"-hide_banner",
		"-nostdin",
		"-loglevel", "error",
		"-i", videoPath,
		"-i", audioPath,
		"-c:v", "copy",
		"-c:a", "aac",
		"-y", outputPath,
	}
}

// Merge combines the two inputs into outputPath, copying the video stream
// unchanged and transcoding audio to AAC. Inputs are left in place; the
// caller owns cleanup.
func (f *FFmpeg) Merge(ctx context.Context, videoPath, audioPath, outputPath string) error {
	args := mergeArgs(videoPath, audioPath, outputPath)
	cmd := exec.CommandContext(ctx, f.path, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	f.log.Debugf("running %s", shellescape.QuoteCommand(append([]string{f.path}, args...)))
	if err := cmd.Run(); err != nil {
		exitCode := -1
		if cmd.ProcessState != nil {
			exitCode = cmd.ProcessState.ExitCode()
		}
		return &MergeError{
			ExitCode: exitCode,
			Stdout:   stdout.String(),
			Stderr:   stderr.String(),
			Err:      err,
		}
	}
	return nil
}
