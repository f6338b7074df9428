// Package fetch drives the concurrent retrieval of a resolved stream pair
// and the merge into the final output file.
package fetch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/famomatic/bvget/internal/muxer"
	"github.com/famomatic/bvget/internal/resolve"
)

// Downloader is the slice of the transport the orchestrator depends on.
type Downloader interface {
	DownloadTo(ctx context.Context, url, path string) error
}

// Options tune one orchestrator run.
type Options struct {
	// Dir receives the temporary stream files and the final output.
	// Created on demand. Defaults to "download".
	Dir string
	// KeepTempFiles leaves the fetched streams next to the output instead
	// of removing them after a successful merge.
	KeepTempFiles bool
}

// Orchestrator owns the fetch, merge and cleanup sequence for one resolved
// selection.
type Orchestrator struct {
	downloader Downloader
	mux        muxer.Muxer
	fs         afero.Afero
	opts       Options
	log        *logrus.Entry
}

func New(downloader Downloader, mux muxer.Muxer, fs afero.Fs, opts Options, log *logrus.Entry) *Orchestrator {
	if opts.Dir == "" {
		opts.Dir = "download"
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Orchestrator{
		downloader: downloader,
		mux:        mux,
		fs:         afero.Afero{Fs: fs},
		opts:       opts,
		log:        log,
	}
}

// Run fetches video and audio concurrently, merges them and removes the
// temporary inputs. Both fetches are started together and both are awaited;
// the merge never starts before both finished, cleanup never before the
// merge finished. Returns the final output path.
func (o *Orchestrator) Run(ctx context.Context, sel resolve.Selection) (string, error) {
	videoPath := filepath.Join(o.opts.Dir, sel.Title+"_video.mp4")
	audioPath := filepath.Join(o.opts.Dir, sel.Title+"_audio.mp4")
	outputPath := filepath.Join(o.opts.Dir, sel.Title+".mp4")

	if err := o.fs.MkdirAll(o.opts.Dir, 0755); err != nil {
		return "", err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	o.log.Debugf("fetching streams for %q", sel.Title)
	errCh := make(chan error, 1)
	var wg sync.WaitGroup
	for _, stream := range []struct{ url, path string }{
		{url: sel.VideoURL, path: videoPath},
		{url: sel.AudioURL, path: audioPath},
	} {
		stream := stream
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := o.downloader.DownloadTo(ctx, stream.url, stream.path); err != nil {
				select {
				case errCh <- err:
				default:
				}
				cancel()
			}
		}()
	}
	wg.Wait()

	select {
	case err := <-errCh:
		// Partial files may or may not exist; removal is best effort.
		_ = o.fs.Remove(videoPath)
		_ = o.fs.Remove(audioPath)
		return "", fmt.Errorf("fetch streams: %w", err)
	default:
	}

	o.log.Debugf("merging into %q", outputPath)
	if err := o.mux.Merge(ctx, videoPath, audioPath, outputPath); err != nil {
		// Inputs stay on disk for inspection.
		return "", err
	}

	if !o.opts.KeepTempFiles {
		o.removeTemp(videoPath)
		o.removeTemp(audioPath)
	}
	return outputPath, nil
}

// removeTemp warns on failure; the merged output already exists at this
// point, so a leftover temp file is never fatal.
func (o *Orchestrator) removeTemp(path string) {
	if err := o.fs.Remove(path); err != nil {
		o.log.Warnf("failed to remove temporary file %s: %v", path, err)
	}
}
