package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/famomatic/bvget/internal/fetch"
	"github.com/famomatic/bvget/internal/resolve"
)

// DownloadOptions controls quality selection and output placement.
type DownloadOptions struct {
	// QualityID picks a tier from VideoInfo.Qualities.
	// If 0, the best advertised tier is used.
	QualityID int

	// OutputDir overrides Config.DownloadDir for this download.
	OutputDir string

	// KeepTempFiles leaves the fetched stream files next to the merged output.
	KeepTempFiles bool
}

// DownloadResult describes a completed download.
type DownloadResult struct {
	VideoID    string
	Title      string
	Quality    string
	OutputPath string
}

// Download resolves the input and downloads the selected tier into a single
// merged MP4 file.
func (c *Client) Download(ctx context.Context, input string, options DownloadOptions) (*DownloadResult, error) {
	info, err := c.GetVideo(ctx, input)
	if err != nil {
		return nil, err
	}
	return c.DownloadVideo(ctx, info, options)
}

// DownloadVideo downloads a video already resolved by GetVideo, avoiding a
// second page fetch between interactive selection and download.
func (c *Client) DownloadVideo(ctx context.Context, info *VideoInfo, options DownloadOptions) (*DownloadResult, error) {
	if info == nil || info.catalog == nil {
		return nil, errors.New("video info has no quality catalog, use GetVideo")
	}
	ctx, cancel := withDefaultTimeout(ctx, c.config.RequestTimeout)
	defer cancel()

	catalog := info.catalog
	var index int
	if options.QualityID == 0 {
		best, err := resolve.BestQualityIndex(catalog)
		if err != nil {
			return nil, mapError(err)
		}
		index = best
	} else {
		index = lo.IndexOf(catalog.AcceptQuality, options.QualityID)
		if index < 0 {
			return nil, fmt.Errorf("quality id %d not offered for %s", options.QualityID, info.ID)
		}
	}
	label, err := resolve.Label(catalog, catalog.AcceptQuality[index])
	if err != nil {
		return nil, mapError(err)
	}
	sel, err := resolve.Select(catalog, info.Title, index)
	if err != nil {
		return nil, mapError(err)
	}

	log := c.logger.WithField("video_id", info.ID)
	log.Infof("downloading %q at %s", info.Title, label)

	dir := c.config.DownloadDir
	if options.OutputDir != "" {
		dir = options.OutputDir
	}
	orch := fetch.New(c.fetcher, c.mux, c.config.Fs, fetch.Options{
		Dir:           dir,
		KeepTempFiles: c.config.KeepTempFiles || options.KeepTempFiles,
	}, c.logger.WithField("component", "fetch"))

	outputPath, err := orch.Run(ctx, sel)
	if err != nil {
		return nil, mapError(err)
	}
	log.Infof("saved %s", outputPath)

	return &DownloadResult{
		VideoID:    info.ID,
		Title:      info.Title,
		Quality:    label,
		OutputPath: outputPath,
	}, nil
}
