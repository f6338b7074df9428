// Package client is the public entry point for resolving bilibili watch
// pages into quality catalogs and downloading videos as merged MP4 files.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/famomatic/bvget/internal/crawler"
	"github.com/famomatic/bvget/internal/muxer"
	"github.com/famomatic/bvget/internal/playinfo"
	"github.com/famomatic/bvget/internal/resolve"
	"github.com/famomatic/bvget/internal/webpage"
)

const (
	defaultBaseURL     = "https://www.bilibili.com"
	defaultAPIBaseURL  = "https://api.bilibili.com"
	defaultDownloadDir = "download"
	defaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/108.0.0.0 Safari/537.36"
)

// Client resolves bilibili videos. Construct with New.
type Client struct {
	config  Config
	fetcher Fetcher
	mux     Muxer
	logger  *logrus.Logger
}

// New creates a new bilibili client, applying Config defaults.
func New(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.APIBaseURL == "" {
		config.APIBaseURL = defaultAPIBaseURL
	}
	if config.UserAgent == "" {
		config.UserAgent = defaultUserAgent
	}
	if config.DownloadDir == "" {
		config.DownloadDir = defaultDownloadDir
	}
	if config.Fs == nil {
		config.Fs = afero.NewOsFs()
	}
	logger := config.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	if config.HTTPClient == nil {
		config.HTTPClient = defaultHTTPClient(config.ProxyURL)
	}
	fetcher := config.Fetcher
	if fetcher == nil {
		fetcher = crawler.New(config.HTTPClient, config.Fs, crawler.Options{
			UserAgent: config.UserAgent,
			Referer:   defaultBaseURL,
			SessData:  config.SessData,
		}, logger.WithField("component", "crawler"))
	}
	mux := config.Muxer
	if mux == nil {
		mux = muxer.NewFFmpeg(config.FFmpegPath, logger.WithField("component", "ffmpeg"))
	}
	return &Client{
		config:  config,
		fetcher: fetcher,
		mux:     mux,
		logger:  logger,
	}
}

// GetVideo fetches the watch page for the input ID/URL and returns its title
// and advertised quality tiers, in page order.
func (c *Client) GetVideo(ctx context.Context, input string) (*VideoInfo, error) {
	ctx, cancel := withDefaultTimeout(ctx, c.config.RequestTimeout)
	defer cancel()

	videoID, err := ExtractVideoID(input)
	if err != nil {
		return nil, err
	}
	log := c.logger.WithField("video_id", videoID)

	pageURL := fmt.Sprintf("%s/video/%s/", c.config.BaseURL, videoID)
	log.Debugf("fetching watch page %s", pageURL)
	body, err := c.fetcher.FetchBody(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch watch page: %w", err)
	}

	doc, err := webpage.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse watch page: %w", err)
	}
	title, err := doc.Title()
	if err != nil {
		return nil, mapError(err)
	}

	raw, err := c.playinfoJSON(ctx, doc, log)
	if err != nil {
		return nil, mapError(err)
	}
	catalog, err := playinfo.Decode([]byte(raw))
	if err != nil {
		return nil, mapError(err)
	}
	if err := resolve.Validate(catalog); err != nil {
		return nil, mapError(err)
	}

	qualities := make([]Quality, 0, len(catalog.AcceptQuality))
	for _, id := range catalog.AcceptQuality {
		label, err := resolve.Label(catalog, id)
		if err != nil {
			return nil, mapError(err)
		}
		qualities = append(qualities, Quality{ID: id, Label: label})
	}

	return &VideoInfo{
		ID:        videoID,
		Title:     title,
		Qualities: qualities,
		catalog:   catalog,
	}, nil
}

// playinfoJSON returns the raw playinfo JSON for the page: the inline
// window.__playinfo__ literal when present, otherwise the playurl API
// response for the page located via the app-shell window.__INITIAL_STATE__
// object.
func (c *Client) playinfoJSON(ctx context.Context, doc *webpage.Document, log *logrus.Entry) (string, error) {
	raw, err := doc.GlobalJSON(webpage.Target{Global: "window", Property: "__playinfo__", Mode: webpage.ModePrefix})
	if err == nil {
		return raw, nil
	}
	if !errors.Is(err, webpage.ErrMetadataNotFound) {
		return "", err
	}

	log.Debug("no inline playinfo, falling back to the playback API")
	state, err := doc.GlobalJSON(webpage.Target{Global: "window", Property: "__INITIAL_STATE__", Mode: webpage.ModeAST})
	if err != nil {
		return "", err
	}
	page, err := playinfo.DecodeInitialState([]byte(state))
	if err != nil {
		return "", err
	}
	// fnval=4048 asks for the full DASH stream set.
	apiURL := fmt.Sprintf("%s/x/player/wbi/playurl?bvid=%s&cid=%d&fnval=4048", c.config.APIBaseURL, page.BVID, page.CID)
	log.Debugf("fetching playinfo %s", apiURL)
	body, err := c.fetcher.FetchBody(ctx, apiURL)
	if err != nil {
		return "", fmt.Errorf("fetch playinfo: %w", err)
	}
	return string(body), nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, webpage.ErrMetadataNotFound):
		return ErrMetadataNotFound
	case errors.Is(err, webpage.ErrTitleMissing):
		return ErrTitleMissing
	case errors.Is(err, webpage.ErrTitleAmbiguous):
		return ErrTitleAmbiguous
	case errors.Is(err, resolve.ErrResourceNotFound):
		return ErrResourceNotFound
	case errors.Is(err, resolve.ErrQualityLabelMissing):
		return ErrQualityLabelMissing
	}

	var decodeErr *playinfo.DecodeError
	if errors.As(err, &decodeErr) {
		return &DecodeError{Field: decodeErr.Field, Err: decodeErr.Err}
	}

	return err
}
