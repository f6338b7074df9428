package client

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Fetcher performs the platform HTTP traffic: page and API bodies plus
// stream-to-disk downloads. The default implementation sends the platform
// headers and the SESSDATA cookie; tests inject fakes.
type Fetcher interface {
	FetchBody(ctx context.Context, url string) ([]byte, error)
	DownloadTo(ctx context.Context, url, path string) error
}

// Muxer merges a fetched video and audio stream into one container.
type Muxer interface {
	Available() bool
	Merge(ctx context.Context, videoPath, audioPath, outputPath string) error
}

// Config holds configuration for the bilibili client.
type Config struct {
	// HTTPClient is the client used for making requests.
	// If nil, a proxy-aware default client is used.
	HTTPClient *http.Client

	// ProxyURL is the optional proxy URL to use for requests.
	// If HTTPClient is provided, this field is ignored.
	ProxyURL string

	// SessData is the "SESSDATA" cookie value of a logged-in session.
	// Without it the platform only serves the lower resolution tiers.
	SessData string

	// UserAgent overrides the User-Agent header on platform requests.
	UserAgent string

	// BaseURL overrides the watch-page host (default: https://www.bilibili.com).
	BaseURL string

	// APIBaseURL overrides the playback API host (default: https://api.bilibili.com).
	APIBaseURL string

	// DownloadDir is where streams and merged files land (default: "download").
	DownloadDir string

	// FFmpegPath locates the ffmpeg binary (default: "ffmpeg" on PATH).
	FFmpegPath string

	// KeepTempFiles leaves the fetched stream files next to the merged output.
	KeepTempFiles bool

	// RequestTimeout bounds each call when the caller's context carries no
	// deadline. Zero means no client-imposed timeout.
	RequestTimeout time.Duration

	// Logger receives client logs. If nil, logging is discarded.
	Logger *logrus.Logger

	// Fs is the filesystem streams are written to (default: the OS filesystem).
	Fs afero.Fs

	// Fetcher overrides platform HTTP traffic. If nil, a Crawler built from
	// the fields above is used.
	Fetcher Fetcher

	// Muxer overrides the merge step (default: ffmpeg at FFmpegPath).
	Muxer Muxer
}
