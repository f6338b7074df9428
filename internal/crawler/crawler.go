// Package crawler is the HTTP transport for watch pages, API calls and
// stream payloads.
package crawler

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// StatusError reports a non-success HTTP response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

// Options carries the request identity the platform expects. SessData is the
// login credential; without it the page only advertises low-quality tiers.
type Options struct {
	UserAgent string
	Referer   string
	SessData  string
}

// Crawler performs the two transport operations the pipeline needs: fetch a
// body into memory and stream a payload to a file. It never retries.
type Crawler struct {
	client *http.Client
	fs     afero.Afero
	opts   Options
	log    *logrus.Entry
}

func New(client *http.Client, fs afero.Fs, opts Options, log *logrus.Entry) *Crawler {
	if client == nil {
		client = http.DefaultClient
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Crawler{client: client, fs: afero.Afero{Fs: fs}, opts: opts, log: log}
}

func (c *Crawler) newRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if c.opts.UserAgent != "" {
		req.Header.Set("User-Agent", c.opts.UserAgent)
	}
	if c.opts.Referer != "" {
		req.Header.Set("Referer", c.opts.Referer)
	}
	cookie := "CURRENT_QUALITY=32;"
	if c.opts.SessData != "" {
		cookie += "SESSDATA=" + c.opts.SessData
	}
	req.Header.Set("Cookie", cookie)
	return req, nil
}

// FetchBody GETs url and returns the whole response body. Some endpoints
// force gzip regardless of Accept-Encoding, which bypasses the transport's
// transparent decompression, so that case is decoded here.
func (c *Crawler) FetchBody(ctx context.Context, url string) ([]byte, error) {
	req, err := c.newRequest(ctx, url)
	if err != nil {
		return nil, err
	}
	c.log.Debugf("GET %s", url)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body := io.Reader(resp.Body)
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		body = gz
	}
	return io.ReadAll(body)
}

// DownloadTo streams url into path, creating parent directories on demand.
func (c *Crawler) DownloadTo(ctx context.Context, url, path string) error {
	req, err := c.newRequest(ctx, url)
	if err != nil {
		return err
	}
	c.log.Debugf("download %s -> %s", url, path)
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := c.fs.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := c.fs.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
