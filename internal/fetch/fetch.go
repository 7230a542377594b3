// Package fetch downloads release assets to local files.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/vtx-plugins/vtx-installer/internal/messages"
)

// DefaultMaxBytes caps a single download.
const DefaultMaxBytes = int64(512 * 1024 * 1024)

var (
	defaultHTTPClient = &http.Client{Timeout: 10 * time.Minute}
	osOpenFile        = os.OpenFile
	osRemove          = os.Remove
)

// DownloadError reports a failed transfer. StatusCode is zero for transport errors.
type DownloadError struct {
	URL        string
	StatusCode int
	msg        string
	Err        error
}

func (e *DownloadError) Error() string {
	return e.msg
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// Options configures a Downloader. Zero values select defaults.
type Options struct {
	Client    *http.Client
	Token     string
	UserAgent string
	// MaxBytes caps each response body; zero means DefaultMaxBytes.
	MaxBytes int64
	// Progress receives one line per completed download; nil disables it.
	Progress io.Writer
}

// Downloader streams HTTP resources to disk.
type Downloader struct {
	client    *http.Client
	token     string
	userAgent string
	maxBytes  int64

	mu       sync.Mutex
	progress io.Writer
}

// New creates a Downloader.
func New(opts Options) *Downloader {
	d := &Downloader{
		client:    opts.Client,
		token:     strings.TrimSpace(opts.Token),
		userAgent: opts.UserAgent,
		maxBytes:  opts.MaxBytes,
		progress:  opts.Progress,
	}
	if d.client == nil {
		d.client = defaultHTTPClient
	}
	if d.maxBytes <= 0 {
		d.maxBytes = DefaultMaxBytes
	}
	if d.userAgent == "" {
		d.userAgent = "vtx-install"
	}
	return d
}

// Fetch downloads url into dest, creating it with mode 0600.
// A single attempt is made. dest is removed when the download fails.
func (d *Downloader) Fetch(ctx context.Context, url string, dest string) (err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &DownloadError{URL: url, msg: fmt.Sprintf(messages.FetchRequestFmt, url, err), Err: err}
	}
	req.Header.Set("User-Agent", d.userAgent)
	if d.token != "" {
		req.Header.Set("Authorization", "Bearer "+d.token)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return &DownloadError{URL: url, msg: fmt.Sprintf(messages.FetchRequestFmt, url, err), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &DownloadError{
			URL:        url,
			StatusCode: resp.StatusCode,
			msg:        fmt.Sprintf(messages.FetchStatusFmt, url, resp.Status),
		}
	}

	file, err := osOpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return &DownloadError{URL: url, msg: fmt.Sprintf(messages.FetchCreateFileFmt, url, dest, err), Err: err}
	}
	defer func() {
		if err != nil {
			_ = osRemove(dest)
		}
	}()

	n, copyErr := io.Copy(file, io.LimitReader(resp.Body, d.maxBytes+1))
	closeErr := file.Close()
	if copyErr != nil {
		return &DownloadError{URL: url, msg: fmt.Sprintf(messages.FetchRequestFmt, url, copyErr), Err: copyErr}
	}
	if n > d.maxBytes {
		return &DownloadError{URL: url, msg: fmt.Sprintf(messages.FetchTooLargeFmt, url, d.maxBytes)}
	}
	if closeErr != nil {
		return &DownloadError{URL: url, msg: fmt.Sprintf(messages.FetchWriteFileFmt, url, dest, closeErr), Err: closeErr}
	}

	d.reportf(messages.FetchDownloadedFmt, path.Base(req.URL.Path), humanize.Bytes(uint64(n)))
	return nil
}

// Job is one download performed by FetchAll.
type Job struct {
	URL  string
	Dest string
}

// FetchAll runs jobs concurrently. The first failure cancels the rest and is returned.
func (d *Downloader) FetchAll(ctx context.Context, jobs ...Job) error {
	eg, ctx := errgroup.WithContext(ctx)
	for _, job := range jobs {
		job := job
		eg.Go(func() error {
			return d.Fetch(ctx, job.URL, job.Dest)
		})
	}
	return eg.Wait()
}

func (d *Downloader) reportf(format string, args ...any) {
	if d.progress == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	_, _ = fmt.Fprintf(d.progress, format, args...)
}

// IsNotFound reports whether err is a DownloadError for a 404 response.
func IsNotFound(err error) bool {
	var dlErr *DownloadError
	return errors.As(err, &dlErr) && dlErr.StatusCode == http.StatusNotFound
}
