package ingest

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"
)

const (
	DefaultHTTPTimeout  = 30 * time.Second
	DefaultHTTPRetryMax = 3
)

// Open returns a reader over the raw CSV bytes at location, which is either a
// local path or an http(s) URL. A location ending in ".zst" is decompressed
// on the fly.
func Open(ctx context.Context, location string, opts Options) (io.ReadCloser, error) {
	if location == "" {
		return nil, fmt.Errorf("input location is empty")
	}

	var (
		rc  io.ReadCloser
		err error
		p   = location
	)
	if u, perr := url.Parse(location); perr == nil && (u.Scheme == "http" || u.Scheme == "https") {
		p = u.Path
		rc, err = openHTTP(ctx, location, opts)
	} else {
		rc, err = os.Open(location)
	}
	if err != nil {
		return nil, err
	}

	if strings.HasSuffix(strings.ToLower(p), ".zst") {
		dec, err := zstd.NewReader(rc)
		if err != nil {
			rc.Close()
			return nil, fmt.Errorf("open zstd stream %s: %w", location, err)
		}
		log.Debug().Str("location", location).Msg("decompressing zstd input")
		return &zstdReadCloser{Decoder: dec, src: rc}, nil
	}
	return rc, nil
}

func openHTTP(ctx context.Context, location string, opts Options) (io.ReadCloser, error) {
	retry := retryablehttp.NewClient()
	retry.RetryMax = opts.HTTPRetryMax
	retry.HTTPClient.Timeout = opts.HTTPTimeout
	retry.RetryWaitMin = 200 * time.Millisecond
	retry.RetryWaitMax = 5 * time.Second
	retry.Logger = nil

	client := resty.NewWithClient(retry.StandardClient())

	log.Info().
		Str("url", location).
		Int("retry_max", retry.RetryMax).
		Str("timeout", retry.HTTPClient.Timeout.String()).
		Msg("fetching input over http")

	resp, err := client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(location)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", location, err)
	}
	if resp.IsError() {
		resp.RawBody().Close()
		return nil, fmt.Errorf("fetch %s: status %d", location, resp.StatusCode())
	}
	return resp.RawBody(), nil
}

type zstdReadCloser struct {
	*zstd.Decoder
	src io.Closer
}

func (z *zstdReadCloser) Close() error {
	z.Decoder.Close()
	return z.src.Close()
}
