// Package ingest reads website records from delimited text.
//
// Ingestion never fails a run: an unreadable source yields an empty
// collection, and malformed numeric tokens become 0.
package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/seorank/internal/record"
)

// minFields is the identifier plus the six numeric features.
const minFields = 1 + record.NumFields

type Options struct {
	HasHeader    bool
	HTTPTimeout  time.Duration
	HTTPRetryMax int
}

func (o Options) withDefaults() Options {
	if o.HTTPTimeout <= 0 {
		o.HTTPTimeout = DefaultHTTPTimeout
	}
	if o.HTTPRetryMax < 0 {
		o.HTTPRetryMax = DefaultHTTPRetryMax
	}
	return o
}

// Stats describes what happened while parsing.
type Stats struct {
	Rows            int `json:"rows"`
	MalformedFields int `json:"malformed_fields"`
	MissingFields   int `json:"missing_fields"`
	SkippedRows     int `json:"skipped_rows"`
}

// Load reads every record at location. Failures to open the source are
// logged and produce an empty collection.
func Load(ctx context.Context, location string, opts Options) (record.Collection, Stats) {
	opts = opts.withDefaults()
	start := time.Now()

	rc, err := Open(ctx, location, opts)
	if err != nil {
		log.Error().Err(err).Str("location", location).Msg("error opening input, continuing with an empty collection")
		return record.Collection{}, Stats{}
	}
	defer rc.Close()

	c, stats := Parse(rc, opts)
	log.Info().
		Str("location", location).
		Int("rows", stats.Rows).
		Int("malformed_fields", stats.MalformedFields).
		Int("missing_fields", stats.MissingFields).
		Int("skipped_rows", stats.SkippedRows).
		Dur("elapsed", time.Since(start)).
		Msg("input loaded")
	return c, stats
}

// Parse reads one record per line: an identifier followed by six numeric
// fields. Blank lines are skipped, extra columns are ignored and missing or
// unparsable numeric fields are set to 0.
func Parse(r io.Reader, opts Options) (record.Collection, Stats) {
	var stats Stats
	c := record.Collection{}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header := opts.HasHeader
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				stats.SkippedRows++
				log.Warn().Err(err).Int("line", perr.Line).Msg("skipping unreadable row")
				continue
			}
			log.Error().Err(err).Int("rows", stats.Rows).Msg("input stream failed, keeping rows read so far")
			break
		}

		line, _ := cr.FieldPos(0)
		if header {
			header = false
			log.Debug().Int("line", line).Strs("header", fields).Msg("skipping header row")
			continue
		}

		rec := record.Record{ID: strings.TrimSpace(fields[0])}
		if len(fields) < minFields {
			stats.MissingFields += minFields - len(fields)
			log.Warn().Int("line", line).Int("fields", len(fields)).Str("id", rec.ID).
				Msgf("row has fewer than %d fields, missing values default to 0", minFields)
		}
		for f := 0; f < record.NumFields && f+1 < len(fields); f++ {
			v, ok := parseNumber(fields[f+1])
			if !ok {
				stats.MalformedFields++
				log.Warn().Int("line", line).Str("id", rec.ID).Str("field", record.Field(f).String()).
					Str("token", fields[f+1]).Msg("invalid numeric field, defaulting to 0")
			}
			rec.Features[f] = v
		}

		c = append(c, rec)
		stats.Rows++
	}
	return c, stats
}

// parseNumber parses a finite float. Anything else yields (0, false).
func parseNumber(tok string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
