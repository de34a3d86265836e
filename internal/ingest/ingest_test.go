package ingest

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensorplex-labs/seorank/internal/record"
)

const sample = `alpha.com,40,1,2,3,4,5
beta.com,10,0.5,0.25,0,1,2

gamma.com,30,x,2,3,4,5
"delta, inc.com",20,1,1,1,1,1,extra
`

func TestParse(t *testing.T) {
	c, stats := Parse(strings.NewReader(sample), Options{})

	require.Len(t, c, 4)
	assert.Equal(t, []string{"alpha.com", "beta.com", "gamma.com", "delta, inc.com"}, c.IDs())
	assert.Equal(t, record.New("alpha.com", 40, 1, 2, 3, 4, 5), c[0])
	assert.Equal(t, record.New("gamma.com", 30, 0, 2, 3, 4, 5), c[2])
	assert.Equal(t, Stats{Rows: 4, MalformedFields: 1}, stats)
}

func TestParseRecoversMalformedAndMissingFields(t *testing.T) {
	in := "a.com,NaN,inf,1e999,-3,abc\nb.com\n"
	c, stats := Parse(strings.NewReader(in), Options{})

	require.Len(t, c, 2)
	assert.Equal(t, record.New("a.com", 0, 0, 0, -3, 0, 0), c[0])
	assert.Equal(t, record.New("b.com"), c[1])
	assert.Equal(t, 4, stats.MalformedFields)
	assert.Equal(t, 1+6, stats.MissingFields)
	assert.Equal(t, 2, stats.Rows)
}

func TestParseHeader(t *testing.T) {
	in := "site,opp,gaps,easy,buyer,rank,time\na.com,1,2,3,4,5,6\n"

	c, stats := Parse(strings.NewReader(in), Options{HasHeader: true})
	require.Len(t, c, 1)
	assert.Equal(t, "a.com", c[0].ID)
	assert.Zero(t, stats.MalformedFields)

	// without the option the header is just a row of malformed numbers
	c, stats = Parse(strings.NewReader(in), Options{})
	require.Len(t, c, 2)
	assert.Equal(t, record.New("site"), c[0])
	assert.Equal(t, 6, stats.MalformedFields)
}

func TestParseEmpty(t *testing.T) {
	c, stats := Parse(strings.NewReader(""), Options{})
	assert.NotNil(t, c)
	assert.Empty(t, c)
	assert.Equal(t, Stats{}, stats)
}

func TestLoadLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sites.csv")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	c, stats := Load(context.Background(), path, Options{})
	assert.Len(t, c, 4)
	assert.Equal(t, 4, stats.Rows)
}

func TestLoadMissingFileYieldsEmptyCollection(t *testing.T) {
	c, stats := Load(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), Options{})
	assert.NotNil(t, c)
	assert.Empty(t, c)
	assert.Equal(t, Stats{}, stats)

	c, _ = Load(context.Background(), "", Options{})
	assert.Empty(t, c)
}

func TestLoadZstdFile(t *testing.T) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = enc.Write([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, enc.Close())

	path := filepath.Join(t.TempDir(), "sites.csv.zst")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	c, _ := Load(context.Background(), path, Options{})
	assert.Equal(t, []string{"alpha.com", "beta.com", "gamma.com", "delta, inc.com"}, c.IDs())
}

func TestLoadCorruptZstdFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sites.csv.zst")
	require.NoError(t, os.WriteFile(path, []byte("definitely not zstd"), 0o600))

	c, _ := Load(context.Background(), path, Options{})
	assert.Empty(t, c)
}

func TestLoadHTTP(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sites.csv" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(sample))
	}))
	t.Cleanup(ts.Close)

	c, stats := Load(context.Background(), ts.URL+"/sites.csv", Options{HTTPRetryMax: 0})
	assert.Len(t, c, 4)
	assert.Equal(t, 1, stats.MalformedFields)

	c, _ = Load(context.Background(), ts.URL+"/missing.csv", Options{HTTPRetryMax: 0})
	assert.Empty(t, c)
}

func TestLoadHTTPZstd(t *testing.T) {
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	body := enc.EncodeAll([]byte(sample), nil)
	require.NoError(t, enc.Close())

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	t.Cleanup(ts.Close)

	c, _ := Load(context.Background(), ts.URL+"/export/sites.csv.zst?v=2", Options{})
	assert.Len(t, c, 4)
}

func TestParseNumber(t *testing.T) {
	v, ok := parseNumber(" 12.5 ")
	assert.True(t, ok)
	assert.Equal(t, 12.5, v)

	for _, tok := range []string{"", "12abc", "NaN", "-Inf", "1e400"} {
		v, ok := parseNumber(tok)
		assert.False(t, ok, tok)
		assert.Zero(t, v, tok)
	}
}
