// Package record defines the website record ranked by seorank.
package record

import (
	"fmt"
	"strings"
)

// Field indexes one of the six numeric features of a Record.
type Field int

const (
	OptimizationOpportunities Field = iota
	KeywordGaps
	EasyToRankKeywords
	BuyerKeywords
	SiteRank
	DailyTimeOnSite

	NumFields = 6
)

var fieldNames = [NumFields]string{
	"optimization_opportunities",
	"keyword_gaps",
	"easy_to_rank_keywords",
	"buyer_keywords",
	"site_rank",
	"daily_time_on_site",
}

func (f Field) String() string {
	if f < 0 || int(f) >= NumFields {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return fieldNames[f]
}

// ParseField maps a field name such as "site_rank" to its Field.
func ParseField(name string) (Field, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, fn := range fieldNames {
		if fn == n {
			return Field(i), nil
		}
	}
	return 0, fmt.Errorf("unknown record field %q", name)
}

// Record is one website row. It is a value type: sort engines move whole
// records and never share them between collections.
type Record struct {
	ID       string
	Features [NumFields]float64
}

// New builds a record from an identifier and up to six feature values in
// field order. Missing values stay 0.
func New(id string, features ...float64) Record {
	r := Record{ID: id}
	copy(r.Features[:], features)
	return r
}

// Get returns the value of field f.
func (r Record) Get(f Field) float64 {
	return r.Features[f]
}

// KeyFunc extracts the sort key from a record.
type KeyFunc func(Record) float64

// By returns a KeyFunc reading field f.
func By(f Field) KeyFunc {
	return func(r Record) float64 {
		return r.Features[f]
	}
}

// Collection is an ordered batch of records owned by a single run.
type Collection []Record

// Clone returns an independent copy of c.
func (c Collection) Clone() Collection {
	if c == nil {
		return nil
	}
	out := make(Collection, len(c))
	copy(out, c)
	return out
}

// Keys extracts key values in collection order.
func (c Collection) Keys(key KeyFunc) []float64 {
	keys := make([]float64, len(c))
	for i := range c {
		keys[i] = key(c[i])
	}
	return keys
}

// IDs returns the identifiers in collection order.
func (c Collection) IDs() []string {
	ids := make([]string, len(c))
	for i := range c {
		ids[i] = c[i].ID
	}
	return ids
}
