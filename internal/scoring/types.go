package scoring

import "github.com/tensorplex-labs/seorank/internal/record"

// Weights holds one coefficient per record field, in record.Field order.
type Weights [record.NumFields]float64

// Summary describes the distribution of a batch of scores.
type Summary struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}
