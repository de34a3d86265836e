package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseField(t *testing.T) {
	f, err := ParseField(" Site_Rank ")
	require.NoError(t, err)
	assert.Equal(t, SiteRank, f)
	assert.Equal(t, "site_rank", f.String())

	_, err = ParseField("bounce_rate")
	assert.Error(t, err)
	assert.Equal(t, "field(9)", Field(9).String())
}

func TestNewAndKeys(t *testing.T) {
	r := New("a.com", 1, 2, 3)
	assert.Equal(t, [NumFields]float64{1, 2, 3, 0, 0, 0}, r.Features)
	assert.Equal(t, 2.0, r.Get(KeywordGaps))

	c := Collection{New("x", 40), New("y", 10)}
	assert.Equal(t, []float64{40, 10}, c.Keys(By(OptimizationOpportunities)))
	assert.Equal(t, []string{"x", "y"}, c.IDs())
}

func TestCloneIsIndependent(t *testing.T) {
	c := Collection{New("x", 1), New("y", 2)}
	cp := c.Clone()
	cp[0].Features[0] = 99
	cp[1], cp[0] = cp[0], cp[1]

	assert.Equal(t, 1.0, c[0].Features[0])
	assert.Equal(t, "x", c[0].ID)
	assert.Nil(t, Collection(nil).Clone())
}
