package tiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointValues(t *testing.T) {
	ld := EnglishLetterDistribution()
	assert.Equal(t, 0, ld.PointValue(Blank))
	assert.Equal(t, 1, ld.PointValue("E"))
	assert.Equal(t, 2, ld.PointValue("D"))
	assert.Equal(t, 3, ld.PointValue("B"))
	assert.Equal(t, 4, ld.PointValue("F"))
	assert.Equal(t, 5, ld.PointValue("K"))
	assert.Equal(t, 8, ld.PointValue("J"))
	assert.Equal(t, 10, ld.PointValue("Q"))
	assert.Equal(t, 10, ld.PointValue("Z"))
}

func TestCounts(t *testing.T) {
	ld := EnglishLetterDistribution()
	counts := ld.Counts()

	total := 0
	for _, n := range counts {
		total += n
	}
	assert.Equal(t, SetSize, total)

	assert.Equal(t, 12, counts["E"])
	assert.Equal(t, 9, counts["A"])
	assert.Equal(t, 9, counts["I"])
	assert.Equal(t, 1, counts["Q"])
	assert.Equal(t, 1, counts["Z"])
	assert.Equal(t, 2, counts[Blank])
	// 26 letters plus the blank.
	assert.Len(t, counts, 27)
}
