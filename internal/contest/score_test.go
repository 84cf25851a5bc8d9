package contest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreFullCreditWindow(t *testing.T) {
	assert.Equal(t, 100, Score(10, 20, 0))
	assert.Equal(t, 100, Score(10, 20, 5))
	assert.Equal(t, 100, Score(10, 20, 10)) // boundary: elapsed == t1
}

func TestScoreExpired(t *testing.T) {
	assert.Equal(t, 0, Score(10, 20, 20.0001))
	assert.Equal(t, 0, Score(10, 20, 500))
}

func TestScoreLinearDecay(t *testing.T) {
	// floor(100 * (20-15) / (20-10)) = 50
	assert.Equal(t, 50, Score(10, 20, 15))
	assert.Equal(t, 90, Score(10, 20, 11))
	assert.Equal(t, 10, Score(10, 20, 19))
	assert.Equal(t, 0, Score(10, 20, 20)) // boundary: elapsed == t2
}

func TestScoreFloorsFractions(t *testing.T) {
	// 100 * (30-17) / (30-10) = 65.0; 100 * (30-17.5) / 20 = 62.5 -> 62
	assert.Equal(t, 65, Score(10, 30, 17))
	assert.Equal(t, 62, Score(10, 30, 17.5))
}

func TestScoreMonotonicAndBounded(t *testing.T) {
	prev := 101
	for elapsed := 0.0; elapsed <= 25; elapsed += 0.25 {
		s := Score(10, 20, elapsed)
		assert.GreaterOrEqual(t, s, 0)
		assert.LessOrEqual(t, s, 100)
		assert.LessOrEqual(t, s, prev, "score must not increase with elapsed time (elapsed=%v)", elapsed)
		prev = s
	}
}
