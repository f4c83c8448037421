package news

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestClassifier() *Classifier {
	return NewClassifier(rand.New(rand.NewSource(1)))
}

func TestScoreBands(t *testing.T) {
	c := newTestClassifier()

	cases := map[string]struct {
		source   string
		min, max int
	}{
		"high tier":        {"Reuters World News", 85, 99},
		"high tier casing": {"bbc news", 85, 99},
		"mid tier":         {"TechCrunch", 60, 83},
		"tabloid tier":     {"InfoWars Daily", 15, 39},
		"unknown":          {"Random Local Blog", 45, 64},
	}

	// Scores are sampled per call, so check the whole band repeatedly.
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 100; i++ {
				score := c.Score(tc.source)
				assert.GreaterOrEqual(t, score, tc.min)
				assert.LessOrEqual(t, score, tc.max)
			}
		})
	}
}

func TestScoreEmptySourceIsNeutral(t *testing.T) {
	c := newTestClassifier()
	assert.Equal(t, 50, c.Score(""))
}

func TestTierLabel(t *testing.T) {
	assert.Equal(t, TierVerified, TierLabel(99))
	assert.Equal(t, TierVerified, TierLabel(75))
	assert.Equal(t, TierModerate, TierLabel(74))
	assert.Equal(t, TierModerate, TierLabel(50))
	assert.Equal(t, TierCaution, TierLabel(49))
	assert.Equal(t, TierCaution, TierLabel(0))
}

func TestHighTierAlwaysVerified(t *testing.T) {
	c := newTestClassifier()
	for i := 0; i < 100; i++ {
		assert.Equal(t, TierVerified, TierLabel(c.Score("Reuters")))
	}
}

func TestTabloidTierAlwaysCaution(t *testing.T) {
	c := newTestClassifier()
	for i := 0; i < 100; i++ {
		assert.Equal(t, TierCaution, TierLabel(c.Score("Daily Mail Online")))
	}
}
