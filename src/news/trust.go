package news

import (
	"math/rand"
	"strings"
	"sync"
)

// Trust tier labels derived from the score.
const (
	TierVerified = "VERIFIED"
	TierModerate = "MODERATE"
	TierCaution  = "CAUTION"
)

// Static source reputation tiers. Matching is case-insensitive substring
// against the article's source name.
var (
	highTierSources = []string{
		"Reuters", "Associated Press", "AP News", "AFP", "BBC News", "BBC",
		"The Guardian", "The New York Times", "The Washington Post", "NPR",
		"PBS", "The Wall Street Journal", "Financial Times", "The Economist",
		"Bloomberg", "Al Jazeera English", "Deutsche Welle", "France 24",
		"The Hindu", "Times of India", "NDTV", "The Indian Express",
	}

	midTierSources = []string{
		"CNN", "ABC News", "CBS News", "NBC News", "MSNBC", "Sky News",
		"USA Today", "Los Angeles Times", "Chicago Tribune", "Axios",
		"Politico", "The Atlantic", "Wired", "Ars Technica", "TechCrunch",
		"The Verge", "Business Insider", "Forbes", "Fortune", "CNBC",
		"Hindustan Times", "India Today", "News18", "Scroll.in", "The Wire",
	}

	tabloidTierSources = []string{
		"Daily Mail", "The Sun", "New York Post", "Daily Mirror", "The Daily Star",
		"Breitbart", "InfoWars", "The Gateway Pundit", "OAN", "Newsmax",
		"BuzzFeed News", "Huffington Post", "Salon", "Vox", "Vice News",
		"RT", "Sputnik", "Daily Express", "Daily Record", "Mirror Online",
	}
)

// Classifier assigns a coarse trust score to a news source by name. The
// score is sampled uniformly from the matched tier's band, so repeated
// calls for the same source vary within the band. The random source is
// injected so tests can pass a deterministic generator.
type Classifier struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewClassifier(rng *rand.Rand) *Classifier {
	return &Classifier{rng: rng}
}

// Score returns a trust score for the source name:
// high tier [85,99], mid tier [60,83], tabloid tier [15,39],
// unknown [45,64]. An empty name scores a flat 50.
func (c *Classifier) Score(sourceName string) int {
	if sourceName == "" {
		return 50
	}

	name := strings.ToLower(strings.TrimSpace(sourceName))

	switch {
	case matchesTier(name, highTierSources):
		return 85 + c.intn(15)
	case matchesTier(name, midTierSources):
		return 60 + c.intn(24)
	case matchesTier(name, tabloidTierSources):
		return 15 + c.intn(25)
	default:
		return 45 + c.intn(20)
	}
}

// TierLabel maps a trust score to its display tier.
func TierLabel(score int) string {
	switch {
	case score >= 75:
		return TierVerified
	case score >= 50:
		return TierModerate
	default:
		return TierCaution
	}
}

func matchesTier(normalized string, tier []string) bool {
	for _, s := range tier {
		if strings.Contains(normalized, strings.ToLower(s)) {
			return true
		}
	}
	return false
}

// rand.Rand is not safe for concurrent use; the classifier is shared
// across requests.
func (c *Classifier) intn(n int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.Intn(n)
}
