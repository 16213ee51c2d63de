package viral

// Potential buckets a viral score into engagement tiers. The mapping is
// monotonic in the score.
type Potential string

const (
	PotentialHigh     Potential = "high viral potential"
	PotentialModerate Potential = "moderate viral potential"
	PotentialLow      Potential = "low viral potential"
	PotentialUnlikely Potential = "unlikely to go viral"
)

// Tier thresholds. PostThreshold is also the ranking floor for stories.
const (
	HighThreshold     = 20
	ModerateThreshold = 10
	PostThreshold     = 5
)

// Classify maps a score to its engagement tier.
func Classify(score float64) Potential {
	switch {
	case score >= HighThreshold:
		return PotentialHigh
	case score >= ModerateThreshold:
		return PotentialModerate
	case score >= PostThreshold:
		return PotentialLow
	default:
		return PotentialUnlikely
	}
}

// Topics that need a higher score before posting is worthwhile.
var (
	lowValueTopics = map[string]bool{"Other": true, "Generic Business": true}
	nicheTopics    = map[string]bool{"International": true, "Science": true}
)

// Topic-specific posting floors.
const (
	lowValueFloor = 15
	nicheFloor    = 10
)

// ShouldPost is the posting-decision predicate: it combines the viral score
// with the article's topic. The returned reason is for operator logs.
func ShouldPost(score float64, topic string) (bool, string) {
	if score < PostThreshold {
		return false, "viral score too low"
	}
	if lowValueTopics[topic] && score < lowValueFloor {
		return false, "low-value topic needs a very high score"
	}
	if nicheTopics[topic] && score < nicheFloor {
		return false, "niche topic needs a higher score"
	}
	return true, "approved for posting"
}
