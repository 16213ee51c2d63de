// Package viral scores article text for social-engagement likelihood.
// The calculator is a fixed additive heuristic: deterministic and
// reproducible for a given keyword table, so golden tests stay stable.
package viral

import "strings"

// Score bounds.
const (
	MinScore = 0
	MaxScore = 100
)

// Bonus values per keyword group. A group contributes its full bonus when
// any member matches; extra matches inside the same group add nothing.
const (
	personalImpactBonus = 10
	bigNumberBonus      = 5
	recordBonus         = 15
	emotionBonus        = 8
	villainBonus        = 6
	moneyBonus          = 10
	conflictBonus       = 7
	viralPeopleBonus    = 12
	boringPenalty       = 20
)

type keywordGroup struct {
	keywords []string
	bonus    int
}

var bonusGroups = []keywordGroup{
	{bonus: personalImpactBonus, keywords: []string{"your", "you", "families", "people", "we", "us"}},
	{bonus: bigNumberBonus, keywords: []string{"billion", "million", "thousands", "hundreds of"}},
	{bonus: recordBonus, keywords: []string{"record", "highest ever", "lowest", "worst", "best", "unprecedented"}},
	{bonus: emotionBonus, keywords: []string{"crisis", "shock", "scandal", "outrage", "fury", "slams"}},
	{bonus: villainBonus, keywords: []string{"ceo", "company", "corporation", "boss", "executive"}},
	{bonus: moneyBonus, keywords: []string{"£", "$", "cost", "price", "expensive", "cheap"}},
	{bonus: conflictBonus, keywords: []string{"vs", "versus", "battle", "fight", "war", "clash"}},
	{bonus: viralPeopleBonus, keywords: []string{
		"elon musk", "bezos", "zuckerberg", "prince harry", "meghan",
		"mrbeast", "andrew tate", "kardashian", "trump", "biden",
	}},
}

// Boring finance phrasing gets a flat penalty independent of any bonuses.
var boringKeywords = []string{
	"earnings", "quarterly", "analyst", "forecast", "outlook",
	"rating", "upgrade", "downgrade", "consensus", "eps",
}

func anyMatch(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// Score computes the 0-100 viral engagement score for headline+summary text.
func Score(headline, summary string) float64 {
	text := strings.ToLower(headline + " " + summary)

	score := 0
	for _, g := range bonusGroups {
		if anyMatch(text, g.keywords) {
			score += g.bonus
		}
	}

	if anyMatch(text, boringKeywords) {
		score -= boringPenalty
	}

	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return float64(score)
}
