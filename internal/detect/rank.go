package detect

import (
	"sort"

	"github.com/story-radar/backend/internal/models"
	"github.com/story-radar/backend/internal/viral"
)

// DefaultStoryLimit is how many ranked stories the renderer consumes per run.
const DefaultStoryLimit = 4

// Rank filters, orders and truncates detector outputs into the final story
// list. Stories under the posting threshold (including null stories) are
// dropped; the sort is stable, so equal scores keep detector emission order.
func Rank(candidates []models.Story, limit int) []models.Story {
	if limit <= 0 {
		limit = DefaultStoryLimit
	}

	kept := make([]models.Story, 0, len(candidates))
	for _, s := range candidates {
		if s.ViralityScore >= viral.PostThreshold {
			kept = append(kept, s)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].ViralityScore > kept[j].ViralityScore
	})

	if len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}
