package models

import "time"

// ArticleQuery is the windowed read contract against the article store.
// Nil pointer fields and zero values mean "no filter". Start is inclusive,
// End exclusive, both against fetched_at.
type ArticleQuery struct {
	Start         *time.Time
	End           *time.Time
	Country       Country
	Scope         Scope
	MinViralScore *float64
	Annotated     *bool
	Size          int
}
