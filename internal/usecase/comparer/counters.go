package comparer

import "github.com/JSHWJ/QA-helper/internal/domain"

// Counters are the live numbers shown above the review table.
type Counters struct {
	Total      int `json:"total"`
	KoMismatch int `json:"ko_mismatch"`
	EnMismatch int `json:"en_mismatch"`
	RuMismatch int `json:"ru_mismatch"`
	Overall    int `json:"overall_mismatch"`
}

// Count tallies N verdicts per language plus overall mismatches.
func Count(rows []domain.ComparisonRow) Counters {
	c := Counters{Total: len(rows)}
	for i := range rows {
		if rows[i].KoMatch == domain.MatchNo {
			c.KoMismatch++
		}
		if rows[i].EnMatch == domain.MatchNo {
			c.EnMismatch++
		}
		if rows[i].RuMatch == domain.MatchNo {
			c.RuMismatch++
		}
		if rows[i].Overall == domain.MatchNo {
			c.Overall++
		}
	}
	return c
}
