package activity

import (
	"slices"

	"github.com/SakerDakak/taxipay-dashboard/internal/domain/models"
)

// Tally counts transactions per driver id in one pass.
// Unattributed transactions are skipped; attributable is the sum of all counts.
func Tally(txs []models.TransactionRecord) (counts map[string]int, attributable int) {
	counts = make(map[string]int)
	for _, tx := range txs {
		id := tx.DriverID()
		if id == "" {
			continue
		}
		counts[id]++
		attributable++
	}
	return counts, attributable
}

// Percentage returns count/total*100 rounded half-up, or 0 when total is 0.
// Integer arithmetic keeps exact halves such as 23/40 = 57.5 from rounding down.
func Percentage(count, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*count + total) / (2 * total)
}

// Rank builds an entry for every roster driver, including those without
// transactions, sorted by transaction count descending. Ties keep roster order.
func Rank(roster []models.DriverRecord, counts map[string]int, total int) []models.DriverActivity {
	ranked := make([]models.DriverActivity, 0, len(roster))
	for _, d := range roster {
		count := counts[d.ID]
		ranked = append(ranked, models.DriverActivity{
			ID:                 d.ID,
			Name:               d.Name,
			TransactionCount:   count,
			PercentageActivity: Percentage(count, total),
		})
	}

	slices.SortStableFunc(ranked, func(a, b models.DriverActivity) int {
		return b.TransactionCount - a.TransactionCount
	})

	return ranked
}

// Top truncates a ranking to its first limit entries.
func Top(ranked []models.DriverActivity, limit int) []models.DriverActivity {
	if limit < 0 {
		limit = 0
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
