package analyzer

import "github.com/tallybook-dev/tallybook/internal/model"

// Summary aggregates analysis results for the health dashboard.
type Summary struct {
	Total     int
	Valid     int
	Anomalies int
	Errors    int
	// HealthScore is 0-100: each error deducts 10 points and each
	// anomaly 5, floored at zero.
	HealthScore int
}

// Summarize counts statuses over an analyzed ledger and derives the
// health score.
func Summarize(analyzed []model.Transaction) Summary {
	s := Summary{Total: len(analyzed)}
	for _, t := range analyzed {
		switch t.Status {
		case model.StatusError:
			s.Errors++
		case model.StatusAnomaly:
			s.Anomalies++
		default:
			s.Valid++
		}
	}

	deduction := s.Errors*10 + s.Anomalies*5
	if deduction > 100 {
		deduction = 100
	}
	s.HealthScore = 100 - deduction
	return s
}
