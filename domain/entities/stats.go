package entities

// PurchaseStats is the aggregate view over a ticket collection. Stats are
// always derived by recomputing over the full collection, never mutated
// incrementally.
type PurchaseStats struct {
	TotalSpent   int64   `json:"totalSpent"`
	TotalWon     int64   `json:"totalWon"`
	TotalTickets int     `json:"totalTickets"`
	WinCount     int     `json:"winCount"`
	WinRate      float64 `json:"winRate"`
	ROI          float64 `json:"roi"`
}

// CalculateRates derives the win rate and ROI percentages from the counts
// and totals. Both are 0 when their denominators are 0.
func (s *PurchaseStats) CalculateRates() {
	if s.TotalTickets > 0 {
		s.WinRate = (float64(s.WinCount) / float64(s.TotalTickets)) * 100
	} else {
		s.WinRate = 0
	}
	if s.TotalSpent > 0 {
		s.ROI = (float64(s.TotalWon-s.TotalSpent) / float64(s.TotalSpent)) * 100
	} else {
		s.ROI = 0
	}
}
