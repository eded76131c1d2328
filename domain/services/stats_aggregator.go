package services

import (
	"lottosim/config"
	"lottosim/domain/entities"
	"lottosim/domain/interfaces"
)

type statsAggregator struct{}

// NewStatsAggregator creates a new stats aggregator
func NewStatsAggregator() interfaces.StatsAggregator {
	return &statsAggregator{}
}

// LottoStats recomputes stats over the full lotto collection. Tickets
// count as wins when their result carries a positive rank.
func (a *statsAggregator) LottoStats(tickets []*entities.LottoTicket) entities.PurchaseStats {
	stats := entities.PurchaseStats{
		TotalTickets: len(tickets),
		TotalSpent:   int64(len(tickets)) * config.Get().LottoTicketPrice,
	}
	for _, t := range tickets {
		if t.Result == nil {
			continue
		}
		stats.TotalWon += t.Result.Prize
		if t.Result.Rank > 0 {
			stats.WinCount++
		}
	}
	stats.CalculateRates()
	return stats
}

// ScratchStats recomputes stats over the full scratch collection. Scratch
// results have no rank; a positive prize counts as a win.
func (a *statsAggregator) ScratchStats(tickets []*entities.ScratchTicket) entities.PurchaseStats {
	stats := entities.PurchaseStats{
		TotalTickets: len(tickets),
		TotalSpent:   int64(len(tickets)) * config.Get().ScratchTicketPrice,
	}
	for _, t := range tickets {
		if t.Result == nil {
			continue
		}
		stats.TotalWon += t.Result.Prize
		if t.Result.Prize > 0 {
			stats.WinCount++
		}
	}
	stats.CalculateRates()
	return stats
}

// PensionStats recomputes stats over the full pension collection. Winnings
// use the total prize value, which already folds annuity ranks into their
// full payout.
func (a *statsAggregator) PensionStats(tickets []*entities.PensionTicket) entities.PurchaseStats {
	stats := entities.PurchaseStats{
		TotalTickets: len(tickets),
		TotalSpent:   int64(len(tickets)) * config.Get().PensionTicketPrice,
	}
	for _, t := range tickets {
		if t.Result == nil {
			continue
		}
		stats.TotalWon += t.Result.TotalPrize
		if t.Result.Rank > 0 {
			stats.WinCount++
		}
	}
	stats.CalculateRates()
	return stats
}

// Combine rolls per-game stats up into one combined view.
func (a *statsAggregator) Combine(stats ...entities.PurchaseStats) entities.PurchaseStats {
	var combined entities.PurchaseStats
	for _, s := range stats {
		combined.TotalSpent += s.TotalSpent
		combined.TotalWon += s.TotalWon
		combined.TotalTickets += s.TotalTickets
		combined.WinCount += s.WinCount
	}
	combined.CalculateRates()
	return combined
}
