package interfaces

import (
	"context"

	"lottosim/domain/entities"
	"lottosim/domain/events"
)

// PurchaseRequest describes one purchase call: which game, how many units,
// and whether numbers are machine-generated or supplied by the player.
// Manual selections set the field matching the game; scratch tickets are
// always machine-generated.
type PurchaseRequest struct {
	Game           entities.Game
	Count          int
	IsAuto         bool
	LottoNumbers   *entities.LottoNumbers
	PensionNumbers *entities.PensionNumbers
}

// PurchaseResult carries the tickets created by a purchase call, newest
// first. Only the slice matching the requested game is populated.
type PurchaseResult struct {
	Lotto   []*entities.LottoTicket
	Scratch []*entities.ScratchTicket
	Pension []*entities.PensionTicket
}

// Count returns the number of tickets in the result.
func (r *PurchaseResult) Count() int {
	return len(r.Lotto) + len(r.Scratch) + len(r.Pension)
}

// TicketFactory builds, scores and persists tickets for a single purchase
// request.
type TicketFactory interface {
	// Purchase creates Count tickets for the requested game. Manual
	// selections are validated before any random draw or persistence
	// happens. Tickets are returned in creation order, newest first.
	Purchase(ctx context.Context, req PurchaseRequest) (*PurchaseResult, error)
}

// ProgressFunc reports batch progress after each completed chunk.
// completed is monotonically non-decreasing and the final call always has
// completed == total.
type ProgressFunc func(completed, total int)

// BatchScheduler processes large purchase requests in chunks, yielding
// between chunks so the caller stays responsive.
type BatchScheduler interface {
	// PurchaseBatch creates Count tickets, chunked above the configured
	// threshold. onProgress may be nil. Cancelling the context aborts the
	// batch at the next chunk boundary; chunks already persisted remain
	// persisted.
	PurchaseBatch(ctx context.Context, req PurchaseRequest, onProgress ProgressFunc) (*PurchaseResult, error)
}

// StatsAggregator recomputes purchase statistics from full ticket
// collections. All methods are pure and idempotent.
type StatsAggregator interface {
	// LottoStats aggregates over a lotto ticket collection
	LottoStats(tickets []*entities.LottoTicket) entities.PurchaseStats

	// ScratchStats aggregates over a scratch ticket collection
	ScratchStats(tickets []*entities.ScratchTicket) entities.PurchaseStats

	// PensionStats aggregates over a pension ticket collection
	PensionStats(tickets []*entities.PensionTicket) entities.PurchaseStats

	// Combine rolls per-game stats up into one combined view
	Combine(stats ...entities.PurchaseStats) entities.PurchaseStats
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish publishes an event
	Publish(event events.Event) error
}
