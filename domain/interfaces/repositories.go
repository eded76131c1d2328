package interfaces

import (
	"context"

	"lottosim/domain/entities"
)

// TicketRepository defines the interface for ticket persistence. Get
// methods return tickets ordered by purchase date descending (most recent
// first); save methods persist a whole purchase chunk as one unit.
type TicketRepository interface {
	// SaveLottoTickets persists a batch of lotto tickets
	SaveLottoTickets(ctx context.Context, tickets []*entities.LottoTicket) error

	// SaveScratchTickets persists a batch of scratch tickets
	SaveScratchTickets(ctx context.Context, tickets []*entities.ScratchTicket) error

	// SavePensionTickets persists a batch of pension tickets
	SavePensionTickets(ctx context.Context, tickets []*entities.PensionTicket) error

	// GetLottoTickets returns all lotto tickets, newest first
	GetLottoTickets(ctx context.Context) ([]*entities.LottoTicket, error)

	// GetScratchTickets returns all scratch tickets, newest first
	GetScratchTickets(ctx context.Context) ([]*entities.ScratchTicket, error)

	// GetPensionTickets returns all pension tickets, newest first
	GetPensionTickets(ctx context.Context) ([]*entities.PensionTicket, error)

	// ClearAll removes every stored ticket across all games
	ClearAll(ctx context.Context) error
}
