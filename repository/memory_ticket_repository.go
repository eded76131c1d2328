package repository

import (
	"context"
	"sync"

	"lottosim/domain/entities"
	"lottosim/domain/interfaces"
)

// MemoryTicketRepository keeps tickets in process memory. Batches are
// prepended so collections read newest first without a sort. Safe for
// concurrent use.
type MemoryTicketRepository struct {
	mu      sync.RWMutex
	lotto   []*entities.LottoTicket
	scratch []*entities.ScratchTicket
	pension []*entities.PensionTicket
}

// NewMemoryTicketRepository creates an empty in-memory ticket repository
func NewMemoryTicketRepository() interfaces.TicketRepository {
	return &MemoryTicketRepository{}
}

func (r *MemoryTicketRepository) SaveLottoTickets(ctx context.Context, tickets []*entities.LottoTicket) error {
	if len(tickets) == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lotto = append(append([]*entities.LottoTicket{}, tickets...), r.lotto...)
	return nil
}

func (r *MemoryTicketRepository) GetLottoTickets(ctx context.Context) ([]*entities.LottoTicket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entities.LottoTicket, len(r.lotto))
	copy(out, r.lotto)
	return out, nil
}

func (r *MemoryTicketRepository) SaveScratchTickets(ctx context.Context, tickets []*entities.ScratchTicket) error {
	if len(tickets) == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scratch = append(append([]*entities.ScratchTicket{}, tickets...), r.scratch...)
	return nil
}

func (r *MemoryTicketRepository) GetScratchTickets(ctx context.Context) ([]*entities.ScratchTicket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entities.ScratchTicket, len(r.scratch))
	copy(out, r.scratch)
	return out, nil
}

func (r *MemoryTicketRepository) SavePensionTickets(ctx context.Context, tickets []*entities.PensionTicket) error {
	if len(tickets) == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pension = append(append([]*entities.PensionTicket{}, tickets...), r.pension...)
	return nil
}

func (r *MemoryTicketRepository) GetPensionTickets(ctx context.Context) ([]*entities.PensionTicket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entities.PensionTicket, len(r.pension))
	copy(out, r.pension)
	return out, nil
}

func (r *MemoryTicketRepository) ClearAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lotto = nil
	r.scratch = nil
	r.pension = nil
	return nil
}
