package testhelpers

import (
	"context"

	"lottosim/domain/entities"
	"lottosim/domain/events"

	"github.com/stretchr/testify/mock"
)

// MockTicketRepository is a mock implementation of TicketRepository
type MockTicketRepository struct {
	mock.Mock
}

func (m *MockTicketRepository) SaveLottoTickets(ctx context.Context, tickets []*entities.LottoTicket) error {
	args := m.Called(ctx, tickets)
	return args.Error(0)
}

func (m *MockTicketRepository) SaveScratchTickets(ctx context.Context, tickets []*entities.ScratchTicket) error {
	args := m.Called(ctx, tickets)
	return args.Error(0)
}

func (m *MockTicketRepository) SavePensionTickets(ctx context.Context, tickets []*entities.PensionTicket) error {
	args := m.Called(ctx, tickets)
	return args.Error(0)
}

func (m *MockTicketRepository) GetLottoTickets(ctx context.Context) ([]*entities.LottoTicket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LottoTicket), args.Error(1)
}

func (m *MockTicketRepository) GetScratchTickets(ctx context.Context) ([]*entities.ScratchTicket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ScratchTicket), args.Error(1)
}

func (m *MockTicketRepository) GetPensionTickets(ctx context.Context) ([]*entities.PensionTicket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PensionTicket), args.Error(1)
}

func (m *MockTicketRepository) ClearAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}
