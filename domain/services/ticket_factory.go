package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"lottosim/config"
	"lottosim/domain/entities"
	"lottosim/domain/events"
	"lottosim/domain/interfaces"
	"lottosim/domain/rng"

	"github.com/google/uuid"
)

// Draw date offset for games with a scheduled draw (lotto, pension). The
// simulator resolves results immediately; the date is display metadata.
const drawDateOffset = 7 * 24 * time.Hour

type ticketFactory struct {
	random         rng.Source
	rules          *PrizeRules
	ticketRepo     interfaces.TicketRepository
	eventPublisher interfaces.EventPublisher
}

// NewTicketFactory creates a new ticket factory
func NewTicketFactory(random rng.Source, rules *PrizeRules, ticketRepo interfaces.TicketRepository, eventPublisher interfaces.EventPublisher) interfaces.TicketFactory {
	return &ticketFactory{
		random:         random,
		rules:          rules,
		ticketRepo:     ticketRepo,
		eventPublisher: eventPublisher,
	}
}

// Purchase creates, scores and persists req.Count tickets for one game.
// Manual selections are validated before any randomness is consumed or
// anything is persisted; a storage failure aborts the whole purchase and
// none of its tickets are returned.
func (f *ticketFactory) Purchase(ctx context.Context, req interfaces.PurchaseRequest) (*interfaces.PurchaseResult, error) {
	if req.Count <= 0 {
		return nil, fmt.Errorf("ticket count must be positive, got %d", req.Count)
	}

	switch req.Game {
	case entities.GameLotto645:
		return f.purchaseLotto(ctx, req)
	case entities.GameSpeetto1000:
		return f.purchaseScratch(ctx, req)
	case entities.GamePension720:
		return f.purchasePension(ctx, req)
	}
	return nil, fmt.Errorf("unknown game %q", req.Game)
}

func (f *ticketFactory) purchaseLotto(ctx context.Context, req interfaces.PurchaseRequest) (*interfaces.PurchaseResult, error) {
	// Fail fast on manual selections, before any random draw
	if !req.IsAuto {
		if req.LottoNumbers == nil {
			return nil, &entities.InvalidSelectionError{
				Game:   entities.GameLotto645,
				Reason: "manual purchase requires numbers",
			}
		}
		if err := req.LottoNumbers.Validate(); err != nil {
			return nil, err
		}
	}

	tickets := make([]*entities.LottoTicket, 0, req.Count)
	var totalWon int64
	for i := 0; i < req.Count; i++ {
		var numbers entities.LottoNumbers
		if req.IsAuto {
			generated, err := f.generateLottoNumbers()
			if err != nil {
				return nil, err
			}
			numbers = generated
		} else {
			numbers = *req.LottoNumbers
		}

		// Winning numbers are drawn independently per game unit
		winning, err := f.generateLottoNumbers()
		if err != nil {
			return nil, err
		}
		result, err := f.rules.CheckLotto(numbers, winning)
		if err != nil {
			return nil, err
		}

		now := time.Now()
		tickets = append(tickets, &entities.LottoTicket{
			ID:           uuid.NewString(),
			Numbers:      numbers,
			IsAuto:       req.IsAuto,
			PurchaseDate: now,
			DrawDate:     now.Add(drawDateOffset),
			Result:       &result,
		})
		totalWon += result.Prize
	}

	if err := f.ticketRepo.SaveLottoTickets(ctx, tickets); err != nil {
		return nil, &entities.IOError{Op: "save lotto tickets", Err: err}
	}

	if err := f.publishPurchase(entities.GameLotto645, len(tickets), totalWon); err != nil {
		return nil, err
	}
	return &interfaces.PurchaseResult{Lotto: tickets}, nil
}

func (f *ticketFactory) purchaseScratch(ctx context.Context, req interfaces.PurchaseRequest) (*interfaces.PurchaseResult, error) {
	tickets := make([]*entities.ScratchTicket, 0, req.Count)
	var totalWon int64
	for i := 0; i < req.Count; i++ {
		userNumbers, err := f.random.UniqueInts(entities.ScratchUserCount, entities.ScratchMinNumber, entities.ScratchMaxNumber)
		if err != nil {
			return nil, err
		}
		lucky, err := f.random.Int(entities.ScratchMinNumber, entities.ScratchMaxNumber)
		if err != nil {
			return nil, err
		}
		luckyNumbers := []int{lucky}

		// Scratch results are resolved at purchase: every symbol is
		// revealed and the ticket is complete immediately.
		result, err := f.rules.CheckScratch(userNumbers, luckyNumbers)
		if err != nil {
			return nil, err
		}

		id := uuid.NewString()
		symbols := make([]entities.ScratchSymbol, len(userNumbers))
		for j, n := range userNumbers {
			symbols[j] = entities.ScratchSymbol{
				ID:       id + "-" + strconv.Itoa(j),
				Symbol:   "❓",
				Number:   n,
				Revealed: true,
			}
		}

		tickets = append(tickets, &entities.ScratchTicket{
			ID:           id,
			Symbols:      symbols,
			LuckyNumbers: luckyNumbers,
			PurchaseDate: time.Now(),
			IsComplete:   true,
			Result:       &result,
		})
		totalWon += result.Prize
	}

	if err := f.ticketRepo.SaveScratchTickets(ctx, tickets); err != nil {
		return nil, &entities.IOError{Op: "save scratch tickets", Err: err}
	}

	if err := f.publishPurchase(entities.GameSpeetto1000, len(tickets), totalWon); err != nil {
		return nil, err
	}
	return &interfaces.PurchaseResult{Scratch: tickets}, nil
}

func (f *ticketFactory) purchasePension(ctx context.Context, req interfaces.PurchaseRequest) (*interfaces.PurchaseResult, error) {
	if !req.IsAuto {
		if req.PensionNumbers == nil {
			return nil, &entities.InvalidSelectionError{
				Game:   entities.GamePension720,
				Reason: "manual purchase requires numbers",
			}
		}
		if err := req.PensionNumbers.Validate(); err != nil {
			return nil, err
		}
	}

	tickets := make([]*entities.PensionTicket, 0, req.Count)
	var totalWon int64
	for i := 0; i < req.Count; i++ {
		var numbers entities.PensionNumbers
		if req.IsAuto {
			generated, err := f.generatePensionNumbers()
			if err != nil {
				return nil, err
			}
			numbers = generated
		} else {
			numbers = *req.PensionNumbers
		}

		winning, err := f.generatePensionNumbers()
		if err != nil {
			return nil, err
		}
		result, err := f.rules.CheckPension(numbers, winning)
		if err != nil {
			return nil, err
		}

		now := time.Now()
		tickets = append(tickets, &entities.PensionTicket{
			ID:           uuid.NewString(),
			Numbers:      numbers,
			IsAuto:       req.IsAuto,
			PurchaseDate: now,
			DrawDate:     now.Add(drawDateOffset),
			Result:       &result,
		})
		totalWon += result.TotalPrize
	}

	if err := f.ticketRepo.SavePensionTickets(ctx, tickets); err != nil {
		return nil, &entities.IOError{Op: "save pension tickets", Err: err}
	}

	if err := f.publishPurchase(entities.GamePension720, len(tickets), totalWon); err != nil {
		return nil, err
	}
	return &interfaces.PurchaseResult{Pension: tickets}, nil
}

func (f *ticketFactory) generateLottoNumbers() (entities.LottoNumbers, error) {
	main, err := f.random.UniqueInts(entities.LottoMainCount, entities.LottoMinNumber, entities.LottoMaxNumber)
	if err != nil {
		return entities.LottoNumbers{}, err
	}
	bonus, err := f.random.Int(entities.LottoMinNumber, entities.LottoMaxNumber)
	if err != nil {
		return entities.LottoNumbers{}, err
	}
	return entities.LottoNumbers{Main: main, Bonus: bonus}, nil
}

func (f *ticketFactory) generatePensionNumbers() (entities.PensionNumbers, error) {
	group, err := f.random.Int(entities.PensionMinGroup, entities.PensionMaxGroup)
	if err != nil {
		return entities.PensionNumbers{}, err
	}
	serial, err := f.random.Int(entities.PensionMinSerial, entities.PensionMaxSerial)
	if err != nil {
		return entities.PensionNumbers{}, err
	}
	return entities.PensionNumbers{
		Group:  strconv.Itoa(group),
		Number: strconv.Itoa(serial),
	}, nil
}

func (f *ticketFactory) publishPurchase(game entities.Game, count int, totalWon int64) error {
	event := events.TicketsPurchasedEvent{
		Game:       game,
		Count:      count,
		TotalSpent: config.Get().TicketPrice(string(game)) * int64(count),
		TotalWon:   totalWon,
	}
	if err := f.eventPublisher.Publish(event); err != nil {
		return fmt.Errorf("failed to publish purchase event: %w", err)
	}
	return nil
}
