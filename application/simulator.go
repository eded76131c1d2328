package application

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"lottosim/domain/entities"
	"lottosim/domain/events"
	"lottosim/domain/interfaces"
	"lottosim/domain/rng"

	log "github.com/sirupsen/logrus"
)

// SnapshotVersion is the current export format version.
const SnapshotVersion = 1

// Snapshot is a full export of the simulator state. Dates serialize as
// RFC 3339 timestamps.
type Snapshot struct {
	ExportDate      time.Time                 `json:"exportDate"`
	Version         int                       `json:"version"`
	SeedFingerprint string                    `json:"seedFingerprint"`
	Lotto645        []*entities.LottoTicket   `json:"lotto645"`
	Speetto1000     []*entities.ScratchTicket `json:"speetto1000"`
	Pension720      []*entities.PensionTicket `json:"pension720"`
}

// Simulator orchestrates purchases across the three games and keeps the
// newest-first ticket collections in memory, backed by a repository.
// Safe for concurrent use.
type Simulator struct {
	scheduler  interfaces.BatchScheduler
	aggregator interfaces.StatsAggregator
	ticketRepo interfaces.TicketRepository
	random     rng.Source
	publisher  interfaces.EventPublisher

	mu      sync.RWMutex
	lotto   []*entities.LottoTicket
	scratch []*entities.ScratchTicket
	pension []*entities.PensionTicket
}

// NewSimulator creates a simulator over the given collaborators
func NewSimulator(
	scheduler interfaces.BatchScheduler,
	aggregator interfaces.StatsAggregator,
	ticketRepo interfaces.TicketRepository,
	random rng.Source,
	publisher interfaces.EventPublisher,
) *Simulator {
	return &Simulator{
		scheduler:  scheduler,
		aggregator: aggregator,
		ticketRepo: ticketRepo,
		random:     random,
		publisher:  publisher,
	}
}

// LoadTickets populates the in-memory collections from the repository
func (s *Simulator) LoadTickets(ctx context.Context) error {
	lotto, err := s.ticketRepo.GetLottoTickets(ctx)
	if err != nil {
		return fmt.Errorf("failed to load lotto tickets: %w", err)
	}
	scratch, err := s.ticketRepo.GetScratchTickets(ctx)
	if err != nil {
		return fmt.Errorf("failed to load scratch tickets: %w", err)
	}
	pension, err := s.ticketRepo.GetPensionTickets(ctx)
	if err != nil {
		return fmt.Errorf("failed to load pension tickets: %w", err)
	}

	s.mu.Lock()
	s.lotto = lotto
	s.scratch = scratch
	s.pension = pension
	s.mu.Unlock()

	log.WithFields(log.Fields{
		"lotto":   len(lotto),
		"scratch": len(scratch),
		"pension": len(pension),
	}).Info("Loaded ticket collections")
	return nil
}

// Purchase runs a purchase through the batch scheduler and prepends the
// new tickets to the in-memory collections
func (s *Simulator) Purchase(ctx context.Context, req interfaces.PurchaseRequest, onProgress interfaces.ProgressFunc) (*interfaces.PurchaseResult, error) {
	result, err := s.scheduler.PurchaseBatch(ctx, req, onProgress)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if len(result.Lotto) > 0 {
		s.lotto = append(append([]*entities.LottoTicket{}, result.Lotto...), s.lotto...)
	}
	if len(result.Scratch) > 0 {
		s.scratch = append(append([]*entities.ScratchTicket{}, result.Scratch...), s.scratch...)
	}
	if len(result.Pension) > 0 {
		s.pension = append(append([]*entities.PensionTicket{}, result.Pension...), s.pension...)
	}
	s.mu.Unlock()

	return result, nil
}

// LottoTickets returns the lotto collection, newest first
func (s *Simulator) LottoTickets() []*entities.LottoTicket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entities.LottoTicket, len(s.lotto))
	copy(out, s.lotto)
	return out
}

// ScratchTickets returns the scratch collection, newest first
func (s *Simulator) ScratchTickets() []*entities.ScratchTicket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entities.ScratchTicket, len(s.scratch))
	copy(out, s.scratch)
	return out
}

// PensionTickets returns the pension collection, newest first
func (s *Simulator) PensionTickets() []*entities.PensionTicket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entities.PensionTicket, len(s.pension))
	copy(out, s.pension)
	return out
}

// Stats recomputes purchase statistics for one game from its full
// collection
func (s *Simulator) Stats(game entities.Game) (entities.PurchaseStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch game {
	case entities.GameLotto645:
		return s.aggregator.LottoStats(s.lotto), nil
	case entities.GameSpeetto1000:
		return s.aggregator.ScratchStats(s.scratch), nil
	case entities.GamePension720:
		return s.aggregator.PensionStats(s.pension), nil
	default:
		return entities.PurchaseStats{}, fmt.Errorf("unknown game %q", game)
	}
}

// CombinedStats rolls the three per-game stats up into one view
func (s *Simulator) CombinedStats() entities.PurchaseStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.aggregator.Combine(
		s.aggregator.LottoStats(s.lotto),
		s.aggregator.ScratchStats(s.scratch),
		s.aggregator.PensionStats(s.pension),
	)
}

// ClearAll removes every stored ticket and resets the in-memory
// collections
func (s *Simulator) ClearAll(ctx context.Context) error {
	if err := s.ticketRepo.ClearAll(ctx); err != nil {
		return &entities.IOError{Op: "clear all tickets", Err: err}
	}

	s.mu.Lock()
	s.lotto = nil
	s.scratch = nil
	s.pension = nil
	s.mu.Unlock()

	if err := s.publisher.Publish(events.DataClearedEvent{}); err != nil {
		log.WithError(err).Warn("Failed to publish data cleared event")
	}
	return nil
}

// Export produces a versioned snapshot of the current collections
func (s *Simulator) Export() (*Snapshot, error) {
	fingerprint, err := s.random.SeedFingerprint()
	if err != nil {
		return nil, fmt.Errorf("failed to generate seed fingerprint: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := &Snapshot{
		ExportDate:      time.Now().UTC(),
		Version:         SnapshotVersion,
		SeedFingerprint: fingerprint,
		Lotto645:        append([]*entities.LottoTicket{}, s.lotto...),
		Speetto1000:     append([]*entities.ScratchTicket{}, s.scratch...),
		Pension720:      append([]*entities.PensionTicket{}, s.pension...),
	}
	return snapshot, nil
}

// Import replaces all stored tickets with the snapshot contents. The
// snapshot version must match the current format.
func (s *Simulator) Import(ctx context.Context, data []byte) error {
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", snapshot.Version)
	}

	if err := s.ticketRepo.ClearAll(ctx); err != nil {
		return &entities.IOError{Op: "clear tickets before import", Err: err}
	}
	if err := s.ticketRepo.SaveLottoTickets(ctx, snapshot.Lotto645); err != nil {
		return &entities.IOError{Op: "import lotto tickets", Err: err}
	}
	if err := s.ticketRepo.SaveScratchTickets(ctx, snapshot.Speetto1000); err != nil {
		return &entities.IOError{Op: "import scratch tickets", Err: err}
	}
	if err := s.ticketRepo.SavePensionTickets(ctx, snapshot.Pension720); err != nil {
		return &entities.IOError{Op: "import pension tickets", Err: err}
	}

	s.mu.Lock()
	s.lotto = append([]*entities.LottoTicket{}, snapshot.Lotto645...)
	s.scratch = append([]*entities.ScratchTicket{}, snapshot.Speetto1000...)
	s.pension = append([]*entities.PensionTicket{}, snapshot.Pension720...)
	s.mu.Unlock()

	log.WithField("tickets", len(snapshot.Lotto645)+len(snapshot.Speetto1000)+len(snapshot.Pension720)).
		Info("Imported snapshot")
	return nil
}
