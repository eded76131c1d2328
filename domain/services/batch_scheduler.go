package services

import (
	"context"
	"fmt"
	"runtime"

	"lottosim/config"
	"lottosim/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

type batchScheduler struct {
	factory interfaces.TicketFactory
}

// NewBatchScheduler creates a scheduler that processes large purchase
// requests in chunks on top of the given factory.
func NewBatchScheduler(factory interfaces.TicketFactory) interfaces.BatchScheduler {
	return &batchScheduler{factory: factory}
}

// PurchaseBatch creates req.Count tickets. Requests at or below the
// configured threshold go straight to the factory; larger requests are
// split into fixed-size chunks. Each chunk is generated, scored and
// persisted as one unit, progress is reported after each chunk, and
// control yields to the runtime between chunks. A chunk failure aborts the
// remaining chunks; chunks already persisted stay persisted, so callers
// must reconcile counts on error.
func (s *batchScheduler) PurchaseBatch(ctx context.Context, req interfaces.PurchaseRequest, onProgress interfaces.ProgressFunc) (*interfaces.PurchaseResult, error) {
	cfg := config.Get()

	if req.Count <= cfg.BatchThreshold {
		result, err := s.factory.Purchase(ctx, req)
		if err != nil {
			return nil, err
		}
		if onProgress != nil {
			onProgress(req.Count, req.Count)
		}
		return result, nil
	}

	total := req.Count
	result := &interfaces.PurchaseResult{}
	completed := 0

	for completed < total {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("batch purchase cancelled after %d of %d tickets: %w", completed, total, err)
		}

		chunkSize := cfg.BatchChunkSize
		if remaining := total - completed; remaining < chunkSize {
			chunkSize = remaining
		}

		chunkReq := req
		chunkReq.Count = chunkSize
		chunk, err := s.factory.Purchase(ctx, chunkReq)
		if err != nil {
			return nil, fmt.Errorf("batch purchase aborted after %d of %d tickets: %w", completed, total, err)
		}

		result.Lotto = append(result.Lotto, chunk.Lotto...)
		result.Scratch = append(result.Scratch, chunk.Scratch...)
		result.Pension = append(result.Pension, chunk.Pension...)
		completed += chunkSize

		if onProgress != nil {
			onProgress(completed, total)
		}

		// Yield between chunks so a long batch stays cooperative
		if completed < total {
			runtime.Gosched()
		}
	}

	log.WithFields(log.Fields{
		"game":  req.Game,
		"count": total,
	}).Debug("batch purchase completed")

	return result, nil
}
