package services

import (
	"context"
	"fmt"
	"testing"

	"lottosim/config"
	"lottosim/domain/entities"
	"lottosim/domain/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFactory produces placeholder scratch tickets and records the chunk
// sizes it was asked for. failOnCall makes the nth call fail.
type fakeFactory struct {
	chunkSizes []int
	failOnCall int
}

func (f *fakeFactory) Purchase(ctx context.Context, req interfaces.PurchaseRequest) (*interfaces.PurchaseResult, error) {
	f.chunkSizes = append(f.chunkSizes, req.Count)
	if f.failOnCall > 0 && len(f.chunkSizes) == f.failOnCall {
		return nil, fmt.Errorf("simulated storage failure")
	}

	tickets := make([]*entities.ScratchTicket, req.Count)
	for i := range tickets {
		tickets[i] = &entities.ScratchTicket{ID: fmt.Sprintf("ticket-%d-%d", len(f.chunkSizes), i)}
	}
	return &interfaces.PurchaseResult{Scratch: tickets}, nil
}

func batchRequest(count int) interfaces.PurchaseRequest {
	return interfaces.PurchaseRequest{
		Game:   entities.GameSpeetto1000,
		Count:  count,
		IsAuto: true,
	}
}

func TestBatchScheduler_ChunkedProgress(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())

	factory := &fakeFactory{}
	scheduler := NewBatchScheduler(factory)

	var progress [][2]int
	result, err := scheduler.PurchaseBatch(context.Background(), batchRequest(237), func(completed, total int) {
		progress = append(progress, [2]int{completed, total})
	})
	require.NoError(t, err)
	assert.Equal(t, 237, result.Count())

	// Five chunks of at most 50, reported in order with a final exact total
	assert.Equal(t, []int{50, 50, 50, 50, 37}, factory.chunkSizes)
	assert.Equal(t, [][2]int{
		{50, 237},
		{100, 237},
		{150, 237},
		{200, 237},
		{237, 237},
	}, progress)
}

func TestBatchScheduler_ProgressIsMonotonic(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())

	scheduler := NewBatchScheduler(&fakeFactory{})

	last := 0
	_, err := scheduler.PurchaseBatch(context.Background(), batchRequest(512), func(completed, total int) {
		assert.Greater(t, completed, last)
		assert.Equal(t, 512, total)
		last = completed
	})
	require.NoError(t, err)
	assert.Equal(t, 512, last, "final callback must report completed == total")
}

func TestBatchScheduler_SmallRequestSkipsChunking(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())

	factory := &fakeFactory{}
	scheduler := NewBatchScheduler(factory)

	var progress [][2]int
	result, err := scheduler.PurchaseBatch(context.Background(), batchRequest(5), func(completed, total int) {
		progress = append(progress, [2]int{completed, total})
	})
	require.NoError(t, err)
	assert.Equal(t, 5, result.Count())
	assert.Equal(t, []int{5}, factory.chunkSizes, "small requests go through in one piece")
	assert.Equal(t, [][2]int{{5, 5}}, progress)
}

func TestBatchScheduler_NilProgressCallback(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())

	scheduler := NewBatchScheduler(&fakeFactory{})
	result, err := scheduler.PurchaseBatch(context.Background(), batchRequest(120), nil)
	require.NoError(t, err)
	assert.Equal(t, 120, result.Count())
}

func TestBatchScheduler_ChunkFailureAbortsRemaining(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())

	factory := &fakeFactory{failOnCall: 3}
	scheduler := NewBatchScheduler(factory)

	var progress []int
	_, err := scheduler.PurchaseBatch(context.Background(), batchRequest(237), func(completed, total int) {
		progress = append(progress, completed)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "aborted after 100 of 237")

	// The first two chunks were persisted and reported; nothing ran after
	// the failing chunk
	assert.Equal(t, []int{50, 100}, progress)
	assert.Len(t, factory.chunkSizes, 3)
}

func TestBatchScheduler_CancelledContext(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scheduler := NewBatchScheduler(&fakeFactory{})
	_, err := scheduler.PurchaseBatch(ctx, batchRequest(100), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBatchScheduler_CancelDuringBatch(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())

	ctx, cancel := context.WithCancel(context.Background())
	scheduler := NewBatchScheduler(&fakeFactory{})

	var progress []int
	_, err := scheduler.PurchaseBatch(ctx, batchRequest(500), func(completed, total int) {
		progress = append(progress, completed)
		if completed == 100 {
			cancel()
		}
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []int{50, 100}, progress, "cancellation lands at the next chunk boundary")
}
