package application

import (
	"context"
	"encoding/json"
	"testing"

	"lottosim/config"
	"lottosim/domain/entities"
	"lottosim/domain/events"
	"lottosim/domain/interfaces"
	"lottosim/domain/rng"
	"lottosim/domain/services"
	"lottosim/domain/testhelpers"
	"lottosim/infrastructure"
	"lottosim/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestSimulator(t *testing.T) (*Simulator, interfaces.TicketRepository) {
	t.Helper()
	config.SetTestConfig(config.NewTestConfig())

	random := rng.NewCryptoSource()
	repo := repository.NewMemoryTicketRepository()
	publisher := infrastructure.NewNoopEventPublisher()
	rules := services.NewPrizeRules(random, config.PrizePolicyStrict)
	factory := services.NewTicketFactory(random, rules, repo, publisher)
	scheduler := services.NewBatchScheduler(factory)
	aggregator := services.NewStatsAggregator()

	return NewSimulator(scheduler, aggregator, repo, random, publisher), repo
}

func TestSimulator_PurchaseUpdatesCollections(t *testing.T) {
	sim, _ := newTestSimulator(t)
	ctx := context.Background()

	result, err := sim.Purchase(ctx, interfaces.PurchaseRequest{
		Game:   entities.GameSpeetto1000,
		Count:  3,
		IsAuto: true,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Count())

	tickets := sim.ScratchTickets()
	require.Len(t, tickets, 3)
	for _, ticket := range tickets {
		assert.True(t, ticket.IsComplete)
		require.NotNil(t, ticket.Result)
	}

	stats, err := sim.Stats(entities.GameSpeetto1000)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), stats.TotalSpent)
	assert.Equal(t, 3, stats.TotalTickets)
}

func TestSimulator_NewestPurchaseFirst(t *testing.T) {
	sim, _ := newTestSimulator(t)
	ctx := context.Background()

	first, err := sim.Purchase(ctx, interfaces.PurchaseRequest{
		Game: entities.GameLotto645, Count: 2, IsAuto: true,
	}, nil)
	require.NoError(t, err)

	second, err := sim.Purchase(ctx, interfaces.PurchaseRequest{
		Game: entities.GameLotto645, Count: 1, IsAuto: true,
	}, nil)
	require.NoError(t, err)

	tickets := sim.LottoTickets()
	require.Len(t, tickets, 3)
	assert.Equal(t, second.Lotto[0].ID, tickets[0].ID)
	assert.Equal(t, first.Lotto[0].ID, tickets[1].ID)
}

func TestSimulator_LoadTickets(t *testing.T) {
	sim, repo := newTestSimulator(t)
	ctx := context.Background()

	require.NoError(t, repo.SavePensionTickets(ctx, []*entities.PensionTicket{
		{ID: "p1", Numbers: entities.PensionNumbers{Group: "1", Number: "123456"}},
	}))

	require.NoError(t, sim.LoadTickets(ctx))
	assert.Len(t, sim.PensionTickets(), 1)
	assert.Empty(t, sim.LottoTickets())
}

func TestSimulator_ExportImportRoundTrip(t *testing.T) {
	sim, _ := newTestSimulator(t)
	ctx := context.Background()

	for _, req := range []interfaces.PurchaseRequest{
		{Game: entities.GameLotto645, Count: 5, IsAuto: true},
		{Game: entities.GameSpeetto1000, Count: 4, IsAuto: true},
		{Game: entities.GamePension720, Count: 3, IsAuto: true},
	} {
		_, err := sim.Purchase(ctx, req, nil)
		require.NoError(t, err)
	}
	originalStats := sim.CombinedStats()
	assert.Equal(t, 12, originalStats.TotalTickets)

	snapshot, err := sim.Export()
	require.NoError(t, err)
	assert.Equal(t, SnapshotVersion, snapshot.Version)
	assert.Regexp(t, "^[0-9a-f]{64}$", snapshot.SeedFingerprint)

	data, err := json.Marshal(snapshot)
	require.NoError(t, err)

	fresh, _ := newTestSimulator(t)
	require.NoError(t, fresh.Import(ctx, data))

	assert.Equal(t, originalStats, fresh.CombinedStats())
	assert.Len(t, fresh.LottoTickets(), 5)
	assert.Len(t, fresh.ScratchTickets(), 4)
	assert.Len(t, fresh.PensionTickets(), 3)
}

func TestSimulator_ImportRejectsUnknownVersion(t *testing.T) {
	sim, _ := newTestSimulator(t)

	err := sim.Import(context.Background(), []byte(`{"version": 99}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported snapshot version")
}

func TestSimulator_ClearAll(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())

	random := rng.NewCryptoSource()
	repo := repository.NewMemoryTicketRepository()
	publisher := new(testhelpers.MockEventPublisher)
	publisher.On("Publish", mock.Anything).Return(nil)
	rules := services.NewPrizeRules(random, config.PrizePolicyStrict)
	factory := services.NewTicketFactory(random, rules, repo, publisher)
	scheduler := services.NewBatchScheduler(factory)
	sim := NewSimulator(scheduler, services.NewStatsAggregator(), repo, random, publisher)

	ctx := context.Background()
	_, err := sim.Purchase(ctx, interfaces.PurchaseRequest{
		Game: entities.GameLotto645, Count: 2, IsAuto: true,
	}, nil)
	require.NoError(t, err)

	require.NoError(t, sim.ClearAll(ctx))
	assert.Empty(t, sim.LottoTickets())
	assert.Zero(t, sim.CombinedStats().TotalTickets)

	stored, err := repo.GetLottoTickets(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)

	publisher.AssertCalled(t, "Publish", mock.MatchedBy(func(e events.Event) bool {
		_, ok := e.(events.DataClearedEvent)
		return ok
	}))
}

func TestSimulator_StatsUnknownGame(t *testing.T) {
	sim, _ := newTestSimulator(t)

	_, err := sim.Stats(entities.Game("keno"))
	require.Error(t, err)
}
