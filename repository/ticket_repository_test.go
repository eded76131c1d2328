package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"lottosim/domain/entities"
	"lottosim/repository/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresTicketRepository_LottoRoundTrip(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPostgresTicketRepository(testDB.DB.Pool)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	winner := &entities.LottoTicket{
		ID: uuid.NewString(),
		Numbers: entities.LottoNumbers{
			Main:  []int{3, 11, 17, 24, 38, 45},
			Bonus: 9,
		},
		IsAuto:       true,
		PurchaseDate: now,
		DrawDate:     now.Add(7 * 24 * time.Hour),
		Result: &entities.LottoResult{
			WinningNumbers:  entities.LottoNumbers{Main: []int{3, 11, 17, 24, 38, 45}, Bonus: 1},
			Rank:            1,
			Prize:           2000000000,
			MatchingNumbers: []int{3, 11, 17, 24, 38, 45},
		},
	}
	loser := &entities.LottoTicket{
		ID: uuid.NewString(),
		Numbers: entities.LottoNumbers{
			Main:  []int{1, 2, 3, 4, 5, 6},
			Bonus: 7,
		},
		IsAuto:       false,
		PurchaseDate: now.Add(time.Second),
		DrawDate:     now.Add(7 * 24 * time.Hour),
		Result:       &entities.LottoResult{Rank: 0, MatchingNumbers: []int{}},
	}

	require.NoError(t, repo.SaveLottoTickets(ctx, []*entities.LottoTicket{winner, loser}))

	tickets, err := repo.GetLottoTickets(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 2)

	// Newest first by purchase date
	assert.Equal(t, loser.ID, tickets[0].ID)
	assert.Equal(t, winner.ID, tickets[1].ID)

	got := tickets[1]
	assert.Equal(t, winner.Numbers, got.Numbers)
	assert.True(t, got.IsAuto)
	assert.WithinDuration(t, winner.PurchaseDate, got.PurchaseDate, time.Millisecond)
	assert.WithinDuration(t, winner.DrawDate, got.DrawDate, time.Millisecond)
	require.NotNil(t, got.Result)
	assert.Equal(t, 1, got.Result.Rank)
	assert.Equal(t, int64(2000000000), got.Result.Prize)
	assert.Equal(t, []int{3, 11, 17, 24, 38, 45}, got.Result.MatchingNumbers)
}

func TestPostgresTicketRepository_ScratchRoundTrip(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPostgresTicketRepository(testDB.DB.Pool)
	ctx := context.Background()

	id := uuid.NewString()
	symbols := make([]entities.ScratchSymbol, 6)
	for i := range symbols {
		symbols[i] = entities.ScratchSymbol{
			ID:       fmt.Sprintf("%s-%d", id, i),
			Symbol:   "❓",
			Number:   i + 1,
			Revealed: true,
		}
	}
	ticket := &entities.ScratchTicket{
		ID:           id,
		Symbols:      symbols,
		LuckyNumbers: []int{4},
		PurchaseDate: time.Now().UTC(),
		IsComplete:   true,
		Result:       &entities.ScratchResult{MatchingNumbers: []int{4}, Prize: 5000},
	}

	require.NoError(t, repo.SaveScratchTickets(ctx, []*entities.ScratchTicket{ticket}))

	tickets, err := repo.GetScratchTickets(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 1)

	got := tickets[0]
	assert.Equal(t, ticket.Symbols, got.Symbols)
	assert.Equal(t, []int{4}, got.LuckyNumbers)
	assert.True(t, got.IsComplete)
	require.NotNil(t, got.Result)
	assert.Equal(t, int64(5000), got.Result.Prize)
}

func TestPostgresTicketRepository_PensionRoundTrip(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPostgresTicketRepository(testDB.DB.Pool)
	ctx := context.Background()

	ticket := &entities.PensionTicket{
		ID:           uuid.NewString(),
		Numbers:      entities.PensionNumbers{Group: "3", Number: "004921"},
		IsAuto:       false,
		PurchaseDate: time.Now().UTC(),
		DrawDate:     time.Now().UTC().Add(7 * 24 * time.Hour),
		Result: &entities.PensionResult{
			WinningNumbers: entities.PensionNumbers{Group: "3", Number: "884921"},
			Rank:           3,
			MonthlyPrize:   0,
			TotalPrize:     1000000,
		},
	}

	require.NoError(t, repo.SavePensionTickets(ctx, []*entities.PensionTicket{ticket}))

	tickets, err := repo.GetPensionTickets(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 1)

	got := tickets[0]
	// Leading zeros must survive the round trip
	assert.Equal(t, "004921", got.Numbers.Number)
	assert.Equal(t, "3", got.Numbers.Group)
	require.NotNil(t, got.Result)
	assert.Equal(t, 3, got.Result.Rank)
}

func TestPostgresTicketRepository_NilResultStoredAsNull(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPostgresTicketRepository(testDB.DB.Pool)
	ctx := context.Background()

	ticket := &entities.LottoTicket{
		ID:           uuid.NewString(),
		Numbers:      entities.LottoNumbers{Main: []int{1, 2, 3, 4, 5, 6}, Bonus: 7},
		IsAuto:       true,
		PurchaseDate: time.Now().UTC(),
		DrawDate:     time.Now().UTC().Add(7 * 24 * time.Hour),
	}

	require.NoError(t, repo.SaveLottoTickets(ctx, []*entities.LottoTicket{ticket}))

	tickets, err := repo.GetLottoTickets(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Nil(t, tickets[0].Result)
}

func TestPostgresTicketRepository_ClearAll(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPostgresTicketRepository(testDB.DB.Pool)
	ctx := context.Background()

	require.NoError(t, repo.SaveLottoTickets(ctx, []*entities.LottoTicket{
		testLottoTicket(uuid.NewString(), time.Now().UTC()),
	}))
	require.NoError(t, repo.SavePensionTickets(ctx, []*entities.PensionTicket{
		{
			ID:           uuid.NewString(),
			Numbers:      entities.PensionNumbers{Group: "1", Number: "123456"},
			PurchaseDate: time.Now().UTC(),
			DrawDate:     time.Now().UTC(),
		},
	}))

	require.NoError(t, repo.ClearAll(ctx))

	lotto, err := repo.GetLottoTickets(ctx)
	require.NoError(t, err)
	assert.Empty(t, lotto)

	pension, err := repo.GetPensionTickets(ctx)
	require.NoError(t, err)
	assert.Empty(t, pension)
}
