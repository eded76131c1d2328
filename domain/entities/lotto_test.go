package entities

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLottoNumbers_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		numbers LottoNumbers
		wantErr bool
	}{
		{
			name:    "valid selection",
			numbers: LottoNumbers{Main: []int{1, 2, 3, 4, 5, 6}, Bonus: 7},
			wantErr: false,
		},
		{
			name:    "valid selection - boundary values",
			numbers: LottoNumbers{Main: []int{1, 10, 20, 30, 40, 45}, Bonus: 45},
			wantErr: false,
		},
		{
			name:    "bonus may repeat a main number",
			numbers: LottoNumbers{Main: []int{1, 2, 3, 4, 5, 6}, Bonus: 6},
			wantErr: false,
		},
		{
			name:    "too few main numbers",
			numbers: LottoNumbers{Main: []int{1, 2, 3, 4, 5}, Bonus: 7},
			wantErr: true,
		},
		{
			name:    "too many main numbers",
			numbers: LottoNumbers{Main: []int{1, 2, 3, 4, 5, 6, 7}, Bonus: 8},
			wantErr: true,
		},
		{
			name:    "duplicate main number",
			numbers: LottoNumbers{Main: []int{1, 2, 3, 4, 5, 5}, Bonus: 7},
			wantErr: true,
		},
		{
			name:    "main number out of range",
			numbers: LottoNumbers{Main: []int{1, 2, 3, 4, 5, 46}, Bonus: 7},
			wantErr: true,
		},
		{
			name:    "main number below range",
			numbers: LottoNumbers{Main: []int{0, 2, 3, 4, 5, 6}, Bonus: 7},
			wantErr: true,
		},
		{
			name:    "bonus out of range",
			numbers: LottoNumbers{Main: []int{1, 2, 3, 4, 5, 6}, Bonus: 46},
			wantErr: true,
		},
		{
			name:    "missing bonus",
			numbers: LottoNumbers{Main: []int{1, 2, 3, 4, 5, 6}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.numbers.Validate()
			if tt.wantErr {
				require.Error(t, err)
				var selErr *InvalidSelectionError
				assert.True(t, errors.As(err, &selErr))
				assert.Equal(t, GameLotto645, selErr.Game)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLottoNumbers_Contains(t *testing.T) {
	t.Parallel()

	numbers := LottoNumbers{Main: []int{3, 11, 24, 31, 38, 42}, Bonus: 5}
	assert.True(t, numbers.Contains(24))
	assert.False(t, numbers.Contains(5), "bonus is not a main number")
	assert.False(t, numbers.Contains(1))
}

func TestLottoResult_IsWinner(t *testing.T) {
	t.Parallel()

	assert.False(t, LottoResult{Rank: 0}.IsWinner())
	assert.True(t, LottoResult{Rank: 5, Prize: 5000}.IsWinner())
	assert.True(t, LottoResult{Rank: 1, Prize: 2000000000}.IsWinner())
}
