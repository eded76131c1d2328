package entities

import (
	"time"
)

// LottoNumbers holds a 6/45 selection: six unique main numbers and one
// bonus number, all in [1, 45].
type LottoNumbers struct {
	Main  []int `json:"main"`
	Bonus int   `json:"bonus"`
}

// Contains reports whether n is among the main numbers.
func (n LottoNumbers) Contains(v int) bool {
	for _, m := range n.Main {
		if m == v {
			return true
		}
	}
	return false
}

// Validate checks the manual-selection shape: exactly six unique main
// numbers in range plus an in-range bonus number.
func (n LottoNumbers) Validate() error {
	if len(n.Main) != LottoMainCount {
		return &InvalidSelectionError{
			Game:   GameLotto645,
			Reason: "exactly 6 main numbers are required",
		}
	}
	seen := make(map[int]bool, LottoMainCount)
	for _, v := range n.Main {
		if v < LottoMinNumber || v > LottoMaxNumber {
			return &InvalidSelectionError{
				Game:   GameLotto645,
				Reason: "main numbers must be between 1 and 45",
			}
		}
		if seen[v] {
			return &InvalidSelectionError{
				Game:   GameLotto645,
				Reason: "main numbers must be unique",
			}
		}
		seen[v] = true
	}
	if n.Bonus < LottoMinNumber || n.Bonus > LottoMaxNumber {
		return &InvalidSelectionError{
			Game:   GameLotto645,
			Reason: "bonus number must be between 1 and 45",
		}
	}
	return nil
}

// LottoResult records the outcome of scoring a ticket against a draw.
// Rank 0 means no win.
type LottoResult struct {
	WinningNumbers  LottoNumbers `json:"winningNumbers"`
	Rank            int          `json:"rank"`
	Prize           int64        `json:"prize"`
	MatchingNumbers []int        `json:"matchingNumbers"`
}

// IsWinner reports whether the result pays any prize.
func (r LottoResult) IsWinner() bool {
	return r.Rank > 0
}

// LottoTicket is a single purchased 6/45 game.
type LottoTicket struct {
	ID           string       `json:"id" db:"id"`
	Numbers      LottoNumbers `json:"numbers" db:"numbers"`
	IsAuto       bool         `json:"isAuto" db:"is_auto"`
	PurchaseDate time.Time    `json:"purchaseDate" db:"purchase_date"`
	DrawDate     time.Time    `json:"drawDate" db:"draw_date"`
	Result       *LottoResult `json:"result,omitempty" db:"result"`
}
