package entities

import "time"

// ScratchSymbol is one scratch area on a ticket. The simulator reveals all
// symbols at purchase time, so Revealed is always true on stored tickets;
// the field is kept so exported data matches the display model.
type ScratchSymbol struct {
	ID       string `json:"id"`
	Symbol   string `json:"symbol"`
	Number   int    `json:"number"`
	Revealed bool   `json:"revealed"`
}

// ScratchResult records the outcome of a scratch ticket. A ticket with any
// user number equal to the lucky number always pays at least the minimum
// prize; the exact tier is drawn randomly at scoring time.
type ScratchResult struct {
	MatchingNumbers []int `json:"matchingNumbers"`
	Prize           int64 `json:"prize"`
}

// IsWinner reports whether the result pays any prize.
func (r ScratchResult) IsWinner() bool {
	return r.Prize > 0
}

// ScratchTicket is a single purchased scratch ticket.
type ScratchTicket struct {
	ID           string          `json:"id" db:"id"`
	Symbols      []ScratchSymbol `json:"symbols" db:"symbols"`
	LuckyNumbers []int           `json:"luckyNumbers" db:"lucky_numbers"`
	PurchaseDate time.Time       `json:"purchaseDate" db:"purchase_date"`
	IsComplete   bool            `json:"isComplete" db:"is_complete"`
	Result       *ScratchResult  `json:"result,omitempty" db:"result"`
}

// UserNumbers extracts the numbers behind the ticket's scratch areas.
func (t *ScratchTicket) UserNumbers() []int {
	numbers := make([]int, len(t.Symbols))
	for i, s := range t.Symbols {
		numbers[i] = s.Number
	}
	return numbers
}
