package entities

import (
	"time"
)

// PensionNumbers holds a pension 720+ selection: a group digit and a
// six-digit serial number. Both are kept as strings because leading zeros
// in manual selections are significant; comparison is lexical per digit.
type PensionNumbers struct {
	Group  string `json:"group"`
	Number string `json:"number"`
}

// Validate checks the manual-selection shape: a group digit in [1, 5] and
// a serial of exactly six decimal digits.
func (n PensionNumbers) Validate() error {
	if len(n.Group) != 1 || n.Group[0] < '1' || n.Group[0] > '5' {
		return &InvalidSelectionError{
			Game:   GamePension720,
			Reason: "group must be a digit between 1 and 5",
		}
	}
	if len(n.Number) != PensionDigits {
		return &InvalidSelectionError{
			Game:   GamePension720,
			Reason: "number must be exactly 6 digits",
		}
	}
	for _, c := range n.Number {
		if c < '0' || c > '9' {
			return &InvalidSelectionError{
				Game:   GamePension720,
				Reason: "number must contain only digits",
			}
		}
	}
	return nil
}

// PensionResult records the outcome of scoring a pension ticket. Annuity
// ranks carry a monthly prize; lump-sum ranks have MonthlyPrize 0 and the
// flat amount in TotalPrize.
type PensionResult struct {
	WinningNumbers PensionNumbers `json:"winningNumbers"`
	Rank           int            `json:"rank"`
	MonthlyPrize   int64          `json:"monthlyPrize"`
	TotalPrize     int64          `json:"totalPrize"`
}

// IsWinner reports whether the result pays any prize.
func (r PensionResult) IsWinner() bool {
	return r.Rank > 0
}

// PensionTicket is a single purchased pension 720+ ticket.
type PensionTicket struct {
	ID           string         `json:"id" db:"id"`
	Numbers      PensionNumbers `json:"numbers" db:"numbers"`
	IsAuto       bool           `json:"isAuto" db:"is_auto"`
	PurchaseDate time.Time      `json:"purchaseDate" db:"purchase_date"`
	DrawDate     time.Time      `json:"drawDate" db:"draw_date"`
	Result       *PensionResult `json:"result,omitempty" db:"result"`
}
