package entities

import "fmt"

// Game identifies one of the simulated lottery games.
type Game string

const (
	// GameLotto645 is the 6/45 draw game: six main numbers plus a bonus.
	GameLotto645 Game = "lotto645"
	// GameSpeetto1000 is the scratch-ticket game.
	GameSpeetto1000 Game = "speetto1000"
	// GamePension720 is the pension-style draw with monthly annuity prizes.
	GamePension720 Game = "pension720"
)

// AllGames lists every supported game in display order.
func AllGames() []Game {
	return []Game{GameLotto645, GameSpeetto1000, GamePension720}
}

// ParseGame converts a string into a Game, rejecting unknown values.
func ParseGame(s string) (Game, error) {
	switch Game(s) {
	case GameLotto645, GameSpeetto1000, GamePension720:
		return Game(s), nil
	}
	return "", fmt.Errorf("unknown game %q", s)
}

// Lotto 6/45 number shape.
const (
	LottoMainCount = 6
	LottoMinNumber = 1
	LottoMaxNumber = 45
)

// Scratch ticket number shape: six user numbers and one lucky number, all
// single digits.
const (
	ScratchUserCount = 6
	ScratchMinNumber = 1
	ScratchMaxNumber = 9
)

// Pension 720+ number shape: a group digit and a six-digit serial number.
const (
	PensionMinGroup  = 1
	PensionMaxGroup  = 5
	PensionDigits    = 6
	PensionMinSerial = 100000
	PensionMaxSerial = 999999
)
