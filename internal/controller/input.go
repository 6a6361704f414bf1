package controller

import (
	"strconv"
)

// InputError categorizes a rejected input.
type InputError int

// Input error categories.
const (
	NoInputError InputError = iota
	NoInputGiven
	NotANumber
	NotOnMenu
	InvalidBet
)

// String returns the category name used in logs.
func (e InputError) String() string {
	switch e {
	case NoInputError:
		return "none"
	case NoInputGiven:
		return "no_input_given"
	case NotANumber:
		return "not_a_number"
	case NotOnMenu:
		return "not_on_menu"
	case InvalidBet:
		return "invalid_bet"
	default:
		return "unknown"
	}
}

// Message returns the text shown to the player for the category.
func (e InputError) Message() string {
	switch e {
	case NoInputGiven:
		return "-----You just hit enter without any input.-----"
	case NotANumber:
		return "-----Please enter a positive whole number with no other characters-----"
	case NotOnMenu:
		return "-----Please enter a number that matches a menu option.-----"
	case InvalidBet:
		return "-----You can't bet more than you have.-----"
	default:
		return ""
	}
}

// ParseNumber accepts a line made only of decimal digits.
// Signs, decimal points, spaces and values too large for int64 are NotANumber.
func ParseNumber(line string) (int64, InputError) {
	if line == "" {
		return 0, NoInputGiven
	}
	for _, r := range line {
		if r < '0' || r > '9' {
			return 0, NotANumber
		}
	}

	n, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		return 0, NotANumber
	}
	return n, NoInputError
}
