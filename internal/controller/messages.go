package controller

import (
	"fmt"

	"slot-machine/internal/game/slot"
	"slot-machine/internal/model"
	"slot-machine/internal/repository"
)

// Player-facing text.
const (
	creditsText      = "Slot Machine, a console mini game. Please gamble responsibly."
	welcomeInput     = "Welcome to the Slot Machine!"
	welcomeOutput    = "Please gamble wisely."
	betPrompt        = "How much would you like to bet? (0 to go back to main menu)"
	betCancelled     = "You have chosen to return to the previous menu."
	cashOutPrompt    = "How much would you like to cash out?"
	cashOutCancelled = "You chose to return to the casino without cashing anything out."
	rebuyQuestion    = "You ran out of chips.  Would you like to buy more?"
	exitAcknowledge  = "Press the Enter key to exit."
)

// Casino security warnings, shown as the error count climbs.
const (
	softWarningMessage = "Casino Security have been notified of disruption in the casino.\n" +
		"A security guard approaches you and asks you politely to follow the directions.\n" +
		"Press Enter to continue."

	sternWarningMessage = "Casino Security take you aside and speak to you sternly for several minutes.\n" +
		"You have been warned previously.  Continued breaking of the rules will result in expulsion.\n" +
		"Press Enter to continue, but behave yourself..."
)

// menuLines returns the main menu. The buy option is listed only when
// showBuy is set.
func menuLines(showBuy bool) []string {
	lines := []string{
		"1) Play Slots!",
		"2) Credits",
		"3) Quit Slot Machine",
		"4) Show Today's Winnings (or Losses)",
		"5) Cash Out",
	}
	if showBuy {
		lines = append(lines, "6) Buy More Chips")
	}
	return lines
}

func buyPrompt(limit int64) string {
	return fmt.Sprintf("How many more chips would you like to buy? (Max %d)", limit)
}

func boughtMessage(bought int64, clamped bool) string {
	if clamped {
		return fmt.Sprintf("You have purchased the maximum number of chips allowed, %d.", bought)
	}
	return fmt.Sprintf("You purchased $%d more chips.", bought)
}

func partialCashOutMessage(amount, remaining int64) string {
	return fmt.Sprintf("You cashed out %d and return to the casino.\nYou still have %d", amount, remaining)
}

// spinMessage describes the outcome of a spin and any winnings.
func spinMessage(result slot.Result, winnings int64) string {
	var msg string
	switch result.Outcome {
	case slot.PairMatch:
		msg = "You matched two numbers, and won three times your bet!"
	case slot.TripleMatch:
		msg = "You matched three numbers, and won five times your bet!"
	case slot.TripleSeven:
		msg = "You hit the jackpot and spun three 7s!  You won 10 times your bet!"
	default:
		return "Sorry, you did not win this time."
	}
	return fmt.Sprintf("%s\nYou receive $%d", msg, winnings)
}

// DescribePosition describes the session's net result. stillPlaying selects
// the present tense used in the menu over the past tense used on exit.
func DescribePosition(stillPlaying bool, money int64) string {
	if money == 0 {
		if stillPlaying {
			return "You are breaking even today, not bad."
		}
		return "You broke even today, not bad."
	}

	verb := "made"
	if stillPlaying {
		verb = "are making"
	}

	if money < 0 {
		return fmt.Sprintf("You %s an overall loss today of %d.", verb, money)
	}
	return fmt.Sprintf("You %s overall winnings today of %d.", verb, money)
}

// exitLines returns the farewell for reason.
func exitLines(reason ExitReason, cashedOut, position int64) []string {
	summary := DescribePosition(false, position)
	switch reason {
	case OutOfChips:
		return []string{
			"You ran out of money.  Please come back another time!",
			summary,
		}
	case UserChoseQuit:
		return []string{
			"You have chosen to cash out and leave.",
			fmt.Sprintf("You cash out %d", cashedOut),
			summary,
			"Come back soon!",
		}
	case TooManyBadInputs:
		return []string{
			"You were warned, but you didn't listen.",
			"Security guards escort you to the cash out desk, and the door.",
			fmt.Sprintf("You cash out %d", cashedOut),
			summary,
		}
	default:
		return []string{
			"Your time on the slot machines is up.",
			"Thanks for playing, please come again!",
		}
	}
}

// ledgerSummary totals the session's chip movements for the exit screen.
func ledgerSummary(ledger *repository.TransactionRepository) string {
	return fmt.Sprintf("Chips bought %d, cashed out %d, wagered %d, won %d.",
		ledger.SumByType(model.TxTypeBuy),
		-ledger.SumByType(model.TxTypeCashOut),
		-ledger.SumByType(model.TxTypeBet),
		ledger.SumByType(model.TxTypeWin),
	)
}
