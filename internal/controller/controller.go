// Package controller runs the slot machine session: the menu loop, bet
// validation, buying and cashing out, casino security and the exit
// conditions. It drives the spin engine and the session state and talks to
// the player only through a Display.
package controller

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"slot-machine/internal/game/slot"
	"slot-machine/internal/session"
)

const (
	// DefaultBuyMenuThreshold is the chip count at or below which buying is offered.
	DefaultBuyMenuThreshold = 500

	// Casino security thresholds on the input error count.
	DefaultSoftWarning  = 4
	DefaultSternWarning = 8
	DefaultEject        = 10
)

// State is a step of the session state machine.
type State int

// Session states.
const (
	StateMainMenu State = iota
	StateAwaitingBetAmount
	StateSpinning
	StateAwaitingBuyAmount
	StateAwaitingCashOutAmount
	StateAwaitingRebuyChoice
	StateExited
)

// String returns the state name used in logs.
func (s State) String() string {
	switch s {
	case StateMainMenu:
		return "main_menu"
	case StateAwaitingBetAmount:
		return "awaiting_bet_amount"
	case StateSpinning:
		return "spinning"
	case StateAwaitingBuyAmount:
		return "awaiting_buy_amount"
	case StateAwaitingCashOutAmount:
		return "awaiting_cash_out_amount"
	case StateAwaitingRebuyChoice:
		return "awaiting_rebuy_choice"
	case StateExited:
		return "exited"
	default:
		return "unknown"
	}
}

// ExitReason says why a session ended.
type ExitReason int

// Exit reasons.
const (
	NotExited ExitReason = iota
	OutOfChips
	UserChoseQuit
	TooManyBadInputs
)

// String returns the reason name used in logs.
func (r ExitReason) String() string {
	switch r {
	case NotExited:
		return "not_exited"
	case OutOfChips:
		return "out_of_chips"
	case UserChoseQuit:
		return "user_chose_quit"
	case TooManyBadInputs:
		return "too_many_bad_inputs"
	default:
		return "unknown"
	}
}

// Main menu choices.
const (
	menuPlay     = 1
	menuCredits  = 2
	menuQuit     = 3
	menuPosition = 4
	menuCashOut  = 5
	menuBuy      = 6
)

// Rebuy prompt choices.
const (
	rebuyNo  = 0
	rebuyYes = 1
)

// Config holds the rules the controller enforces. Zero fields take defaults.
type Config struct {
	BuyCap           int64
	BuyMenuThreshold int64
	SoftWarning      int
	SternWarning     int
	Eject            int
}

// Controller owns one session for its whole lifetime.
type Controller struct {
	cfg     Config
	session *session.Session
	engine  *slot.Engine
	display Display
	logger  zerolog.Logger

	state      State
	reason     ExitReason
	pendingBet int64
	rebuying   bool // buying because the chips ran out
}

// New creates a Controller in the main menu.
func New(cfg *Config, sess *session.Session, engine *slot.Engine, display Display) *Controller {
	c := Config{
		BuyCap:           session.DefaultBuyCap,
		BuyMenuThreshold: DefaultBuyMenuThreshold,
		SoftWarning:      DefaultSoftWarning,
		SternWarning:     DefaultSternWarning,
		Eject:            DefaultEject,
	}
	if cfg != nil {
		if cfg.BuyCap > 0 {
			c.BuyCap = cfg.BuyCap
		}
		if cfg.BuyMenuThreshold > 0 {
			c.BuyMenuThreshold = cfg.BuyMenuThreshold
		}
		if cfg.SoftWarning > 0 {
			c.SoftWarning = cfg.SoftWarning
		}
		if cfg.SternWarning > 0 {
			c.SternWarning = cfg.SternWarning
		}
		if cfg.Eject > 0 {
			c.Eject = cfg.Eject
		}
	}

	sess.SetLastInput(welcomeInput)
	sess.SetLastOutput(welcomeOutput)

	return &Controller{
		cfg:     c,
		session: sess,
		engine:  engine,
		display: display,
		logger:  log.With().Str("session_id", uuid.NewString()).Logger(),
		state:   StateMainMenu,
	}
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// ExitReason returns why the session ended, or NotExited.
func (c *Controller) ExitReason() ExitReason {
	return c.reason
}

// Run drives the session until it exits. The returned error is non-nil only
// when the display fails, for example when input is closed.
func (c *Controller) Run() (ExitReason, error) {
	c.logger.Info().
		Int64("chips", c.session.Chips()).
		Msg("Session started")

	for c.state != StateExited {
		if err := c.step(); err != nil {
			c.logger.Error().Err(err).Str("state", c.state.String()).Msg("Session aborted")
			return c.reason, err
		}
	}
	return c.reason, nil
}

// step handles exactly one prompt of the current state.
func (c *Controller) step() error {
	switch c.state {
	case StateMainMenu:
		return c.mainMenu()
	case StateAwaitingBetAmount:
		return c.awaitBet()
	case StateSpinning:
		return c.spin()
	case StateAwaitingBuyAmount:
		return c.awaitBuy()
	case StateAwaitingCashOutAmount:
		return c.awaitCashOut()
	case StateAwaitingRebuyChoice:
		return c.awaitRebuyChoice()
	default:
		return fmt.Errorf("unexpected state %s", c.state)
	}
}

func (c *Controller) mainMenu() error {
	if c.session.Chips() == 0 {
		c.state = StateAwaitingRebuyChoice
		return nil
	}

	c.render(true)
	c.display.WriteLines(menuLines(c.canBuy())...)

	choice, ok, err := c.readNumber()
	if err != nil || !ok {
		return err
	}

	switch choice {
	case menuPlay:
		c.state = StateAwaitingBetAmount
	case menuCredits:
		c.say(creditsText)
	case menuQuit:
		return c.exit(UserChoseQuit)
	case menuPosition:
		c.say(DescribePosition(true, c.session.FinancialPosition()))
	case menuCashOut:
		c.state = StateAwaitingCashOutAmount
	case menuBuy:
		if !c.canBuy() {
			return c.reject(NotOnMenu)
		}
		c.state = StateAwaitingBuyAmount
	default:
		return c.reject(NotOnMenu)
	}
	return nil
}

func (c *Controller) awaitBet() error {
	c.display.WriteLines(betPrompt)

	bet, ok, err := c.readNumber()
	if err != nil || !ok {
		return err
	}

	if bet == 0 {
		c.say(betCancelled)
		c.state = StateMainMenu
		return nil
	}

	if err := c.session.PlaceBet(bet); err != nil {
		if errors.Is(err, session.ErrInsufficientChips) {
			return c.reject(InvalidBet)
		}
		return err
	}

	c.pendingBet = bet
	c.state = StateSpinning
	return nil
}

func (c *Controller) spin() error {
	c.render(false)

	bet := c.pendingBet
	result := c.engine.Spin(c.display)
	c.session.RecordSpin(result.Triple)

	winnings := result.Payout(bet)
	if winnings > 0 {
		if err := c.session.CreditWinnings(winnings); err != nil {
			return fmt.Errorf("failed to credit winnings: %w", err)
		}
	}

	c.logger.Info().
		Int64("bet", bet).
		Ints("reels", []int{int(result.Triple[0]), int(result.Triple[1]), int(result.Triple[2])}).
		Str("outcome", result.Outcome.String()).
		Int64("winnings", winnings).
		Int64("chips", c.session.Chips()).
		Msg("Spin resolved")

	c.say(spinMessage(result, winnings))
	c.pendingBet = 0
	c.state = StateMainMenu
	return nil
}

func (c *Controller) awaitBuy() error {
	c.display.WriteLines(buyPrompt(c.cfg.BuyCap))

	amount, ok, err := c.readNumber()
	if err != nil || !ok {
		return err
	}

	if amount == 0 {
		// Asking to buy more and then buying nothing means leaving.
		if c.rebuying {
			return c.exit(OutOfChips)
		}
		c.state = StateMainMenu
		return nil
	}

	bought, clamped, err := c.session.BuyChips(amount, c.cfg.BuyCap)
	if err != nil {
		return fmt.Errorf("failed to buy chips: %w", err)
	}

	c.logger.Info().
		Int64("requested", amount).
		Int64("bought", bought).
		Bool("clamped", clamped).
		Int64("chips", c.session.Chips()).
		Msg("Chips bought")

	c.say(boughtMessage(bought, clamped))
	c.rebuying = false
	c.state = StateMainMenu
	return nil
}

func (c *Controller) awaitCashOut() error {
	c.display.WriteLines(cashOutPrompt)

	amount, ok, err := c.readNumber()
	if err != nil || !ok {
		return err
	}

	switch {
	case amount == 0:
		c.say(cashOutCancelled)
	case amount >= c.session.Chips():
		return c.exit(UserChoseQuit)
	default:
		if err := c.session.CashOut(amount); err != nil {
			return fmt.Errorf("failed to cash out: %w", err)
		}
		c.logger.Info().
			Int64("amount", amount).
			Int64("chips", c.session.Chips()).
			Msg("Chips cashed out")
		c.say(partialCashOutMessage(amount, c.session.Chips()))
	}

	c.state = StateMainMenu
	return nil
}

func (c *Controller) awaitRebuyChoice() error {
	c.render(true)
	c.display.WriteLines(rebuyQuestion, "0) No", "1) Yes")

	choice, ok, err := c.readNumber()
	if err != nil || !ok {
		return err
	}

	switch choice {
	case rebuyNo:
		return c.exit(OutOfChips)
	case rebuyYes:
		c.rebuying = true
		c.state = StateAwaitingBuyAmount
		return nil
	default:
		return c.reject(NotOnMenu)
	}
}

// readNumber reads and parses one line. ok is false when the line was
// rejected; the rejection has already been handled.
func (c *Controller) readNumber() (n int64, ok bool, err error) {
	line, err := c.display.ReadLine()
	if err != nil {
		return 0, false, fmt.Errorf("failed to read input: %w", err)
	}
	c.session.SetLastInput(line)

	n, kind := ParseNumber(line)
	if kind != NoInputError {
		return 0, false, c.reject(kind)
	}
	return n, true, nil
}

// reject records a bad input, escalates through casino security and keeps
// the current state unless the player is ejected.
func (c *Controller) reject(kind InputError) error {
	c.session.SetLastOutput(kind.Message())
	count := c.session.RecordError()

	c.logger.Warn().
		Str("kind", kind.String()).
		Str("input", c.session.LastInput()).
		Int("error_count", count).
		Str("state", c.state.String()).
		Msg("Input rejected")

	switch {
	case count >= c.cfg.Eject:
		return c.exit(TooManyBadInputs)
	case count == c.cfg.SternWarning:
		if err := c.display.Pause(sternWarningMessage); err != nil {
			return fmt.Errorf("failed to show warning: %w", err)
		}
	case count == c.cfg.SoftWarning:
		if err := c.display.Pause(softWarningMessage); err != nil {
			return fmt.Errorf("failed to show warning: %w", err)
		}
	}

	c.render(true)
	return nil
}

// exit ends the session. Quitting and ejection cash out whatever is left on
// the table.
func (c *Controller) exit(reason ExitReason) error {
	var cashedOut int64
	if reason != OutOfChips {
		cashedOut = c.session.CashOutAll()
	}
	position := c.session.FinancialPosition()

	c.state = StateExited
	c.reason = reason
	c.pendingBet = 0
	c.rebuying = false

	c.logger.Info().
		Str("reason", reason.String()).
		Int64("cashed_out", cashedOut).
		Int64("position", position).
		Int("error_count", c.session.ErrorCount()).
		Msg("Session ended")

	c.render(true)
	c.display.WriteLines(exitLines(reason, cashedOut, position)...)
	c.display.WriteLines(ledgerSummary(c.session.Ledger()))
	if err := c.display.Pause(exitAcknowledge); err != nil {
		c.logger.Debug().Err(err).Msg("Exit acknowledgement not received")
	}
	return nil
}

func (c *Controller) canBuy() bool {
	return c.session.Chips() <= c.cfg.BuyMenuThreshold
}

func (c *Controller) say(msg string) {
	c.session.SetLastOutput(msg)
}

func (c *Controller) render(includeOutput bool) {
	c.display.RenderFrame(Frame{
		Chips:             c.session.Chips(),
		LastInput:         c.session.LastInput(),
		LastOutput:        c.session.LastOutput(),
		LastSpin:          c.session.LastSpin(),
		IncludeOutputLine: includeOutput,
	})
}
