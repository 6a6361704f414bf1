package controller

import "slot-machine/internal/game/slot"

// Frame is everything needed to redraw the machine.
type Frame struct {
	Chips             int64
	LastInput         string
	LastOutput        string
	LastSpin          slot.Triple
	IncludeOutputLine bool
}

// Display is the console collaborator the controller draws and reads through.
// Any terminal, GUI or scripted test harness can implement it.
type Display interface {
	// RenderFrame redraws the machine from f.
	RenderFrame(f Frame)

	// WriteLines prints prompts, menus and messages below the frame.
	WriteLines(lines ...string)

	// ReadLine blocks until a full line of input is available and returns it
	// without the line terminator.
	ReadLine() (string, error)

	// RevealReelSymbol shows one reel stopping on symbol; pos is 0..2, left to right.
	RevealReelSymbol(pos int, symbol slot.Symbol)

	// Pause shows message and waits for an acknowledgement.
	Pause(message string) error
}
