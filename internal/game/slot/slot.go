// Package slot implements the three-reel slot machine: reel symbols, the
// payout table and the spin engine.
package slot

import (
	"iter"

	"slot-machine/internal/game"
)

// Symbol is a reel face value in [SymbolMin, SymbolMax].
type Symbol int

// Reel faces. Seven is the jackpot face.
const (
	SymbolMin   Symbol = 2
	SymbolMax   Symbol = 7
	SymbolSeven Symbol = 7
)

// ReelCount is the number of reels on the machine.
const ReelCount = 3

// Triple holds the left, middle and right reel.
type Triple [ReelCount]Symbol

// SentinelTriple is shown before the first real spin.
var SentinelTriple = Triple{SymbolSeven, SymbolSeven, SymbolSeven}

// Valid reports whether every symbol is a real reel face.
func (t Triple) Valid() bool {
	for _, s := range t {
		if s < SymbolMin || s > SymbolMax {
			return false
		}
	}
	return true
}

// Result is the outcome of one spin.
type Result struct {
	Triple     Triple
	Outcome    Outcome
	Multiplier int
}

// Payout returns the chips won for bet, zero for a losing spin.
func (r Result) Payout(bet int64) int64 {
	return bet * int64(r.Multiplier)
}

// Revealer is told about each reel as it stops.
type Revealer interface {
	RevealReelSymbol(pos int, symbol Symbol)
}

// Engine draws reel symbols and resolves them through the payout table.
type Engine struct {
	rng game.RandomSource
}

// NewEngine creates an Engine drawing from rng.
func NewEngine(rng game.RandomSource) *Engine {
	return &Engine{rng: rng}
}

// ReelSequence is a one-shot, lazily drawn run of the three reels.
type ReelSequence struct {
	rng   game.RandomSource
	drawn Triple
	count int
	used  bool
}

// Reels starts a new reel sequence. Nothing is drawn until it is iterated.
func (e *Engine) Reels() *ReelSequence {
	return &ReelSequence{rng: e.rng}
}

// All yields (position, symbol) for the left, middle and right reel, drawing
// each one only when it is requested. The sequence is not restartable: once
// iteration has begun, later calls yield nothing.
func (s *ReelSequence) All() iter.Seq2[int, Symbol] {
	return func(yield func(int, Symbol) bool) {
		if s.used {
			return
		}
		s.used = true

		for s.count < ReelCount {
			sym := Symbol(s.rng.Next(int(SymbolMin), int(SymbolMax)))
			pos := s.count
			s.drawn[pos] = sym
			s.count++
			if !yield(pos, sym) {
				return
			}
		}
	}
}

// Triple returns the drawn reels and whether all three have been drawn.
func (s *ReelSequence) Triple() (Triple, bool) {
	return s.drawn, s.count == ReelCount
}

// Spin draws all three reels, reporting each to r as it is drawn, and
// resolves the result. r may be nil.
func (e *Engine) Spin(r Revealer) Result {
	seq := e.Reels()
	for pos, sym := range seq.All() {
		if r != nil {
			r.RevealReelSymbol(pos, sym)
		}
	}

	triple, _ := seq.Triple()
	outcome, multiplier := Resolve(triple)
	return Result{
		Triple:     triple,
		Outcome:    outcome,
		Multiplier: multiplier,
	}
}
