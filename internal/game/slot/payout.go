package slot

// Outcome is the resolved result of a spin.
type Outcome int

// Spin outcomes, lowest payout first.
const (
	NoMatch Outcome = iota
	PairMatch
	TripleMatch
	TripleSeven
)

// multipliers maps each outcome to its bet multiplier.
var multipliers = map[Outcome]int{
	NoMatch:     0,
	PairMatch:   3,
	TripleMatch: 5,
	TripleSeven: 10,
}

// Multiplier returns the bet multiplier paid for the outcome.
func (o Outcome) Multiplier() int {
	return multipliers[o]
}

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case NoMatch:
		return "no_match"
	case PairMatch:
		return "pair_match"
	case TripleMatch:
		return "triple_match"
	case TripleSeven:
		return "triple_seven"
	default:
		return "unknown"
	}
}

// Resolve maps a reel triple to its outcome and multiplier.
// Rules, in priority order:
//   - all three 7: TripleSeven, 10x
//   - all three equal: TripleMatch, 5x
//   - exactly two equal, any pairing: PairMatch, 3x
//   - otherwise: NoMatch, 0x
func Resolve(t Triple) (Outcome, int) {
	left, middle, right := t[0], t[1], t[2]

	var outcome Outcome
	switch {
	case left == middle && middle == right && left == SymbolSeven:
		outcome = TripleSeven
	case left == middle && middle == right:
		outcome = TripleMatch
	case left == middle || middle == right || left == right:
		outcome = PairMatch
	default:
		outcome = NoMatch
	}
	return outcome, outcome.Multiplier()
}
