package deck

// OrderedRand is a Rand that never reorders cards and always picks the
// largest value IntN allows. A shoe built with it deals its decks in sorted
// order and puts the cut card at the very bottom, which makes card-exact
// tests possible.
type OrderedRand struct{}

// IntN returns n-1
func (OrderedRand) IntN(n int) int {
	return n - 1
}

// Shuffle leaves the order untouched
func (OrderedRand) Shuffle(int, func(i, j int)) {}

// ScriptedRand replays IntN results from a script and otherwise behaves
// like OrderedRand. Values are clamped into [0, n).
type ScriptedRand struct {
	Ints []int
	next int
}

// IntN returns the next scripted value, or n-1 once the script runs out
func (r *ScriptedRand) IntN(n int) int {
	if r.next >= len(r.Ints) {
		return n - 1
	}
	v := r.Ints[r.next]
	r.next++
	return min(max(v, 0), n-1)
}

// Shuffle leaves the order untouched
func (r *ScriptedRand) Shuffle(int, func(i, j int)) {}

// StackTop places cards on top of the shoe so they are drawn in the order
// given.
func (s *Shoe) StackTop(cards ...Card) {
	for i := len(cards) - 1; i >= 0; i-- {
		s.StackOn(cards[i])
	}
}
