package memory

// Rand is the random source used to shuffle. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Card is one face-down card.
type Card struct {
	Symbol  string
	Matched bool
}

// Params holds the table rules.
type Params struct {
	Symbols     []string
	LockTicks   int // ticks a mismatched pair stays face up

	// Scoring is a house rule on top of the turn count: every match earns
	// MatchPoints and every miss costs MissPenalty, never below zero.
	MatchPoints int
	MissPenalty int
}

// DefaultParams returns eight pairs with an 800ms flip back at 60Hz, scoring
// +20 per match and -5 per miss under the house rule.
func DefaultParams() Params {
	return Params{
		Symbols:     []string{"♠", "♥", "♦", "♣", "★", "●", "▲", "◆"},
		LockTicks:   48,
		MatchPoints: 20,
		MissPenalty: 5,
	}
}

// State is one shuffled table.
type State struct {
	Params Params
	Cards  []Card
	First  int // index of the first choice, -1 if none
	Second int // index of the second choice while locked, -1 if none
	Lock   int // ticks left before a mismatch flips back
	Turns  int
	Score  int
	Won    bool
}

// Shuffle deals every symbol twice in random order.
func Shuffle(p Params, rng Rand) State {
	cards := make([]Card, 0, len(p.Symbols)*2)
	for _, sym := range p.Symbols {
		cards = append(cards, Card{Symbol: sym}, Card{Symbol: sym})
	}
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
	return State{Params: p, Cards: cards, First: -1, Second: -1}
}

// Locked reports whether a mismatched pair is showing.
func (s State) Locked() bool {
	return s.Lock > 0
}

// FaceUp reports whether card i is visible.
func (s State) FaceUp(i int) bool {
	if i < 0 || i >= len(s.Cards) {
		return false
	}
	return s.Cards[i].Matched || i == s.First || i == s.Second
}

// Matched returns the number of matched cards.
func (s State) Matched() int {
	n := 0
	for _, c := range s.Cards {
		if c.Matched {
			n++
		}
	}
	return n
}

// Choose turns card i face up. Choices are ignored while the table is
// locked, after the game is won, and for matched cards or the card
// already chosen. The second choice completes a turn.
func Choose(prev State, i int) State {
	if prev.Won || prev.Locked() || i < 0 || i >= len(prev.Cards) || prev.Cards[i].Matched || i == prev.First {
		return prev
	}

	s := prev
	if s.First < 0 {
		s.First = i
		return s
	}

	s.Turns++
	if s.Cards[s.First].Symbol != s.Cards[i].Symbol {
		s.Second = i
		s.Lock = max(s.Params.LockTicks, 1)
		s.Score = max(s.Score-s.Params.MissPenalty, 0)
		return s
	}

	cards := make([]Card, len(s.Cards))
	copy(cards, s.Cards)
	cards[s.First].Matched = true
	cards[i].Matched = true
	s.Cards = cards
	s.First = -1
	s.Score += s.Params.MatchPoints
	s.Won = s.Matched() == len(s.Cards)
	return s
}

// Tick counts down a mismatch and flips the pair back when it expires.
func Tick(prev State) State {
	if !prev.Locked() {
		return prev
	}
	s := prev
	s.Lock--
	if s.Lock == 0 {
		s.First, s.Second = -1, -1
	}
	return s
}
