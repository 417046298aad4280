package domain

// CardColor identifies one of the four crew colors or the black trump suit.
type CardColor string

const (
	ColorYellow CardColor = "yellow"
	ColorGreen  CardColor = "green"
	ColorPink   CardColor = "pink"
	ColorBlue   CardColor = "blue"
	ColorBlack  CardColor = "black"
)

// Colors lists the four non-trump colors in deck order.
var Colors = []CardColor{ColorYellow, ColorGreen, ColorPink, ColorBlue}

const (
	// MaxColorNumber is the highest number printed on a colored card.
	MaxColorNumber = 9
	// MaxBlackNumber is the highest number printed on a black card.
	MaxBlackNumber = 4
)

// Card is a single card: colored 1-9 or black 1-4.
type Card struct {
	Color  CardColor `json:"color"`
	Number int       `json:"number"`
}

// NewDeck returns an ordered deck: 36 colored cards plus, if includeBlack,
// the 4 black cards.
func NewDeck(includeBlack bool) []Card {
	deck := make([]Card, 0, 40)
	for _, color := range Colors {
		for n := 1; n <= MaxColorNumber; n++ {
			deck = append(deck, Card{Color: color, Number: n})
		}
	}
	if includeBlack {
		for n := 1; n <= MaxBlackNumber; n++ {
			deck = append(deck, Card{Color: ColorBlack, Number: n})
		}
	}
	return deck
}

// RemoveCard removes the first value-matching card from a hand.
// The second return value reports whether the card was present.
func RemoveCard(hand []Card, card Card) ([]Card, bool) {
	for i, c := range hand {
		if c == card {
			out := append([]Card{}, hand[:i]...)
			return append(out, hand[i+1:]...), true
		}
	}
	return hand, false
}

// ContainsCard reports whether the hand holds the given card.
func ContainsCard(hand []Card, card Card) bool {
	for _, c := range hand {
		if c == card {
			return true
		}
	}
	return false
}

// CountColor returns how many cards of the given color the hand holds.
func CountColor(hand []Card, color CardColor) int {
	n := 0
	for _, c := range hand {
		if c.Color == color {
			n++
		}
	}
	return n
}
