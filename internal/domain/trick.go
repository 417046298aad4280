package domain

// ResolveTrick returns the session id that wins a full trick.
// Any black card beats every colored card; among black cards the highest
// number wins. With no black card, the highest card of the lead color wins.
func ResolveTrick(trick Trick) string {
	winningIndex := 0
	highest := -1

	blackPlayed := false
	for i, card := range trick.PlayedCards {
		if card.Color == ColorBlack {
			blackPlayed = true
			if card.Number > highest {
				highest = card.Number
				winningIndex = i
			}
		}
	}

	if !blackPlayed {
		leadColor := trick.PlayedCards[0].Color
		highest = -1
		for i, card := range trick.PlayedCards {
			if card.Color == leadColor && card.Number > highest {
				highest = card.Number
				winningIndex = i
			}
		}
	}

	return trick.PlayerOrder[winningIndex]
}

// CanFollow reports whether playing card from hand is legal against the lead
// color. Off-color plays (black included) are legal only when the hand holds
// no card of the lead color.
func CanFollow(hand []Card, card Card, leadColor CardColor) bool {
	if card.Color == leadColor {
		return true
	}
	for _, c := range hand {
		if c == card {
			continue
		}
		if c.Color == leadColor {
			return false
		}
	}
	return true
}
