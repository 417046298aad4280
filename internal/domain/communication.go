package domain

// IsValidCommunication checks a one-time hand signal against the player's
// actual hand. The rank must truthfully describe the card:
//   - Only: the player's single card of that color.
//   - Highest/Lowest: the extreme of two or more cards of that color.
//   - Unknown: allowed only when exactly one of the above holds, so the
//     hint stays ambiguous without being a lie.
//
// Black cards can never be communicated.
func IsValidCommunication(player *Player, card Card, rank CommunicationRank) bool {
	if card.Color == ColorBlack {
		return false
	}

	var sameColor []Card
	for _, c := range player.Hand {
		if c.Color == card.Color {
			sameColor = append(sameColor, c)
		}
	}
	if len(sameColor) == 0 {
		return false
	}

	maxNumber, minNumber := sameColor[0].Number, sameColor[0].Number
	hasCard := false
	for _, c := range sameColor {
		if c.Number > maxNumber {
			maxNumber = c.Number
		}
		if c.Number < minNumber {
			minNumber = c.Number
		}
		if c.Number == card.Number {
			hasCard = true
		}
	}
	if !hasCard {
		return false
	}

	switch rank {
	case RankOnly:
		return len(sameColor) == 1
	case RankHighest:
		return len(sameColor) > 1 && card.Number == maxNumber
	case RankLowest:
		return len(sameColor) > 1 && card.Number == minNumber
	case RankUnknown:
		isHighest := card.Number == maxNumber && len(sameColor) > 1
		isLowest := card.Number == minNumber && len(sameColor) > 1
		isOnly := len(sameColor) == 1
		count := 0
		for _, ok := range []bool{isHighest, isLowest, isOnly} {
			if ok {
				count++
			}
		}
		return count == 1
	default:
		return false
	}
}
