package tasks

import "thecrew/internal/domain"

// numPlayers derives the seat count from the first completed trick.
func numPlayers(tricks []domain.Trick) int {
	if len(tricks) == 0 {
		return 0
	}
	return len(tricks[0].PlayerOrder)
}

// expectedTricks returns how many tricks the game will have, inferred from
// the trick history itself so predicates stay self-contained.
func expectedTricks(tricks []domain.Trick) int {
	return domain.ExpectedTrickCount(numPlayers(tricks))
}

func countWins(tricks []domain.Trick, playerID string) int {
	wins := 0
	for _, t := range tricks {
		if t.Winner == playerID {
			wins++
		}
	}
	return wins
}

func hasConsecutiveWins(tricks []domain.Trick, playerID string, required int) bool {
	current := 0
	for _, t := range tricks {
		if t.Winner == playerID {
			current++
			if current >= required {
				return true
			}
		} else {
			current = 0
		}
	}
	return false
}

// playerCard returns the card the player contributed to the trick, if any.
func playerCard(trick domain.Trick, playerID string) (domain.Card, bool) {
	for i, id := range trick.PlayerOrder {
		if id == playerID {
			return trick.PlayedCards[i], true
		}
	}
	return domain.Card{}, false
}

// tally aggregates cards by color and number, and remembers which numbers of
// each color were seen. Used both for a player's won cards and for all cards
// played so far; the difference between the two bounds what is still winnable.
type tally struct {
	colorCounts  map[domain.CardColor]int
	numberCounts map[int]int
	colorNumbers map[domain.CardColor]map[int]bool
}

func newTally() tally {
	return tally{
		colorCounts:  make(map[domain.CardColor]int),
		numberCounts: make(map[int]int),
		colorNumbers: make(map[domain.CardColor]map[int]bool),
	}
}

func (t tally) add(card domain.Card) {
	t.colorCounts[card.Color]++
	t.numberCounts[card.Number]++
	if t.colorNumbers[card.Color] == nil {
		t.colorNumbers[card.Color] = make(map[int]bool)
	}
	t.colorNumbers[card.Color][card.Number] = true
}

func tallyWonCards(tricks []domain.Trick, playerID string) tally {
	out := newTally()
	for _, trick := range tricks {
		if trick.Winner != playerID {
			continue
		}
		for _, card := range trick.PlayedCards {
			out.add(card)
		}
	}
	return out
}

func tallyPlayedCards(tricks []domain.Trick) tally {
	out := newTally()
	for _, trick := range tricks {
		for _, card := range trick.PlayedCards {
			out.add(card)
		}
	}
	return out
}

// evaluateCollectCards requires the player to win every listed card. The
// moment any listed card goes to a trick someone else won the objective is
// dead.
func evaluateCollectCards(tricks []domain.Trick, playerID string, cards []domain.Card) State {
	found := make(map[domain.Card]bool, len(cards))
	for _, c := range cards {
		found[c] = false
	}

	for _, trick := range tricks {
		for _, card := range trick.PlayedCards {
			for _, req := range cards {
				if card == req {
					if trick.Winner != playerID {
						return StateFailed
					}
					found[req] = true
				}
			}
		}
	}

	for _, ok := range found {
		if !ok {
			return StateInProgress
		}
	}
	return StateCompleted
}

// evaluateNoCards fails as soon as the player wins a trick containing a card
// matching the predicate, and completes at game end otherwise.
func evaluateNoCards(tricks []domain.Trick, playerID string, banned func(domain.Card) bool) State {
	expected := expectedTricks(tricks)
	for _, trick := range tricks {
		if trick.Winner != playerID {
			continue
		}
		for _, card := range trick.PlayedCards {
			if banned(card) {
				return StateFailed
			}
		}
	}
	if len(tricks) == expected {
		return StateCompleted
	}
	return StateInProgress
}

// evaluateExactColorCount requires the player's won cards to hit the listed
// per-color totals exactly. Overshooting a limit fails immediately; the
// exact check runs at game end.
func evaluateExactColorCount(tricks []domain.Trick, playerID string, colorCounts map[domain.CardColor]int) State {
	expected := expectedTricks(tricks)
	counts := make(map[domain.CardColor]int)

	for _, trick := range tricks {
		if trick.Winner != playerID {
			continue
		}
		for _, card := range trick.PlayedCards {
			counts[card.Color]++
			if limit, ok := colorCounts[card.Color]; ok && counts[card.Color] > limit {
				return StateFailed
			}
		}
	}

	if len(tricks) == expected {
		for color, required := range colorCounts {
			if counts[color] != required {
				return StateFailed
			}
		}
		return StateCompleted
	}
	return StateInProgress
}

// evaluateExactNumberCount is evaluateExactColorCount keyed by card number.
func evaluateExactNumberCount(tricks []domain.Trick, playerID string, numberCounts map[int]int) State {
	expected := expectedTricks(tricks)
	counts := make(map[int]int)

	for _, trick := range tricks {
		if trick.Winner != playerID {
			continue
		}
		for _, card := range trick.PlayedCards {
			counts[card.Number]++
			if limit, ok := numberCounts[card.Number]; ok && counts[card.Number] > limit {
				return StateFailed
			}
		}
	}

	if len(tricks) == expected {
		for num, required := range numberCounts {
			if counts[num] != required {
				return StateFailed
			}
		}
		return StateCompleted
	}
	return StateInProgress
}

// evaluateExactConsecutiveWins requires exactly `required` trick wins and
// that they form one unbroken run.
func evaluateExactConsecutiveWins(tricks []domain.Trick, playerID string, required int) State {
	expected := expectedTricks(tricks)

	wins, current, best := 0, 0, 0
	for _, trick := range tricks {
		if trick.Winner == playerID {
			wins++
			current++
			if current > best {
				best = current
			}
		} else {
			current = 0
		}

		if wins > required {
			return StateFailed
		}
		if wins == required && best < required {
			return StateFailed
		}
	}

	if len(tricks) == expected {
		if wins == required && best == required {
			return StateCompleted
		}
		return StateFailed
	}
	return StateInProgress
}
