package tasks

import "thecrew/internal/domain"

// evaluateWinWithNumber completes once the player wins a trick playing a
// card with the given number.
func evaluateWinWithNumber(tricks []domain.Trick, playerID string, number int, excludeBlack bool) State {
	for _, trick := range tricks {
		card, ok := playerCard(trick, playerID)
		if !ok {
			continue
		}
		if trick.Winner == playerID && card.Number == number &&
			(!excludeBlack || card.Color != domain.ColorBlack) {
			return StateCompleted
		}
	}
	if len(tricks) == expectedTricks(tricks) {
		return StateFailed
	}
	return StateInProgress
}

// evaluateSubmarineWithCard settles the moment the target card is played:
// the player must have won that trick with a black card.
func evaluateSubmarineWithCard(tricks []domain.Trick, playerID string, target domain.Card) State {
	for _, trick := range tricks {
		if !domain.ContainsCard(trick.PlayedCards, target) {
			continue
		}
		card, ok := playerCard(trick, playerID)
		if ok && card.Color == domain.ColorBlack && trick.Winner == playerID {
			return StateCompleted
		}
		return StateFailed
	}
	if len(tricks) == expectedTricks(tricks) {
		return StateFailed
	}
	return StateInProgress
}

// evaluatePlayerNumberAndTrickContains completes once the player wins a
// trick playing `playerNum` while the trick also holds `containsNum`. With
// requireDistinct the player's own card does not count as the contained one.
func evaluatePlayerNumberAndTrickContains(tricks []domain.Trick, playerID string, playerNum, containsNum int, excludePlayerBlack, requireDistinct bool) State {
	for _, trick := range tricks {
		if trick.Winner != playerID {
			continue
		}
		card, ok := playerCard(trick, playerID)
		if !ok {
			continue
		}
		if card.Number != playerNum || (excludePlayerBlack && card.Color == domain.ColorBlack) {
			continue
		}
		for i, played := range trick.PlayedCards {
			if requireDistinct && i < len(trick.PlayerOrder) && trick.PlayerOrder[i] == playerID {
				continue
			}
			if played.Number == containsNum {
				return StateCompleted
			}
		}
	}
	if len(tricks) == expectedTricks(tricks) {
		return StateFailed
	}
	return StateInProgress
}

// specificWinTasks require winning a trick with a particular card in hand or
// on the table.
var specificWinTasks = []Definition{
	{
		ID:              "specific_win_with5",
		DisplayName:     "Win Using a 5",
		Description:     "a trick using a 5",
		DifficultyFor3:  2,
		DifficultyFor4:  3,
		DifficultyFor5:  4,
		EvaluateMidGame: true,
		Evaluation:      "Current player won a trick and they played a 5 of any colour",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateWinWithNumber(tricks, playerID, 5, false)
		},
	},
	{
		ID:              "specific_win_with3",
		DisplayName:     "Win Using a 3",
		Description:     "a trick using a 3",
		DifficultyFor3:  3,
		DifficultyFor4:  4,
		DifficultyFor5:  5,
		EvaluateMidGame: true,
		Evaluation:      "Current player has won a trick by winning with a 3 of any colour (excluding BLACK)",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateWinWithNumber(tricks, playerID, 3, true)
		},
	},
	{
		ID:              "specific_win_with2",
		DisplayName:     "Win Using a 2",
		Description:     "a trick USING a 2",
		DifficultyFor3:  3,
		DifficultyFor4:  4,
		DifficultyFor5:  5,
		EvaluateMidGame: true,
		Evaluation:      "Current player has won a trick by winning with a 2 of any colour (except BLACK)",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateWinWithNumber(tricks, playerID, 2, true)
		},
	},
	{
		ID:              "specific_win_with6",
		DisplayName:     "Win Using a 6",
		Description:     "a trick using a 6",
		DifficultyFor3:  2,
		DifficultyFor4:  3,
		DifficultyFor5:  3,
		EvaluateMidGame: true,
		Evaluation:      "Current player has won a trick by winning with a 6 of any colour",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateWinWithNumber(tricks, playerID, 6, false)
		},
	},
	{
		ID:              "specific_green9_with_submarine",
		DisplayName:     "Green 9 with Submarine",
		Description:     "the green 9 with a submarine",
		DifficultyFor3:  3,
		DifficultyFor4:  3,
		DifficultyFor5:  3,
		EvaluateMidGame: true,
		Evaluation:      "Current player has won the green 9 in a trick and they played a BLACK card",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateSubmarineWithCard(tricks, playerID, domain.Card{Color: domain.ColorGreen, Number: 9})
		},
	},
	{
		ID:              "specific_pink7_with_submarine",
		DisplayName:     "Pink 7 with Submarine",
		Description:     "the pink 7 WITH A submarine",
		DifficultyFor3:  3,
		DifficultyFor4:  3,
		DifficultyFor5:  3,
		EvaluateMidGame: true,
		Evaluation:      "Current player won a trick while playing a BLACK card and that trick contained the PINK 7",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateSubmarineWithCard(tricks, playerID, domain.Card{Color: domain.ColorPink, Number: 7})
		},
	},
	{
		ID:              "specific_5_with_7",
		DisplayName:     "A 5 with a 7",
		Description:     "a 5 WITH a 7",
		DifficultyFor3:  1,
		DifficultyFor4:  2,
		DifficultyFor5:  2,
		EvaluateMidGame: true,
		Evaluation:      "Current player has won a trick that contains a 5 and they played a 7",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluatePlayerNumberAndTrickContains(tricks, playerID, 7, 5, false, false)
		},
	},
	{
		ID:              "specific_two_sixes",
		DisplayName:     "A 6 with Another 6",
		Description:     "a 6 with another 6",
		DifficultyFor3:  2,
		DifficultyFor4:  3,
		DifficultyFor5:  4,
		EvaluateMidGame: true,
		Evaluation:      "Current player has won a trick while playing a 6, and that trick contains a DIFFERENT 6",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluatePlayerNumberAndTrickContains(tricks, playerID, 6, 6, false, true)
		},
	},
	{
		ID:              "specific_8_with_4",
		DisplayName:     "An 8 with a 4",
		Description:     "an 8 with a 4",
		DifficultyFor3:  3,
		DifficultyFor4:  4,
		DifficultyFor5:  5,
		EvaluateMidGame: true,
		Evaluation:      "Current player has won a trick that contains a 8 and they played a 4 of any colour (excluding BLACK)",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluatePlayerNumberAndTrickContains(tricks, playerID, 4, 8, true, false)
		},
	},
}
