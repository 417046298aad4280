package tasks

import "thecrew/internal/domain"

// evaluateAtLeastColorCards completes once the player has won `required`
// cards of the color, and fails once the cards still in play cannot close
// the gap.
func evaluateAtLeastColorCards(tricks []domain.Trick, playerID string, color domain.CardColor, required int) State {
	won := tallyWonCards(tricks, playerID).colorCounts[color]
	if won >= required {
		return StateCompleted
	}
	played := tallyPlayedCards(tricks).colorCounts[color]
	remaining := domain.MaxColorNumber - played
	if won+remaining < required {
		return StateFailed
	}
	if len(tricks) == expectedTricks(tricks) {
		return StateFailed
	}
	return StateInProgress
}

// evaluateAtLeastNumberCards is the same over a card number. Each number has
// one copy per color.
func evaluateAtLeastNumberCards(tricks []domain.Trick, playerID string, number, required int) State {
	won := tallyWonCards(tricks, playerID).numberCounts[number]
	if won >= required {
		return StateCompleted
	}
	played := tallyPlayedCards(tricks).numberCounts[number]
	remaining := len(domain.Colors) - played
	if won+remaining < required {
		return StateFailed
	}
	if len(tricks) == expectedTricks(tricks) {
		return StateFailed
	}
	return StateInProgress
}

// evaluateMoreColorThan requires strictly more won cards of `more` than of
// `less` by game end. Fails early once the remaining `more` cards cannot
// overtake.
func evaluateMoreColorThan(tricks []domain.Trick, playerID string, more, less domain.CardColor) State {
	won := tallyWonCards(tricks, playerID)
	played := tallyPlayedCards(tricks)
	remaining := domain.MaxColorNumber - played.colorCounts[more]
	if won.colorCounts[more]+remaining <= won.colorCounts[less] {
		return StateFailed
	}
	if len(tricks) == expectedTricks(tricks) {
		if won.colorCounts[more] > won.colorCounts[less] {
			return StateCompleted
		}
		return StateFailed
	}
	return StateInProgress
}

// evaluateEqualColorsInTrick looks for a single won trick holding as many
// cards of `a` as of `b`, at least one of each.
func evaluateEqualColorsInTrick(tricks []domain.Trick, playerID string, a, b domain.CardColor) State {
	for _, trick := range tricks {
		if trick.Winner != playerID {
			continue
		}
		countA, countB := 0, 0
		for _, card := range trick.PlayedCards {
			switch card.Color {
			case a:
				countA++
			case b:
				countB++
			}
		}
		if countA > 0 && countA == countB {
			return StateCompleted
		}
	}
	if len(tricks) == expectedTricks(tricks) {
		return StateFailed
	}
	return StateInProgress
}

// relativeWinTasks compare won cards against a threshold, another color or
// the cards still in play.
var relativeWinTasks = []Definition{
	{
		ID:              "relative_one_each_color",
		DisplayName:     "One of Each Colour",
		Description:     "AT LEAST one card of EACH COLOUR",
		DifficultyFor3:  2,
		DifficultyFor4:  3,
		DifficultyFor5:  4,
		EvaluateMidGame: true,
		Evaluation:      "Current player has won at least one card of each colour across the tricks that they won",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			won := tallyWonCards(tricks, playerID)
			played := tallyPlayedCards(tricks)
			done := true
			for _, color := range domain.Colors {
				if won.colorCounts[color] > 0 {
					continue
				}
				done = false
				if played.colorCounts[color] == domain.MaxColorNumber {
					return StateFailed
				}
			}
			if done {
				return StateCompleted
			}
			if len(tricks) == expectedTricks(tricks) {
				return StateFailed
			}
			return StateInProgress
		},
	},
	{
		ID:              "relative_two_sevens",
		DisplayName:     "Two 7s",
		Description:     "AT LEAST two 7s",
		DifficultyFor3:  2,
		DifficultyFor4:  2,
		DifficultyFor5:  2,
		EvaluateMidGame: true,
		Evaluation:      "Current player has won at least two 7s across the tricks that they won",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateAtLeastNumberCards(tricks, playerID, 7, 2)
		},
	},
	{
		ID:              "relative_seven_yellow",
		DisplayName:     "Seven Yellow Cards",
		Description:     "AT LEAST seven yellow",
		DifficultyFor3:  3,
		DifficultyFor4:  3,
		DifficultyFor5:  3,
		EvaluateMidGame: true,
		Evaluation:      "Current player has won at least SEVEN YELLOW cards across all their tricks that they won",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateAtLeastColorCards(tricks, playerID, domain.ColorYellow, 7)
		},
	},
	{
		ID:              "relative_five_pink",
		DisplayName:     "Five Pink Cards",
		Description:     "AT LEAST five pink",
		DifficultyFor3:  2,
		DifficultyFor4:  3,
		DifficultyFor5:  3,
		EvaluateMidGame: true,
		Evaluation:      "Current player won at least 5 PINK cards across all of their tricks",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateAtLeastColorCards(tricks, playerID, domain.ColorPink, 5)
		},
	},
	{
		ID:              "relative_three_nines",
		DisplayName:     "Three 9s",
		Description:     "AT LEAST three 9s",
		DifficultyFor3:  3,
		DifficultyFor4:  4,
		DifficultyFor5:  5,
		EvaluateMidGame: true,
		Evaluation:      "Current player was won at least three of the 9s across all their tricks",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateAtLeastNumberCards(tricks, playerID, 9, 3)
		},
	},
	{
		ID:              "relative_three_fives",
		DisplayName:     "Three 5s",
		Description:     "AT LEAST three 5s",
		DifficultyFor3:  3,
		DifficultyFor4:  4,
		DifficultyFor5:  5,
		EvaluateMidGame: true,
		Evaluation:      "Current player has won at least three 5 cards across all of their tricks",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateAtLeastNumberCards(tricks, playerID, 5, 3)
		},
	},
	{
		ID:              "relative_complete_color",
		DisplayName:     "Complete Set of a Colour",
		Description:     "all the cards in at least one of the four colours",
		DifficultyFor3:  3,
		DifficultyFor4:  4,
		DifficultyFor5:  5,
		EvaluateMidGame: true,
		Evaluation:      "Current player has won every number (1-9) of any colour across all their tricks",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			won := tallyWonCards(tricks, playerID)
			played := tallyPlayedCards(tricks)
			feasible := false
			for _, color := range domain.Colors {
				if won.colorCounts[color] == domain.MaxColorNumber {
					return StateCompleted
				}
				// The color is still live if every number not yet won
				// is also not yet played.
				alive := true
				for number := 1; number <= domain.MaxColorNumber; number++ {
					if !won.colorNumbers[color][number] && played.colorNumbers[color][number] {
						alive = false
						break
					}
				}
				if alive {
					feasible = true
				}
			}
			if !feasible {
				return StateFailed
			}
			if len(tricks) == expectedTricks(tricks) {
				return StateFailed
			}
			return StateInProgress
		},
	},
	{
		ID:             "relative_more_pink_than_green",
		DisplayName:    "More Pink Than Green",
		Description:    "MORE pink THAN green cards",
		DifficultyFor3: 1,
		DifficultyFor4: 1,
		DifficultyFor5: 1,
		Evaluation:     "Current player has won more PINK cards than GREEN cards across all the tricks that they won (they are allowed to win 0 green cards)",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateMoreColorThan(tricks, playerID, domain.ColorPink, domain.ColorGreen)
		},
	},
	{
		ID:             "relative_more_yellow_than_blue",
		DisplayName:    "More Yellow Than Blue",
		Description:    "MORE yellow than blue",
		DifficultyFor3: 1,
		DifficultyFor4: 1,
		DifficultyFor5: 1,
		Evaluation:     "Current player has won more YELLOW cards than BLUE cards across all the tricks that they won (they are allowed to win 0 BLUE cards)",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateMoreColorThan(tricks, playerID, domain.ColorYellow, domain.ColorBlue)
		},
	},
	{
		ID:              "relative_equal_pink_blue_trick",
		DisplayName:     "Equal Pink & Blue Trick",
		Description:     "as MANY pink as blue cards in one trick",
		DifficultyFor3:  2,
		DifficultyFor4:  3,
		DifficultyFor5:  3,
		EvaluateMidGame: true,
		Evaluation:      "Current player has won a trick that contains the same number of PINK as BLUE cards in the trick (but must have at least one of each)",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateEqualColorsInTrick(tricks, playerID, domain.ColorPink, domain.ColorBlue)
		},
	},
	{
		ID:              "relative_equal_green_yellow_trick",
		DisplayName:     "Equal Green & Yellow Trick",
		Description:     "AS MANY green as yellow cards in one trick",
		DifficultyFor3:  2,
		DifficultyFor4:  3,
		DifficultyFor5:  3,
		EvaluateMidGame: true,
		Evaluation:      "Current player has won a trick that contains the same number of GREEN as YELLOW cards in the trick (but must have at least one of each)",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateEqualColorsInTrick(tricks, playerID, domain.ColorGreen, domain.ColorYellow)
		},
	},
	{
		ID:             "relative_equal_pink_yellow_total",
		DisplayName:    "Equal Pink & Yellow",
		Description:    "as MANY pink as yellow cards",
		DifficultyFor3: 4,
		DifficultyFor4: 4,
		DifficultyFor5: 4,
		Evaluation:     "Current player won the same number of PINK and YELLOW cards all their tricks (they must win at least 1 of each)",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			won := tallyWonCards(tricks, playerID)
			played := tallyPlayedCards(tricks)
			pink, yellow := won.colorCounts[domain.ColorPink], won.colorCounts[domain.ColorYellow]

			gap := pink - yellow
			if gap < 0 {
				gap = -gap
			}
			remainingPink := domain.MaxColorNumber - played.colorCounts[domain.ColorPink]
			remainingYellow := domain.MaxColorNumber - played.colorCounts[domain.ColorYellow]
			slack := remainingPink
			if remainingYellow > slack {
				slack = remainingYellow
			}
			if gap > slack {
				return StateFailed
			}

			if len(tricks) == expectedTricks(tricks) {
				if pink == yellow && pink > 0 {
					return StateCompleted
				}
				return StateFailed
			}
			return StateInProgress
		},
	},
}
