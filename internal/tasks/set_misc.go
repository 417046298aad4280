package tasks

import "thecrew/internal/domain"

func trickSumNoSubmarine(trick domain.Trick) (int, bool) {
	sum := 0
	for _, card := range trick.PlayedCards {
		if card.Color == domain.ColorBlack {
			return 0, false
		}
		sum += card.Number
	}
	return sum, true
}

// evaluateWonTrickSum looks for a won trick without submarines whose number
// total satisfies the predicate.
func evaluateWonTrickSum(tricks []domain.Trick, playerID string, ok func(sum int) bool) State {
	for _, trick := range tricks {
		if trick.Winner != playerID {
			continue
		}
		if sum, clean := trickSumNoSubmarine(trick); clean && ok(sum) {
			return StateCompleted
		}
	}
	if len(tricks) == expectedTricks(tricks) {
		return StateFailed
	}
	return StateInProgress
}

// evaluateNeverLeadColors fails once the player opens a trick with one of
// the listed colors.
func evaluateNeverLeadColors(tricks []domain.Trick, playerID string, colors ...domain.CardColor) State {
	for _, trick := range tricks {
		if len(trick.PlayerOrder) == 0 || trick.PlayerOrder[0] != playerID {
			continue
		}
		if card, ok := playerCard(trick, playerID); ok {
			for _, color := range colors {
				if card.Color == color {
					return StateFailed
				}
			}
		}
	}
	if len(tricks) == expectedTricks(tricks) {
		return StateCompleted
	}
	return StateInProgress
}

var miscTasks = []Definition{
	{
		ID:             "only_black1",
		DisplayName:    "Only the 1 Submarine",
		Description:    "the 1 submarine and NO OTHER submarine",
		DifficultyFor3: 3,
		DifficultyFor4: 3,
		DifficultyFor5: 3,
		Evaluation:     "Current player has won the BLACK 1 but NO OTHER BLACK CARDS in any of the tricks that they won",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			hasBlack1 := false
			for _, trick := range tricks {
				won := trick.Winner == playerID
				for _, card := range trick.PlayedCards {
					if card.Color != domain.ColorBlack {
						continue
					}
					if card.Number == 1 {
						if !won {
							return StateFailed
						}
						hasBlack1 = true
					} else if won {
						return StateFailed
					}
				}
			}
			if len(tricks) == expectedTricks(tricks) {
				if hasBlack1 {
					return StateCompleted
				}
				return StateFailed
			}
			return StateInProgress
		},
	},
	{
		ID:             "win_even_trick",
		DisplayName:    "Even Number Trick",
		Description:    "a trick that contains ONLY EVEN-numbered cards",
		DifficultyFor3: 2,
		DifficultyFor4: 5,
		DifficultyFor5: 6,
		Evaluation:     "Current player has won a trick where all the cards played were EVEN",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			succeeded := false
			for _, trick := range tricks {
				if trick.Winner != playerID {
					continue
				}
				allEven := true
				for _, card := range trick.PlayedCards {
					if card.Number%2 != 0 {
						allEven = false
						break
					}
				}
				if allEven {
					succeeded = true
				}
			}
			if len(tricks) == expectedTricks(tricks) {
				if succeeded {
					return StateCompleted
				}
				return StateFailed
			}
			return StateInProgress
		},
	},
	{
		ID:             "win_odd_trick",
		DisplayName:    "Odd Number Trick",
		Description:    "a trick that contains ONLY ODD-numbered cards",
		DifficultyFor3: 2,
		DifficultyFor4: 4,
		DifficultyFor5: 5,
		Evaluation:     "Current player has won a trick where all the cards played were ODD",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			succeeded := false
			for _, trick := range tricks {
				if trick.Winner != playerID {
					continue
				}
				allOdd := true
				for _, card := range trick.PlayedCards {
					if card.Number%2 != 1 {
						allOdd = false
						break
					}
				}
				if allOdd {
					succeeded = true
				}
			}
			if len(tricks) == expectedTricks(tricks) {
				if succeeded {
					return StateCompleted
				}
				return StateFailed
			}
			return StateInProgress
		},
	},
	{
		ID:              "win_gt5_trick",
		DisplayName:     "All Above Five",
		Description:     "a trick which the card values are ALL > 5",
		DifficultyFor3:  2,
		DifficultyFor4:  3,
		DifficultyFor5:  4,
		EvaluateMidGame: true,
		Evaluation:      "Current player has won a trick where the numbers of all the cards are bigger than 5",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			for _, trick := range tricks {
				if trick.Winner != playerID {
					continue
				}
				above := true
				for _, card := range trick.PlayedCards {
					if card.Number <= 5 {
						above = false
						break
					}
				}
				if above {
					return StateCompleted
				}
			}
			if len(tricks) == expectedTricks(tricks) {
				return StateFailed
			}
			return StateInProgress
		},
	},
	{
		ID:              "win_gt7_no_sub_trick",
		DisplayName:     "No Sub & >7 Trick",
		Description:     "a trick of which the card values are ALL > 7",
		DifficultyFor3:  2,
		DifficultyFor4:  3,
		DifficultyFor5:  3,
		EvaluateMidGame: true,
		Evaluation:      "Current player won a trick with no black cards, where every number on the card was greater than 7",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			for _, trick := range tricks {
				if trick.Winner != playerID {
					continue
				}
				qualifies := true
				for _, card := range trick.PlayedCards {
					if card.Color == domain.ColorBlack || card.Number <= 7 {
						qualifies = false
						break
					}
				}
				if qualifies {
					return StateCompleted
				}
			}
			if len(tricks) == expectedTricks(tricks) {
				return StateFailed
			}
			return StateInProgress
		},
	},
	{
		ID:              "collect_all_threes",
		DisplayName:     "All the 3s",
		Description:     "ALL the 3s",
		DifficultyFor3:  3,
		DifficultyFor4:  4,
		DifficultyFor5:  5,
		EvaluateMidGame: true,
		Evaluation:      "Current player won all the 3s (excluding BLACK) across all their tricks",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateCollectCards(tricks, playerID, []domain.Card{
				{Color: domain.ColorYellow, Number: 3},
				{Color: domain.ColorGreen, Number: 3},
				{Color: domain.ColorPink, Number: 3},
				{Color: domain.ColorBlue, Number: 3},
			})
		},
	},
	{
		ID:              "collect_all_nines",
		DisplayName:     "All the 9s",
		Description:     "ALL the 9s",
		DifficultyFor3:  4,
		DifficultyFor4:  5,
		DifficultyFor5:  6,
		EvaluateMidGame: true,
		Evaluation:      "Current player won all the 9s across the tricks that they won",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateCollectCards(tricks, playerID, []domain.Card{
				{Color: domain.ColorYellow, Number: 9},
				{Color: domain.ColorGreen, Number: 9},
				{Color: domain.ColorPink, Number: 9},
				{Color: domain.ColorBlue, Number: 9},
			})
		},
	},
	{
		ID:             "never_two_in_row",
		DisplayName:    "Never Two in a Row",
		Description:    "NEVER win TWO tricks in a ROW",
		DifficultyFor3: 3,
		DifficultyFor4: 2,
		DifficultyFor5: 2,
		Evaluation:     "Current player never won two tricks in a row",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			if hasConsecutiveWins(tricks, playerID, 2) {
				return StateFailed
			}
			if len(tricks) == expectedTricks(tricks) {
				return StateCompleted
			}
			return StateInProgress
		},
	},
	{
		ID:             "exact_two_in_row",
		DisplayName:    "Exactly Two in a Row",
		Description:    "EXACTLY 2 tricks AND they will be in a row",
		DifficultyFor3: 3,
		DifficultyFor4: 3,
		DifficultyFor5: 3,
		Evaluation:     "Current player won exactly two tricks in a row AND NO MORE TRICKS",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateExactConsecutiveWins(tricks, playerID, 2)
		},
	},
	{
		ID:             "exact_three_in_row",
		DisplayName:    "Exactly Three in a Row",
		Description:    "EXACTLY three tricks AND they will be in a row",
		DifficultyFor3: 3,
		DifficultyFor4: 3,
		DifficultyFor5: 4,
		Evaluation:     "Current player won exactly three tricks in a row AND NO MORE TRICKS",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateExactConsecutiveWins(tricks, playerID, 3)
		},
	},
	{
		ID:             "avoid_leading_pink_green",
		DisplayName:    "Never Lead Pink or Green",
		Description:    "NOT open a trick with a pink OR a green card",
		DifficultyFor3: 2,
		DifficultyFor4: 1,
		DifficultyFor5: 1,
		Evaluation:     "Current player did not start ANY TRICK THIS GAME with a PINK or GREEN card",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateNeverLeadColors(tricks, playerID, domain.ColorPink, domain.ColorGreen)
		},
	},
	{
		ID:             "avoid_leading_pink_yellow_blue",
		DisplayName:    "Never Lead Pink/Yellow/Blue",
		Description:    "NOT open a trick with a pink OR a yellow OR a blue card",
		DifficultyFor3: 4,
		DifficultyFor4: 3,
		DifficultyFor5: 3,
		Evaluation:     "Current player did not start ANY TRICK THIS GAME with a PINK, YELLOW or BLUE card",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateNeverLeadColors(tricks, playerID, domain.ColorPink, domain.ColorYellow, domain.ColorBlue)
		},
	},
	{
		ID:              "sum_exact_values",
		DisplayName:     "Exact Total Trick",
		Description:     "a trick with a TOTAL value of 21 or 22 or 23",
		DifficultyFor3:  3,
		DifficultyFor4:  3,
		DifficultyFor5:  4,
		EvaluateMidGame: true,
		Evaluation:      "Current player has won a trick where the SUM of the numbers of the cards is exactly 21 (in a three player game), 22 (in a four player game) or 23 (in a five player game)",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			target := map[int]int{3: 21, 4: 22, 5: 23}[numPlayers(tricks)]
			if target == 0 {
				target = 23
			}
			return evaluateWonTrickSum(tricks, playerID, func(sum int) bool { return sum == target })
		},
	},
	{
		ID:              "sum_below_values",
		DisplayName:     "Low Total Trick",
		Description:     "a trick with a TOTAL value < 8 / 12 / 16",
		DifficultyFor3:  3,
		DifficultyFor4:  3,
		DifficultyFor5:  4,
		EvaluateMidGame: true,
		Evaluation:      "Current player has won a trick where the SUM of the numbers of the cards is LESS THAN 8 (in a three player game), 12 (in a four player game) or 16 (in a five player game)",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			limit := map[int]int{3: 8, 4: 12, 5: 16}[numPlayers(tricks)]
			if limit == 0 {
				limit = 16
			}
			return evaluateWonTrickSum(tricks, playerID, func(sum int) bool { return sum < limit })
		},
	},
	{
		ID:              "sum_above_values",
		DisplayName:     "High Total Trick",
		Description:     "a trick with a TOTAL value > 23 / 28 / 31",
		DifficultyFor3:  3,
		DifficultyFor4:  3,
		DifficultyFor5:  4,
		EvaluateMidGame: true,
		Evaluation:      "Current player has won a trick where the SUM of the numbers of the cards is GREATER THAN 23 (in a three player game), 28 (in a four player game) or 31 (in a five player game)",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			limit := map[int]int{3: 23, 4: 28, 5: 31}[numPlayers(tricks)]
			if limit == 0 {
				limit = 31
			}
			return evaluateWonTrickSum(tricks, playerID, func(sum int) bool { return sum > limit })
		},
	},
}
