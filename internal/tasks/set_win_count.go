package tasks

import "thecrew/internal/domain"

// evaluateExactWins requires the player to finish with exactly `required`
// trick wins. Overshooting fails immediately.
func evaluateExactWins(tricks []domain.Trick, playerID string, required int) State {
	expected := expectedTricks(tricks)
	wins := countWins(tricks, playerID)
	if wins > required {
		return StateFailed
	}
	if len(tricks) == expected {
		if wins == required {
			return StateCompleted
		}
		return StateFailed
	}
	return StateInProgress
}

// evaluateNoneOfFirst requires the player to lose the first `count` tricks.
func evaluateNoneOfFirst(tricks []domain.Trick, playerID string, count int) State {
	for i, trick := range tricks {
		if i >= count {
			break
		}
		if trick.Winner == playerID {
			return StateFailed
		}
	}
	if len(tricks) >= count {
		return StateCompleted
	}
	return StateInProgress
}

// evaluateAllOfFirst requires the player to win the first `count` tricks.
func evaluateAllOfFirst(tricks []domain.Trick, playerID string, count int) State {
	for i, trick := range tricks {
		if i >= count {
			break
		}
		if trick.Winner != playerID {
			return StateFailed
		}
	}
	if len(tricks) >= count {
		return StateCompleted
	}
	return StateInProgress
}

// winCountTasks constrain how many tricks the owner wins, or which ones.
var winCountTasks = []Definition{
	{
		ID:             "count_zero_tricks",
		DisplayName:    "Win No Tricks",
		Description:    "zero tricks",
		DifficultyFor3: 4,
		DifficultyFor4: 3,
		DifficultyFor5: 3,
		Evaluation:     "Current player didn't win any tricks",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateExactWins(tricks, playerID, 0)
		},
	},
	{
		ID:              "count_two_in_row",
		DisplayName:     "Two Tricks in a Row",
		Description:     "two tricks in a row",
		DifficultyFor3:  1,
		DifficultyFor4:  1,
		DifficultyFor5:  1,
		EvaluateMidGame: true,
		Evaluation:      "Current player won two tricks in a row",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			if hasConsecutiveWins(tricks, playerID, 2) {
				return StateCompleted
			}
			if len(tricks) == expectedTricks(tricks) {
				return StateFailed
			}
			return StateInProgress
		},
	},
	{
		ID:              "count_three_in_row",
		DisplayName:     "Three Tricks in a Row",
		Description:     "three tricks in a row",
		DifficultyFor3:  2,
		DifficultyFor4:  3,
		DifficultyFor5:  4,
		EvaluateMidGame: true,
		Evaluation:      "Current player has won three tricks in a row",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			if hasConsecutiveWins(tricks, playerID, 3) {
				return StateCompleted
			}
			if len(tricks) == expectedTricks(tricks) {
				return StateFailed
			}
			return StateInProgress
		},
	},
	{
		ID:              "count_first_trick",
		DisplayName:     "Win the First Trick",
		Description:     "the FIRST trick",
		DifficultyFor3:  1,
		DifficultyFor4:  1,
		DifficultyFor5:  1,
		EvaluateMidGame: true,
		Evaluation:      "Current player won the first trick of the game",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateAllOfFirst(tricks, playerID, 1)
		},
	},
	{
		ID:              "count_first_two_tricks",
		DisplayName:     "Win First Two Tricks",
		Description:     "the FIRST two tricks",
		DifficultyFor3:  1,
		DifficultyFor4:  1,
		DifficultyFor5:  2,
		EvaluateMidGame: true,
		Evaluation:      "Current player won the first two tricks of the game",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateAllOfFirst(tricks, playerID, 2)
		},
	},
	{
		ID:              "count_first_three_tricks",
		DisplayName:     "Win First Three Tricks",
		Description:     "the FIRST 3 tricks",
		DifficultyFor3:  2,
		DifficultyFor4:  3,
		DifficultyFor5:  4,
		EvaluateMidGame: true,
		Evaluation:      "Current player won the first 3 tricks of the game",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateAllOfFirst(tricks, playerID, 3)
		},
	},
	{
		ID:             "count_only_first_trick",
		DisplayName:    "Only the First Trick",
		Description:    "ONLY the FIRST trick",
		DifficultyFor3: 4,
		DifficultyFor4: 3,
		DifficultyFor5: 3,
		Evaluation:     "Current player won the first trick and NO OTHER TRICKS",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			for i, trick := range tricks {
				if i == 0 {
					if trick.Winner != playerID {
						return StateFailed
					}
					continue
				}
				if trick.Winner == playerID {
					return StateFailed
				}
			}
			if len(tricks) == expectedTricks(tricks) {
				return StateCompleted
			}
			return StateInProgress
		},
	},
	{
		ID:              "count_only_last_trick",
		DisplayName:     "Only the Last Trick",
		Description:     "ONLY the LAST trick",
		DifficultyFor3:  4,
		DifficultyFor4:  4,
		DifficultyFor5:  4,
		EvaluateMidGame: true,
		Evaluation:      "Current player only won a single trick and it was the LAST trick of the game",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			expected := expectedTricks(tricks)
			// Any win before the most recent trick can no longer be the
			// last trick of the game.
			for i, trick := range tricks {
				if trick.Winner == playerID && i < len(tricks)-1 {
					return StateFailed
				}
			}
			if len(tricks) == expected {
				if tricks[len(tricks)-1].Winner == playerID {
					return StateCompleted
				}
				return StateFailed
			}
			return StateInProgress
		},
	},
	{
		ID:              "count_last_trick",
		DisplayName:     "Win the Last Trick",
		Description:     "the LAST trick",
		DifficultyFor3:  2,
		DifficultyFor4:  3,
		DifficultyFor5:  3,
		EvaluateMidGame: true,
		Evaluation:      "Current player won the last trick of the game",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			if len(tricks) == expectedTricks(tricks) && len(tricks) > 0 {
				if tricks[len(tricks)-1].Winner == playerID {
					return StateCompleted
				}
				return StateFailed
			}
			return StateInProgress
		},
	},
	{
		ID:              "count_first_and_last_trick",
		DisplayName:     "Win First and Last Trick",
		Description:     "the FIRST and LAST trick",
		DifficultyFor3:  3,
		DifficultyFor4:  4,
		DifficultyFor5:  4,
		EvaluateMidGame: true,
		Evaluation:      "Current player won the first and the last trick of the game",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			if len(tricks) > 0 && tricks[0].Winner != playerID {
				return StateFailed
			}
			if len(tricks) == expectedTricks(tricks) && len(tricks) > 0 {
				if tricks[len(tricks)-1].Winner == playerID {
					return StateCompleted
				}
				return StateFailed
			}
			return StateInProgress
		},
	},
	{
		ID:              "count_none_first_three",
		DisplayName:     "None of First Three Tricks",
		Description:     "NONE of the first 3 tricks",
		DifficultyFor3:  1,
		DifficultyFor4:  2,
		DifficultyFor5:  2,
		EvaluateMidGame: true,
		Evaluation:      "Current player didn't win any of the first 3 tricks",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateNoneOfFirst(tricks, playerID, 3)
		},
	},
	{
		ID:              "count_none_first_four",
		DisplayName:     "None of First Four Tricks",
		Description:     "NONE of the first 4 tricks",
		DifficultyFor3:  1,
		DifficultyFor4:  2,
		DifficultyFor5:  3,
		EvaluateMidGame: true,
		Evaluation:      "Current player didn't win any of the first 4 tricks",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateNoneOfFirst(tricks, playerID, 4)
		},
	},
	{
		ID:              "count_none_first_five",
		DisplayName:     "None of First Five Tricks",
		Description:     "NONE of the first five tricks",
		DifficultyFor3:  2,
		DifficultyFor4:  3,
		DifficultyFor5:  3,
		EvaluateMidGame: true,
		Evaluation:      "Current player didn't win any of the first 5 tricks",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateNoneOfFirst(tricks, playerID, 5)
		},
	},
	{
		ID:             "count_exactly_one",
		DisplayName:    "Exactly One Trick",
		Description:    "EXACTLY one trick",
		DifficultyFor3: 3,
		DifficultyFor4: 2,
		DifficultyFor5: 2,
		Evaluation:     "Current planer won exactly one trick",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateExactWins(tricks, playerID, 1)
		},
	},
	{
		ID:             "count_exactly_four",
		DisplayName:    "Exactly Four Tricks",
		Description:    "EXACTLY four tricks",
		DifficultyFor3: 2,
		DifficultyFor4: 3,
		DifficultyFor5: 5,
		Evaluation:     "Current planer won exactly four tricks",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateExactWins(tricks, playerID, 4)
		},
	},
	{
		ID:             "count_exactly_two",
		DisplayName:    "Exactly Two Tricks",
		Description:    "EXACTLY two tricks",
		DifficultyFor3: 2,
		DifficultyFor4: 2,
		DifficultyFor5: 2,
		Evaluation:     "Current planer won exactly two tricks",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateExactWins(tricks, playerID, 2)
		},
	},
	{
		ID:             "count_more_than_anyone",
		DisplayName:    "More Tricks Than Anyone",
		Description:    "MORE tricks than ANYONE else",
		DifficultyFor3: 2,
		DifficultyFor4: 3,
		DifficultyFor5: 3,
		Evaluation:     "Current player has won MORE tricks than any other player",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			if len(tricks) != expectedTricks(tricks) || len(tricks) == 0 {
				return StateInProgress
			}
			counts := make(map[string]int)
			for _, trick := range tricks {
				counts[trick.Winner]++
			}
			for id, count := range counts {
				if id != playerID && counts[playerID] <= count {
					return StateFailed
				}
			}
			return StateCompleted
		},
	},
	{
		ID:             "count_more_than_combined",
		DisplayName:    "More Than Everyone Combined",
		Description:    "MORE tricks than everyone else combined",
		DifficultyFor3: 3,
		DifficultyFor4: 4,
		DifficultyFor5: 5,
		Evaluation:     "Current player has won more tricks than all other players combined",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			expected := expectedTricks(tricks)
			if len(tricks) != expected {
				return StateInProgress
			}
			mine := countWins(tricks, playerID)
			if mine > expected-mine {
				return StateCompleted
			}
			return StateFailed
		},
	},
	{
		ID:             "count_fewer_than_anyone",
		DisplayName:    "Fewer Tricks Than Anyone",
		Description:    "FEWER tricks than ANYONE else",
		DifficultyFor3: 2,
		DifficultyFor4: 2,
		DifficultyFor5: 3,
		Evaluation:     "Current player won less tricks than any other player",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			if len(tricks) != expectedTricks(tricks) || len(tricks) == 0 {
				return StateInProgress
			}
			counts := make(map[string]int)
			for _, trick := range tricks {
				counts[trick.Winner]++
			}
			for id, count := range counts {
				if id != playerID && counts[playerID] >= count {
					return StateFailed
				}
			}
			return StateCompleted
		},
	},
	{
		ID:              "count_green2_final_trick",
		DisplayName:     "Green 2 in Final Trick",
		Description:     "the green 2 in the FINAL trick of the game",
		DifficultyFor3:  3,
		DifficultyFor4:  4,
		DifficultyFor5:  5,
		EvaluateMidGame: true,
		Evaluation:      "Current player won the last trick and it contained the GREEN 2",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			green2 := domain.Card{Color: domain.ColorGreen, Number: 2}
			expected := expectedTricks(tricks)
			for i, trick := range tricks {
				if domain.ContainsCard(trick.PlayedCards, green2) && i < expected-1 {
					return StateFailed
				}
			}
			if len(tricks) == expected && len(tricks) > 0 {
				last := tricks[len(tricks)-1]
				if last.Winner == playerID && domain.ContainsCard(last.PlayedCards, green2) {
					return StateCompleted
				}
				return StateFailed
			}
			return StateInProgress
		},
	},
}
