package tasks

import "thecrew/internal/domain"

// avoidTasks forbid certain cards in the owner's won tricks. None of them
// can complete before the final trick.
var avoidTasks = []Definition{
	{
		ID:             "avoid_pink_and_blue",
		DisplayName:    "No Pink or Blue",
		Description:    "no pink AND blue",
		DifficultyFor3: 3,
		DifficultyFor4: 3,
		DifficultyFor5: 3,
		Evaluation:     "Current player has not won a single PINK or BLUE in any of the tricks that they won",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateNoCards(tricks, playerID, func(c domain.Card) bool {
				return c.Color == domain.ColorPink || c.Color == domain.ColorBlue
			})
		},
	},
	{
		ID:             "limit_one_pink_one_green",
		DisplayName:    "One Pink & One Green",
		Description:    "EXACTLY one pink AND one green",
		DifficultyFor3: 4,
		DifficultyFor4: 4,
		DifficultyFor5: 4,
		Evaluation:     "Current player has only won a single PINK and single GREEN card across all their tricks",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateExactColorCount(tricks, playerID, map[domain.CardColor]int{
				domain.ColorPink:  1,
				domain.ColorGreen: 1,
			})
		},
	},
	{
		ID:             "avoid_yellow_and_green",
		DisplayName:    "No Yellow or Green",
		Description:    "no yellow cards and no green cards",
		DifficultyFor3: 3,
		DifficultyFor4: 3,
		DifficultyFor5: 3,
		Evaluation:     "Current player has not won a single YELLOW or GREEN in any of the tricks that they won",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateNoCards(tricks, playerID, func(c domain.Card) bool {
				return c.Color == domain.ColorYellow || c.Color == domain.ColorGreen
			})
		},
	},
	{
		ID:             "avoid_yellow",
		DisplayName:    "No Yellow Cards",
		Description:    "no yellow cards",
		DifficultyFor3: 2,
		DifficultyFor4: 2,
		DifficultyFor5: 2,
		Evaluation:     "Current player has not won a single YELLOW in any of the tricks that they won",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateNoCards(tricks, playerID, func(c domain.Card) bool {
				return c.Color == domain.ColorYellow
			})
		},
	},
	{
		ID:             "avoid_pink",
		DisplayName:    "No Pink Cards",
		Description:    "no pink",
		DifficultyFor3: 2,
		DifficultyFor4: 2,
		DifficultyFor5: 2,
		Evaluation:     "Current player has not won a single PINK in any of the tricks that they won",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateNoCards(tricks, playerID, func(c domain.Card) bool {
				return c.Color == domain.ColorPink
			})
		},
	},
	{
		ID:             "avoid_green",
		DisplayName:    "No Green Cards",
		Description:    "no green",
		DifficultyFor3: 2,
		DifficultyFor4: 2,
		DifficultyFor5: 2,
		Evaluation:     "Current player has not won a single GREEN in any of the tricks that they won",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateNoCards(tricks, playerID, func(c domain.Card) bool {
				return c.Color == domain.ColorGreen
			})
		},
	},
	{
		ID:             "avoid_submarines",
		DisplayName:    "No Submarines",
		Description:    "no submarines",
		DifficultyFor3: 1,
		DifficultyFor4: 1,
		DifficultyFor5: 1,
		Evaluation:     "Current player has not won a single a BLACK in any of the trick that they have won",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateNoCards(tricks, playerID, func(c domain.Card) bool {
				return c.Color == domain.ColorBlack
			})
		},
	},
	{
		ID:             "avoid_fives",
		DisplayName:    "No 5s",
		Description:    "NO 5s",
		DifficultyFor3: 1,
		DifficultyFor4: 2,
		DifficultyFor5: 2,
		Evaluation:     "Current player didn't win a trick that contained any color 5",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateNoCards(tricks, playerID, func(c domain.Card) bool {
				return c.Number == 5
			})
		},
	},
	{
		ID:             "avoid_ones",
		DisplayName:    "No 1s",
		Description:    "no 1s",
		DifficultyFor3: 2,
		DifficultyFor4: 2,
		DifficultyFor5: 2,
		Evaluation:     "Current player has not won a single 1 in any of the tricks that they won (excluding BLACK)",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateNoCards(tricks, playerID, func(c domain.Card) bool {
				return c.Number == 1 && c.Color != domain.ColorBlack
			})
		},
	},
	{
		ID:             "avoid_eights_and_nines",
		DisplayName:    "No 8s or 9s",
		Description:    "no 8s AND no 9s",
		DifficultyFor3: 3,
		DifficultyFor4: 3,
		DifficultyFor5: 2,
		Evaluation:     "Current player has not won a single 8 or 9 in any of the tricks that they won",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateNoCards(tricks, playerID, func(c domain.Card) bool {
				return c.Number == 8 || c.Number == 9
			})
		},
	},
	{
		ID:             "avoid_nines",
		DisplayName:    "No 9s",
		Description:    "no 9s",
		DifficultyFor3: 1,
		DifficultyFor4: 1,
		DifficultyFor5: 1,
		Evaluation:     "Current player has not won a single 9 in any of the tricks that they won",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateNoCards(tricks, playerID, func(c domain.Card) bool {
				return c.Number == 9
			})
		},
	},
	{
		ID:             "avoid_one_two_three",
		DisplayName:    "No 1s, 2s or 3s",
		Description:    "no 1s OR 2s OR 3s",
		DifficultyFor3: 3,
		DifficultyFor4: 3,
		DifficultyFor5: 3,
		Evaluation:     "Current player has not won a single 1, 2 or 3 in any of the tricks that they won (excluding BLACK)",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateNoCards(tricks, playerID, func(c domain.Card) bool {
				return (c.Number == 1 || c.Number == 2 || c.Number == 3) && c.Color != domain.ColorBlack
			})
		},
	},
}
