package tasks

import "thecrew/internal/domain"

// collectTasks require specific named cards to end up in the owner's tricks.
var collectTasks = []Definition{
	{
		ID:              "simple_pink5_yellow6",
		DisplayName:     "Pink 5 & Yellow 6",
		Description:     "pink 5 AND yellow 6",
		DifficultyFor3:  2,
		DifficultyFor4:  2,
		DifficultyFor5:  3,
		EvaluateMidGame: true,
		Evaluation:      "Current player has won tricks that contain the PINK 5 and YELLOW 6",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateCollectCards(tricks, playerID, []domain.Card{
				{Color: domain.ColorPink, Number: 5},
				{Color: domain.ColorYellow, Number: 6},
			})
		},
	},
	{
		ID:              "simple_yellow9_blue7",
		DisplayName:     "Yellow 9 & Blue 7",
		Description:     "yellow 9 AND blue 7",
		DifficultyFor3:  2,
		DifficultyFor4:  3,
		DifficultyFor5:  3,
		EvaluateMidGame: true,
		Evaluation:      "Current player has won tricks that contain the YELLOW 9 and BLUE 7",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateCollectCards(tricks, playerID, []domain.Card{
				{Color: domain.ColorYellow, Number: 9},
				{Color: domain.ColorBlue, Number: 7},
			})
		},
	},
	{
		ID:              "simple_pink1_green7",
		DisplayName:     "Pink 1 & Green 7",
		Description:     "the pink 1 AND the green 7",
		DifficultyFor3:  2,
		DifficultyFor4:  2,
		DifficultyFor5:  2,
		EvaluateMidGame: true,
		Evaluation:      "Current player has won the PINK 1 and the GREEN 7 in any of the tricks that they won",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateCollectCards(tricks, playerID, []domain.Card{
				{Color: domain.ColorPink, Number: 1},
				{Color: domain.ColorGreen, Number: 7},
			})
		},
	},
	{
		ID:              "simple_green5_blue8",
		DisplayName:     "Green 5 & Blue 8",
		Description:     "the green 5 AND the blue 8",
		DifficultyFor3:  2,
		DifficultyFor4:  2,
		DifficultyFor5:  3,
		EvaluateMidGame: true,
		Evaluation:      "Current player has won the GREEN 5 and the BLUE 8 in any of the tricks that they won",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateCollectCards(tricks, playerID, []domain.Card{
				{Color: domain.ColorGreen, Number: 5},
				{Color: domain.ColorBlue, Number: 8},
			})
		},
	},
	{
		ID:              "simple_blue1_blue2_blue3",
		DisplayName:     "Blue 1, 2 & 3",
		Description:     "the blue 1 AND the blue 2 AND the blue 3",
		DifficultyFor3:  2,
		DifficultyFor4:  3,
		DifficultyFor5:  3,
		EvaluateMidGame: true,
		Evaluation:      "Current player has won the BLUE 1, the BLUE 2 and the BLUE 3 in any of the tricks that they won",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateCollectCards(tricks, playerID, []domain.Card{
				{Color: domain.ColorBlue, Number: 1},
				{Color: domain.ColorBlue, Number: 2},
				{Color: domain.ColorBlue, Number: 3},
			})
		},
	},
	{
		ID:              "simple_green3_yellow4_yellow5",
		DisplayName:     "Green 3, Yellow 4 and Yellow 5",
		Description:     "the green 3 and the yellow 4 and the yellow 5",
		DifficultyFor3:  3,
		DifficultyFor4:  4,
		DifficultyFor5:  4,
		EvaluateMidGame: true,
		Evaluation:      "Current player has won the GREEN 3, YELLOW 4 and the YELLOW 5 in any of the tricks that they won",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateCollectCards(tricks, playerID, []domain.Card{
				{Color: domain.ColorGreen, Number: 3},
				{Color: domain.ColorYellow, Number: 4},
				{Color: domain.ColorYellow, Number: 5},
			})
		},
	},
	{
		ID:              "simple_blue6_yellow7",
		DisplayName:     "Blue 6 & Yellow 7",
		Description:     "the blue 6 AND the yellow 7",
		DifficultyFor3:  2,
		DifficultyFor4:  2,
		DifficultyFor5:  3,
		EvaluateMidGame: true,
		Evaluation:      "Current player has won the BLUE 6 and YELLOW 7 in any of the tricks that they won",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateCollectCards(tricks, playerID, []domain.Card{
				{Color: domain.ColorBlue, Number: 6},
				{Color: domain.ColorYellow, Number: 7},
			})
		},
	},
	{
		ID:              "simple_pink8_blue5",
		DisplayName:     "Pink 8 & Blue 5",
		Description:     "the pink 8 AND the blue 5",
		DifficultyFor3:  2,
		DifficultyFor4:  2,
		DifficultyFor5:  3,
		EvaluateMidGame: true,
		Evaluation:      "Current player has won the PINK 8 and the BLUE 5 in any of the tricks that they won",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateCollectCards(tricks, playerID, []domain.Card{
				{Color: domain.ColorPink, Number: 8},
				{Color: domain.ColorBlue, Number: 5},
			})
		},
	},
	{
		ID:              "simple_pink9_yellow8",
		DisplayName:     "Pink 9 & Yellow 8",
		Description:     "the pink 9 AND the yellow 8",
		DifficultyFor3:  2,
		DifficultyFor4:  3,
		DifficultyFor5:  3,
		EvaluateMidGame: true,
		Evaluation:      "Current player has won the PINK 9 and the YELLOW 8 in any of the tricks that they won",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateCollectCards(tricks, playerID, []domain.Card{
				{Color: domain.ColorPink, Number: 9},
				{Color: domain.ColorYellow, Number: 8},
			})
		},
	},
	{
		ID:              "simple_blue4",
		DisplayName:     "Blue 4",
		Description:     "the blue 4",
		DifficultyFor3:  1,
		DifficultyFor4:  1,
		DifficultyFor5:  1,
		EvaluateMidGame: true,
		Evaluation:      "Current player has won the BLUE 4 in any of the tricks that they won",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateCollectCards(tricks, playerID, []domain.Card{
				{Color: domain.ColorBlue, Number: 4},
			})
		},
	},
	{
		ID:              "simple_black3",
		DisplayName:     "3 Submarine",
		Description:     "the 3 submarine",
		DifficultyFor3:  1,
		DifficultyFor4:  1,
		DifficultyFor5:  1,
		EvaluateMidGame: true,
		Evaluation:      "Current player has won the BLACK 3 in any of their tricks",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateCollectCards(tricks, playerID, []domain.Card{
				{Color: domain.ColorBlack, Number: 3},
			})
		},
	},
	{
		ID:              "simple_yellow1",
		DisplayName:     "Yellow 1",
		Description:     "the yellow 1",
		DifficultyFor3:  1,
		DifficultyFor4:  1,
		DifficultyFor5:  1,
		EvaluateMidGame: true,
		Evaluation:      "Current player has won the YELLOW 1 in any of the tricks that they won",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateCollectCards(tricks, playerID, []domain.Card{
				{Color: domain.ColorYellow, Number: 1},
			})
		},
	},
	{
		ID:              "simple_green6",
		DisplayName:     "Green 6",
		Description:     "the green 6",
		DifficultyFor3:  1,
		DifficultyFor4:  1,
		DifficultyFor5:  1,
		EvaluateMidGame: true,
		Evaluation:      "Current player has won the GREEN 6 in any of the tricks that they won",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateCollectCards(tricks, playerID, []domain.Card{
				{Color: domain.ColorGreen, Number: 6},
			})
		},
	},
	{
		ID:              "simple_pink3",
		DisplayName:     "Pink 3",
		Description:     "the pink 3",
		DifficultyFor3:  1,
		DifficultyFor4:  1,
		DifficultyFor5:  1,
		EvaluateMidGame: true,
		Evaluation:      "Current player has won the PINK 3 in any of the tricks that they won",
		Evaluate: func(tricks []domain.Trick, playerID string) State {
			return evaluateCollectCards(tricks, playerID, []domain.Card{
				{Color: domain.ColorPink, Number: 3},
			})
		},
	},
}
