package domain

import "testing"

func TestResolveTrick(t *testing.T) {
	tests := []struct {
		name  string
		cards []Card
		order []string
		want  string
	}{
		{
			name: "HighestLeadColorWins",
			cards: []Card{
				{Color: ColorBlue, Number: 4},
				{Color: ColorBlue, Number: 9},
				{Color: ColorBlue, Number: 2},
			},
			order: []string{"a", "b", "c"},
			want:  "b",
		},
		{
			name: "OffColorNeverWins",
			cards: []Card{
				{Color: ColorPink, Number: 2},
				{Color: ColorYellow, Number: 9},
				{Color: ColorPink, Number: 5},
			},
			order: []string{"a", "b", "c"},
			want:  "c",
		},
		{
			name: "BlackBeatsAnyColor",
			cards: []Card{
				{Color: ColorGreen, Number: 9},
				{Color: ColorBlack, Number: 1},
				{Color: ColorGreen, Number: 8},
			},
			order: []string{"a", "b", "c"},
			want:  "b",
		},
		{
			name: "HighestBlackWins",
			cards: []Card{
				{Color: ColorBlack, Number: 2},
				{Color: ColorYellow, Number: 9},
				{Color: ColorBlack, Number: 4},
			},
			order: []string{"a", "b", "c"},
			want:  "c",
		},
		{
			name: "WorkedFourPlayerExample",
			cards: []Card{
				{Color: ColorBlue, Number: 4},
				{Color: ColorBlue, Number: 9},
				{Color: ColorYellow, Number: 1},
				{Color: ColorBlue, Number: 6},
			},
			order: []string{"p1", "p2", "p3", "p4"},
			want:  "p2",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			trick := Trick{PlayedCards: test.cards, PlayerOrder: test.order}
			if got := ResolveTrick(trick); got != test.want {
				t.Fatalf("ResolveTrick() = %q, want %q", got, test.want)
			}
		})
	}
}

func TestCanFollow(t *testing.T) {
	hand := []Card{
		{Color: ColorBlue, Number: 3},
		{Color: ColorGreen, Number: 5},
		{Color: ColorBlack, Number: 1},
	}

	tests := []struct {
		name string
		card Card
		lead CardColor
		want bool
	}{
		{name: "FollowsLead", card: Card{Color: ColorBlue, Number: 3}, lead: ColorBlue, want: true},
		{name: "RenegWithLeadInHand", card: Card{Color: ColorGreen, Number: 5}, lead: ColorBlue, want: false},
		{name: "BlackWithLeadInHand", card: Card{Color: ColorBlack, Number: 1}, lead: ColorBlue, want: false},
		{name: "OffColorWhenVoid", card: Card{Color: ColorGreen, Number: 5}, lead: ColorPink, want: true},
		{name: "BlackWhenVoid", card: Card{Color: ColorBlack, Number: 1}, lead: ColorYellow, want: true},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if got := CanFollow(hand, test.card, test.lead); got != test.want {
				t.Fatalf("CanFollow() = %t, want %t", got, test.want)
			}
		})
	}
}
