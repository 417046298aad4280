package integration

import (
	"math/rand"
	"testing"

	"thecrew/internal/app"
	"thecrew/internal/domain"
)

// crew drives a full game through the app service the way the match handler
// does, without a Nakama server in the loop.
type crew struct {
	svc    *app.Service
	game   *domain.Game
	events []app.Event
}

func newCrew(t *testing.T, seed int64, playerIDs ...string) *crew {
	t.Helper()
	c := &crew{
		svc:  app.NewService(rand.New(rand.NewSource(seed))),
		game: domain.NewGame(),
	}
	for _, id := range playerIDs {
		events, err := c.svc.Join(c.game, id, id)
		c.record(t, events, err)
	}
	return c
}

func (c *crew) record(t *testing.T, events []app.Event, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	c.events = append(c.events, events...)
}

func (c *crew) start(t *testing.T, setup app.GameSetup) {
	t.Helper()
	events, err := c.svc.StartGame(c.game, c.game.PlayerOrder[0], setup)
	c.record(t, events, err)
}

// assignAllTasks gives every objective to the commander and closes setup.
func (c *crew) assignAllTasks(t *testing.T) {
	t.Helper()
	owner := c.game.Commander
	for _, task := range c.game.Tasks {
		events, err := c.svc.TakeTask(c.game, owner, task)
		c.record(t, events, err)
	}
	for _, task := range c.game.ExpansionTasks {
		events, err := c.svc.TakeExpansionTask(c.game, owner, task.DefID)
		c.record(t, events, err)
	}
	events, err := c.svc.FinishTaskAllocation(c.game, owner)
	c.record(t, events, err)
}

// chooseCard picks a legal card for the current player: follow the lead color
// when possible, otherwise discard the first card in hand.
func (c *crew) chooseCard(playerID string) domain.Card {
	hand := c.game.Players[playerID].Hand
	if len(c.game.CurrentTrick.PlayedCards) == 0 {
		return hand[0]
	}
	lead := c.game.CurrentTrick.PlayedCards[0].Color
	for _, card := range hand {
		if card.Color == lead {
			return card
		}
	}
	return hand[0]
}

// playTrick plays one full trick and acknowledges it, returning the winner.
func (c *crew) playTrick(t *testing.T) string {
	t.Helper()
	for range c.game.PlayerOrder {
		playerID := c.game.CurrentPlayer
		events, err := c.svc.PlayCard(c.game, playerID, c.chooseCard(playerID))
		c.record(t, events, err)
	}
	if c.game.Stage != domain.StageTrickEnd {
		t.Fatalf("stage after full trick = %q", c.game.Stage)
	}
	winner := c.game.CurrentPlayer
	events, err := c.svc.FinishTrick(c.game, winner)
	c.record(t, events, err)
	return winner
}

func (c *crew) eventCount(kind app.EventKind) int {
	n := 0
	for _, ev := range c.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}
