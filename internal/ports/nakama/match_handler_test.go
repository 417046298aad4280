package nakama

import (
	"context"
	"encoding/json"
	"testing"

	"thecrew/internal/config"
	"thecrew/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

type broadcast struct {
	opCode     int64
	data       []byte
	recipients []runtime.Presence
}

// mockDispatcher records match dispatcher calls for assertions.
type mockDispatcher struct {
	broadcasts   []broadcast
	labelUpdates int
	kicked       []runtime.Presence
}

func (md *mockDispatcher) BroadcastMessage(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	md.broadcasts = append(md.broadcasts, broadcast{
		opCode:     opCode,
		data:       append([]byte(nil), data...),
		recipients: presences,
	})
	return nil
}

func (md *mockDispatcher) BroadcastMessageDeferred(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	return nil
}

func (md *mockDispatcher) MatchKick(presences []runtime.Presence) error {
	md.kicked = append(md.kicked, presences...)
	return nil
}

func (md *mockDispatcher) MatchLabelUpdate(label string) error {
	md.labelUpdates++
	return nil
}

func (md *mockDispatcher) lastOpCode() int64 {
	if len(md.broadcasts) == 0 {
		return 0
	}
	return md.broadcasts[len(md.broadcasts)-1].opCode
}

type mockPresence struct {
	userID   string
	username string
}

func (p mockPresence) GetUserId() string                 { return p.userID }
func (p mockPresence) GetSessionId() string              { return p.userID }
func (p mockPresence) GetNodeId() string                 { return "node" }
func (p mockPresence) GetHidden() bool                   { return false }
func (p mockPresence) GetPersistence() bool              { return false }
func (p mockPresence) GetUsername() string               { return p.username }
func (p mockPresence) GetStatus() string                 { return "" }
func (p mockPresence) GetReason() runtime.PresenceReason { return runtime.PresenceReasonJoin }

type mockMatchData struct {
	mockPresence
	opCode int64
	data   []byte
}

func (m mockMatchData) GetOpCode() int64      { return m.opCode }
func (m mockMatchData) GetData() []byte       { return m.data }
func (m mockMatchData) GetReliable() bool     { return true }
func (m mockMatchData) GetReceiveTime() int64 { return 0 }

func newTestState(t *testing.T, userIDs ...string) (*matchHandler, *MatchState, *mockDispatcher) {
	t.Helper()
	handler := newMatchHandler()
	raw, _, _ := handler.MatchInit(context.Background(), noopLogger{}, nil, nil, nil)
	state, ok := raw.(*MatchState)
	if !ok {
		t.Fatal("MatchInit did not return MatchState")
	}
	dispatcher := &mockDispatcher{}

	presences := make([]runtime.Presence, 0, len(userIDs))
	for _, id := range userIDs {
		presences = append(presences, mockPresence{userID: id, username: id})
	}
	if len(presences) > 0 {
		handler.MatchJoin(context.Background(), noopLogger{}, nil, nil, dispatcher, 1, state, presences)
	}
	return handler, state, dispatcher
}

func TestMatchInitLabel(t *testing.T) {
	handler := newMatchHandler()
	raw, rate, label := handler.MatchInit(context.Background(), noopLogger{}, nil, nil, nil)
	if raw == nil {
		t.Fatal("expected match state")
	}
	if rate != tickRate {
		t.Fatalf("tick rate = %d", rate)
	}

	var parsed matchLabel
	if err := json.Unmarshal([]byte(label), &parsed); err != nil {
		t.Fatalf("label not JSON: %v", err)
	}
	if parsed.Game != "thecrew" || parsed.Phase != "lobby" || parsed.Open != 5 {
		t.Fatalf("label = %+v", parsed)
	}
}

func TestMatchJoinSeatsPlayers(t *testing.T) {
	_, state, dispatcher := newTestState(t, "u1", "u2", "u3")

	if len(state.Game.Players) != 3 {
		t.Fatalf("players = %d, want 3", len(state.Game.Players))
	}
	if !state.Game.Players["u1"].IsHost {
		t.Fatal("first presence should host")
	}
	if len(dispatcher.broadcasts) != 3 {
		t.Fatalf("broadcasts = %d, want 3 join events", len(dispatcher.broadcasts))
	}
	if dispatcher.labelUpdates == 0 {
		t.Fatal("expected a label update after join")
	}
}

func TestMatchJoinAttemptRejectsMidGameStrangers(t *testing.T) {
	handler, state, _ := newTestState(t, "u1", "u2", "u3")
	state.Game.GameStarted = true
	state.Game.Stage = domain.StageGameSetup

	_, allowed, _ := handler.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, nil, 2, state, mockPresence{userID: "stranger"}, nil)
	if allowed {
		t.Fatal("stranger must not join a running game")
	}

	_, allowed, _ = handler.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, nil, 2, state, mockPresence{userID: "u2"}, nil)
	if !allowed {
		t.Fatal("seated player must be able to reconnect")
	}
}

func TestMalformedPayloadKicksSender(t *testing.T) {
	handler, state, dispatcher := newTestState(t, "u1", "u2", "u3")

	msg := mockMatchData{
		mockPresence: mockPresence{userID: "u1", username: "u1"},
		opCode:       OpPlayCard,
		data:         []byte("{not json"),
	}
	handler.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 2, state, []runtime.MatchData{msg})

	if len(dispatcher.kicked) != 1 || dispatcher.kicked[0].GetUserId() != "u1" {
		t.Fatalf("kicked = %+v, want u1", dispatcher.kicked)
	}
}

func TestIllegalActionIsSoftIgnored(t *testing.T) {
	handler, state, dispatcher := newTestState(t, "u1", "u2", "u3")
	before := len(dispatcher.broadcasts)

	// Well-formed play before the game starts: reject without touching state.
	payload, _ := json.Marshal(playCardRequest{Card: wireCard{Color: "yellow", Number: 3}})
	msg := mockMatchData{
		mockPresence: mockPresence{userID: "u2", username: "u2"},
		opCode:       OpPlayCard,
		data:         payload,
	}
	handler.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 2, state, []runtime.MatchData{msg})

	if len(dispatcher.kicked) != 0 {
		t.Fatal("well-formed but illegal actions must not kick")
	}
	if state.Game.GameStarted {
		t.Fatal("state must be untouched")
	}
	if got := len(dispatcher.broadcasts); got != before {
		t.Fatalf("broadcasts = %d, want none: rejections are silent", got-before)
	}
}

func TestUnknownOpcodeKicksSender(t *testing.T) {
	handler, state, dispatcher := newTestState(t, "u1", "u2", "u3")

	msg := mockMatchData{
		mockPresence: mockPresence{userID: "u3", username: "u3"},
		opCode:       77,
		data:         []byte("{}"),
	}
	handler.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 2, state, []runtime.MatchData{msg})

	if len(dispatcher.kicked) != 1 || dispatcher.kicked[0].GetUserId() != "u3" {
		t.Fatalf("kicked = %+v, want u3", dispatcher.kicked)
	}
}

func TestEmojiIsRelayedWithDisplayName(t *testing.T) {
	handler, state, dispatcher := newTestState(t, "u1", "u2", "u3")

	payload, _ := json.Marshal(emojiRequest{Emoji: "rocket"})
	msg := mockMatchData{
		mockPresence: mockPresence{userID: "u2", username: "u2"},
		opCode:       OpEmoji,
		data:         payload,
	}
	handler.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 2, state, []runtime.MatchData{msg})

	if dispatcher.lastOpCode() != OpEmojiRelayed {
		t.Fatalf("last opcode = %d, want %d", dispatcher.lastOpCode(), OpEmojiRelayed)
	}
	var ev emojiEvent
	last := dispatcher.broadcasts[len(dispatcher.broadcasts)-1]
	if err := json.Unmarshal(last.data, &ev); err != nil {
		t.Fatalf("emoji event not JSON: %v", err)
	}
	if ev.SessionID != "u2" || ev.Emoji != "rocket" || ev.DisplayName == "" {
		t.Fatalf("emoji event = %+v", ev)
	}
	if len(last.recipients) != 0 {
		t.Fatal("emoji must broadcast to the whole room")
	}
}

func TestKickIsHostOnly(t *testing.T) {
	handler, state, dispatcher := newTestState(t, "u1", "u2", "u3")

	payload, _ := json.Marshal(kickRequest{SessionID: "u3"})
	msg := mockMatchData{
		mockPresence: mockPresence{userID: "u2", username: "u2"},
		opCode:       OpKickPlayer,
		data:         payload,
	}
	handler.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 2, state, []runtime.MatchData{msg})
	if len(dispatcher.kicked) != 0 {
		t.Fatal("non-host must not kick anyone")
	}

	msg.mockPresence = mockPresence{userID: "u1", username: "u1"}
	handler.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 3, state, []runtime.MatchData{msg})
	if len(dispatcher.kicked) != 1 || dispatcher.kicked[0].GetUserId() != "u3" {
		t.Fatalf("kicked = %+v, want u3", dispatcher.kicked)
	}
}

func TestKickedPlayerCannotRejoin(t *testing.T) {
	handler, state, dispatcher := newTestState(t, "u1", "u2", "u3")

	payload, _ := json.Marshal(kickRequest{SessionID: "u3"})
	msg := mockMatchData{
		mockPresence: mockPresence{userID: "u1", username: "u1"},
		opCode:       OpKickPlayer,
		data:         payload,
	}
	handler.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 2, state, []runtime.MatchData{msg})
	handler.MatchLeave(context.Background(), noopLogger{}, nil, nil, dispatcher, 2, state, []runtime.Presence{mockPresence{userID: "u3", username: "u3"}})

	_, allowed, _ := handler.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, nil, 3, state, mockPresence{userID: "u3"}, nil)
	if allowed {
		t.Fatal("kicked player must not be admitted back")
	}

	_, allowed, _ = handler.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, nil, 3, state, mockPresence{userID: "u4"}, nil)
	if !allowed {
		t.Fatal("other joiners are unaffected by the kick")
	}
}

func TestKickedPlayerMidGameClosesRoomWithoutGrace(t *testing.T) {
	handler, state, dispatcher := newTestState(t, "u1", "u2", "u3")
	state.Game.GameStarted = true
	state.Game.Stage = domain.StageTrickStart

	payload, _ := json.Marshal(kickRequest{SessionID: "u2"})
	msg := mockMatchData{
		mockPresence: mockPresence{userID: "u1", username: "u1"},
		opCode:       OpKickPlayer,
		data:         payload,
	}
	handler.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 5, state, []runtime.MatchData{msg})
	handler.MatchLeave(context.Background(), noopLogger{}, nil, nil, dispatcher, 5, state, []runtime.Presence{mockPresence{userID: "u2", username: "u2"}})

	next := handler.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 6, state, nil)
	if next != nil {
		t.Fatal("room must close once a kicked seat cannot be refilled")
	}
	if dispatcher.lastOpCode() != OpRoomClosed {
		t.Fatalf("last opcode = %d, want %d", dispatcher.lastOpCode(), OpRoomClosed)
	}
}

func TestReconnectExpiryClosesRoom(t *testing.T) {
	handler, state, dispatcher := newTestState(t, "u1", "u2", "u3")
	state.Game.GameStarted = true
	state.Game.Stage = domain.StageTrickStart

	handler.MatchLeave(context.Background(), noopLogger{}, nil, nil, dispatcher, 10, state, []runtime.Presence{mockPresence{userID: "u2", username: "u2"}})
	deadline, ok := state.ReconnectDeadlines["u2"]
	if !ok {
		t.Fatal("mid-game leaver must get a reconnect deadline")
	}
	if pl, seated := state.Game.Players["u2"]; !seated || pl.IsConnected {
		t.Fatal("mid-game leaver must keep the seat, marked disconnected")
	}

	next := handler.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, deadline+1, state, nil)
	if next != nil {
		t.Fatal("room must close when the reconnect window runs out")
	}
	if dispatcher.lastOpCode() != OpRoomClosed {
		t.Fatalf("last opcode = %d, want %d", dispatcher.lastOpCode(), OpRoomClosed)
	}
}

func TestStartGameOverWire(t *testing.T) {
	handler, state, dispatcher := newTestState(t, "u1", "u2", "u3")

	payload, _ := json.Marshal(startGameRequest{IncludeTasks: true, PlainTasks: 2})
	msg := mockMatchData{
		mockPresence: mockPresence{userID: "u1", username: "u1"},
		opCode:       OpStartGame,
		data:         payload,
	}
	handler.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 2, state, []runtime.MatchData{msg})

	if !state.Game.GameStarted {
		t.Fatal("game should be started")
	}
	if state.Game.Stage != domain.StageGameSetup {
		t.Fatalf("stage = %q", state.Game.Stage)
	}

	handCount := 0
	for _, b := range dispatcher.broadcasts {
		if b.opCode != OpHandDealt {
			continue
		}
		handCount++
		if len(b.recipients) != 1 {
			t.Fatalf("hand dealt to %d recipients", len(b.recipients))
		}
	}
	if handCount != 3 {
		t.Fatalf("hand events = %d, want 3", handCount)
	}
}

func TestStartGameExpansionOnly(t *testing.T) {
	handler, state, dispatcher := newTestState(t, "u1", "u2", "u3")

	payload, _ := json.Marshal(startGameRequest{TargetDifficulty: 6})
	msg := mockMatchData{
		mockPresence: mockPresence{userID: "u1", username: "u1"},
		opCode:       OpStartGame,
		data:         payload,
	}
	handler.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 2, state, []runtime.MatchData{msg})

	if !state.Game.GameStarted {
		t.Fatal("game should be started")
	}
	if got := len(state.Game.Tasks); got != 0 {
		t.Fatalf("built-in tasks = %d, want none without include_tasks", got)
	}
	if len(state.Game.ExpansionTasks) == 0 {
		t.Fatal("expected expansion objectives")
	}
}

func TestStartGameExpansionDefaultsDifficultyFromConfig(t *testing.T) {
	handler, state, dispatcher := newTestState(t, "u1", "u2", "u3")

	payload, _ := json.Marshal(startGameRequest{Expansion: true})
	msg := mockMatchData{
		mockPresence: mockPresence{userID: "u1", username: "u1"},
		opCode:       OpStartGame,
		data:         payload,
	}
	handler.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 2, state, []runtime.MatchData{msg})

	// Without an explicit budget the configured default applies; a zero
	// budget would select nothing at all.
	if len(state.Game.ExpansionTasks) == 0 {
		t.Fatal("expansion mode without a budget must fall back to the configured default")
	}
	total := 0
	for _, task := range state.Game.ExpansionTasks {
		total += task.Difficulty
	}
	if total > config.GetDefaultTargetDifficulty() {
		t.Fatalf("total difficulty = %d, exceeds the configured default %d", total, config.GetDefaultTargetDifficulty())
	}
}

func TestHandDealtToDisconnectedPlayerIsDropped(t *testing.T) {
	handler, state, dispatcher := newTestState(t, "u1", "u2", "u3")
	delete(state.Presences, "u2")

	payload, _ := json.Marshal(startGameRequest{IncludeTasks: true, PlainTasks: 1})
	msg := mockMatchData{
		mockPresence: mockPresence{userID: "u1", username: "u1"},
		opCode:       OpStartGame,
		data:         payload,
	}
	handler.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, 2, state, []runtime.MatchData{msg})

	for _, b := range dispatcher.broadcasts {
		if b.opCode != OpHandDealt {
			continue
		}
		for _, p := range b.recipients {
			if p.GetUserId() == "u2" {
				t.Fatal("disconnected player cannot receive messages")
			}
		}
		// A private event with no connected recipient must not fall back to
		// a room-wide broadcast.
		if len(b.recipients) == 0 {
			t.Fatal("private hand event broadcast to everyone")
		}
	}
}

func TestIdleRoomShutsDown(t *testing.T) {
	handler, state, dispatcher := newTestState(t, "u1", "u2", "u3")
	state.LastActivityTick = 1

	idleTick := int64(1 + 11*60)
	next := handler.MatchLoop(context.Background(), noopLogger{}, nil, nil, dispatcher, idleTick, state, nil)
	if next != nil {
		t.Fatal("idle room should shut down")
	}
	if dispatcher.lastOpCode() != OpRoomClosed {
		t.Fatalf("last opcode = %d, want %d", dispatcher.lastOpCode(), OpRoomClosed)
	}
}

func TestTaskFromRequestValidation(t *testing.T) {
	if _, err := taskFromRequest(taskRequest{Card: wireCard{Color: "yellow", Number: 3}, Category: "plain"}); err != nil {
		t.Fatalf("valid request: %v", err)
	}
	if _, err := taskFromRequest(taskRequest{Card: wireCard{Color: "yellow", Number: 12}, Category: "plain"}); err == nil {
		t.Fatal("out of range number should fail")
	}
	if _, err := taskFromRequest(taskRequest{Card: wireCard{Color: "red", Number: 3}, Category: "plain"}); err == nil {
		t.Fatal("unknown color should fail")
	}
	if _, err := taskFromRequest(taskRequest{Card: wireCard{Color: "yellow", Number: 3}, Category: "bogus"}); err == nil {
		t.Fatal("unknown category should fail")
	}
	if _, err := cardFromWire(wireCard{Color: "black", Number: 5}); err == nil {
		t.Fatal("black 5 does not exist")
	}
}
