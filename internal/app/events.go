package app

import "thecrew/internal/domain"

// EventKind identifies emitted domain events for Nakama dispatch.
type EventKind string

const (
	EventPlayerJoined   EventKind = "player_joined"
	EventPlayerLeft     EventKind = "player_left"
	EventHostChanged    EventKind = "host_changed"
	EventGameStarted    EventKind = "game_started"
	EventHandDealt      EventKind = "hand_dealt"
	EventTaskTaken      EventKind = "task_taken"
	EventTaskReturned   EventKind = "task_returned"
	EventTasksAllocated EventKind = "tasks_allocated"
	EventCardPlayed     EventKind = "card_played"
	EventTrickCompleted EventKind = "trick_completed"
	EventTrickFinished  EventKind = "trick_finished"
	EventCommunicated   EventKind = "communicated"
	EventGameEnded      EventKind = "game_ended"
	EventGameRestarted  EventKind = "game_restarted"
)

// Event is a domain/app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // session IDs; empty means broadcast
}

type PlayerJoinedPayload struct {
	SessionID   string `json:"session_id"`
	DisplayName string `json:"display_name"`
	IsHost      bool   `json:"is_host"`
}

type PlayerLeftPayload struct {
	SessionID string `json:"session_id"`
}

type HostChangedPayload struct {
	SessionID string `json:"session_id"`
}

type GameStartedPayload struct {
	PlayerOrder        []string               `json:"player_order"`
	Commander          string                 `json:"commander"`
	ExpectedTrickCount int                    `json:"expected_trick_count"`
	Tasks              []domain.Task          `json:"tasks"`
	ExpansionTasks     []domain.ExpansionTask `json:"expansion_tasks"`
}

type HandDealtPayload struct {
	SessionID string        `json:"session_id"`
	Hand      []domain.Card `json:"hand"`
}

type TaskTakenPayload struct {
	SessionID string      `json:"session_id"`
	Task      domain.Task `json:"task"`
}

type TaskReturnedPayload struct {
	SessionID string      `json:"session_id"`
	Task      domain.Task `json:"task"`
}

type ExpansionTaskTakenPayload struct {
	SessionID string `json:"session_id"`
	DefID     string `json:"def_id"`
}

type TasksAllocatedPayload struct {
	FirstPlayer string `json:"first_player"`
}

type CardPlayedPayload struct {
	SessionID  string      `json:"session_id"`
	Card       domain.Card `json:"card"`
	NextPlayer string      `json:"next_player"`
}

type TrickCompletedPayload struct {
	Winner string        `json:"winner"`
	Trick  domain.Trick  `json:"trick"`
	Tasks  []domain.Task `json:"tasks"`
}

type TrickFinishedPayload struct {
	NextLeader string `json:"next_leader"`
}

type CommunicatedPayload struct {
	SessionID string                   `json:"session_id"`
	Card      domain.Card              `json:"card"`
	Rank      domain.CommunicationRank `json:"rank"`
}

type GameEndedPayload struct {
	Succeeded      bool                   `json:"succeeded"`
	Tasks          []domain.Task          `json:"tasks"`
	ExpansionTasks []domain.ExpansionTask `json:"expansion_tasks"`
}

type GameRestartedPayload struct {
	RequestedBy string `json:"requested_by"`
}
