package app

// MinPlayersToStartGame defines the minimum number of seated players required to start a game.
// Keep this centralized so tests or local runs can adjust the rule without touching multiple call sites.
const MinPlayersToStartGame = 3

// MaxPlayers is the seat limit for a single session.
const MaxPlayers = 5
