package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

type GameConfig struct {
	// DefaultTargetDifficulty is used when the host starts a game with
	// expansion objectives but no explicit budget.
	DefaultTargetDifficulty int `json:"default_target_difficulty"`
	DefaultPlainTasks       int `json:"default_plain_tasks"`
	ReconnectGraceSeconds   int `json:"reconnect_grace_seconds"`
	// InactivityTimeoutMinutes configures how long an idle room stays open before shutting down.
	InactivityTimeoutMinutes int `json:"inactivity_timeout_minutes"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration.
func GetGameConfig() *GameConfig {
	return cfg
}

// GetDefaultTargetDifficulty returns the configured expansion budget, or a safe default.
func GetDefaultTargetDifficulty() int {
	if cfg == nil || cfg.DefaultTargetDifficulty <= 0 {
		return 10
	}
	return cfg.DefaultTargetDifficulty
}

// GetDefaultPlainTasks returns how many plain tasks to draw when the host sends none.
func GetDefaultPlainTasks() int {
	if cfg == nil || cfg.DefaultPlainTasks <= 0 {
		return 3
	}
	return cfg.DefaultPlainTasks
}

// GetReconnectGraceSeconds returns how long a disconnected seat is held open.
func GetReconnectGraceSeconds() int {
	if cfg == nil || cfg.ReconnectGraceSeconds <= 0 {
		return 300
	}
	return cfg.ReconnectGraceSeconds
}

// GetInactivityTimeoutMinutes returns the idle room shutdown timeout.
func GetInactivityTimeoutMinutes() int {
	if cfg == nil || cfg.InactivityTimeoutMinutes <= 0 {
		return 10
	}
	return cfg.InactivityTimeoutMinutes
}
