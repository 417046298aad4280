package main

import (
	"context"
	"database/sql"

	"thecrew/internal/ports/nakama"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule is the entry point Nakama loads from the compiled plugin. It
// delegates to the adapter package so all wiring lives in one place.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	return nakama.InitModule(ctx, logger, db, nk, initializer)
}

// main is never invoked; Nakama loads InitModule from the plugin. It exists
// so the package builds with the default buildmode.
func main() {}
