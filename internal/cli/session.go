// Package cli implements the hrm command tree. Commands are thin translators:
// they read flags, establish the actor context, call a wire service, and
// render the result.
package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/vcodezdemo2-lang/Universal-HRM/internal/config"
	"github.com/vcodezdemo2-lang/Universal-HRM/internal/ctxutil"
)

// actorContext loads the local actor identity from .hrm/config.json in the
// working directory and embeds it in a fresh context. Every mutating command
// goes through here; read-only commands may use context.Background directly.
func actorContext() (context.Context, *config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.LoadConfig(cwd)
	if err != nil {
		return nil, nil, fmt.Errorf("no actor configured\nHint: run 'hrm init --actor-id <id> --role <role>' first")
	}
	if cfg.ActorID == 0 || !config.ValidRole(cfg.Role) {
		return nil, nil, fmt.Errorf("invalid actor config: actor_id and a valid role are required")
	}

	ctx := ctxutil.WithActor(context.Background(), ctxutil.Actor{ID: cfg.ActorID, Role: cfg.Role})
	return ctx, cfg, nil
}

// parseID parses a positional numeric ID argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid ID %q, expected a positive number", arg)
	}
	return id, nil
}
