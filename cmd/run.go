package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/pathfinder/internal/app"
	"github.com/abhisek/pathfinder/internal/explore"
	"github.com/abhisek/pathfinder/internal/store"
)

const sessionSaveTimeout = 2 * time.Second

// runApp opens the store, restores the last session and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	sessions := d.store.SessionRepo()
	saved := restoreSession(cmd.Context(), sessions, d)

	sessionID := uuid.NewString()
	if saved != nil && saved.SessionID != "" {
		sessionID = saved.SessionID
	}

	ctrl, err := d.newController(
		explore.WithSession(saved),
		explore.WithSessionID(sessionID),
		explore.WithOnChange(func(s store.SessionState) {
			ctx, cancel := context.WithTimeout(context.Background(), sessionSaveTimeout)
			defer cancel()
			if err := sessions.Save(ctx, &s); err != nil {
				d.logger.Warn("saving session failed", zap.Error(err))
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("build data provider: %w", err)
	}

	d.logger.Info("session started",
		zap.String("session_id", sessionID),
		zap.String("career", d.cfg.CareerID),
		zap.Bool("restored", saved != nil),
	)
	return app.Run(app.Options{Controller: ctrl, Logger: d.logger})
}

// restoreSession loads the saved session if it belongs to the configured
// career. Failures are logged and start a fresh session.
func restoreSession(ctx context.Context, sessions store.SessionRepo, d *deps) *store.SessionState {
	if ctx == nil {
		ctx = context.Background()
	}
	saved, err := sessions.Load(ctx)
	if err != nil {
		d.logger.Warn("loading saved session failed", zap.Error(err))
		return nil
	}
	if saved == nil {
		return nil
	}
	if saved.CareerID != "" && saved.CareerID != d.cfg.CareerID {
		d.logger.Info("saved session is for another career; starting fresh",
			zap.String("saved_career", saved.CareerID))
		return nil
	}
	return saved
}
