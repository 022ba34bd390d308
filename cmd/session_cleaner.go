package main

import (
	"context"
	"log"
	"time"

	"poputkaBack/internal/repositories"
)

const (
	sessionCleanerInterval = 12 * time.Hour
	sessionCleanerTimeout  = 1 * time.Minute
)

// startSessionCleaner periodically removes refresh sessions past their
// expiry so the sessions table does not grow without bound.
func startSessionCleaner(ctx context.Context, repo *repositories.UserRepository, infoLog, errorLog *log.Logger) {
	if repo == nil {
		return
	}

	go func() {
		ticker := time.NewTicker(sessionCleanerInterval)
		defer ticker.Stop()

		runOnce := func() {
			runCtx, cancel := context.WithTimeout(ctx, sessionCleanerTimeout)
			err := repo.DeleteExpiredSessions(runCtx, time.Now().UTC())
			cancel()
			if err != nil {
				if errorLog != nil {
					errorLog.Printf("session cleaner: failed to delete expired sessions: %v", err)
				}
			} else if infoLog != nil {
				infoLog.Printf("session cleaner: expired sessions removed")
			}
		}

		runOnce()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runOnce()
			}
		}
	}()
}
