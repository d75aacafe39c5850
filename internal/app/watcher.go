package app

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"mediadiary/internal/diarystore"
	"mediadiary/internal/media"
	"mediadiary/internal/session"
)

// StartPreferenceWatcher launches a background goroutine that folds
// preference document changes into the controller. It returns immediately
// and stops when the context is cancelled.
//
// The UI also loads the preference once at startup; the watcher covers
// writes that happen behind its back (another process, a restored backup)
// and keeps the onboarding gate correct either way.
func StartPreferenceWatcher(ctx context.Context, store *diarystore.Store, controller *session.Controller, interval time.Duration, logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	events := store.WatchPreference(ctx, interval)

	go func() {
		for event := range events {
			if event.Err != nil {
				logger.Warn("preference watch failed", slog.Any("error", event.Err))
				continue
			}
			if event.Data == nil {
				controller.Dispatch(session.SetField(session.FieldPreference, nil))
				continue
			}
			var pref media.Preference
			if err := json.Unmarshal(event.Data, &pref); err != nil {
				logger.Warn("preference document malformed", slog.Any("error", err))
				continue
			}
			controller.Dispatch(session.SetField(session.FieldPreference, pref))
		}
	}()
}
