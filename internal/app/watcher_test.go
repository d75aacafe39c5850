package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"mediadiary/internal/diarystore"
	"mediadiary/internal/media"
	"mediadiary/internal/session"
)

func TestPreferenceWatcherFoldsDocumentIntoController(t *testing.T) {
	store, err := diarystore.Open(filepath.Join(t.TempDir(), "diary.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	controller := session.NewController()
	StartPreferenceWatcher(ctx, store, controller, 10*time.Millisecond, nil)

	// With no document the controller should settle on "missing".
	waitFor(t, func() bool {
		return controller.Snapshot().PrefStatus == session.PreferenceMissing
	}, "controller never observed the missing preference")

	pref := media.Preference{MediaTypes: media.MediaTypes{Movie: true, TV: true}}
	if err := store.SavePreference(context.Background(), pref); err != nil {
		t.Fatalf("SavePreference failed: %v", err)
	}

	waitFor(t, func() bool {
		snap := controller.Snapshot()
		return snap.PrefStatus == session.PreferenceLoaded && snap.Preference == pref
	}, "controller never observed the saved preference")
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal(msg)
}
