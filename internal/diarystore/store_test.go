package diarystore

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"mediadiary/internal/media"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "diary.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestGetMissingDocument(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Get(context.Background(), "diary/nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get missing = %v, want ErrNotFound", err)
	}
}

func TestUpdateMergesPartialRecords(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Update(ctx, "doc", map[string]any{"a": 1.0, "b": "keep"}); err != nil {
		t.Fatalf("first update failed: %v", err)
	}
	if err := store.Update(ctx, "doc", map[string]any{"a": 2.0, "c": true}); err != nil {
		t.Fatalf("second update failed: %v", err)
	}

	raw, err := store.Get(ctx, "doc")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if doc["a"] != 2.0 || doc["b"] != "keep" || doc["c"] != true {
		t.Fatalf("merge produced %v", doc)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Update(ctx, "doc", map[string]any{"a": 1.0}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if err := store.Delete(ctx, "doc"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := store.Delete(ctx, "doc"); err != nil {
		t.Fatalf("second delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "doc"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete = %v, want ErrNotFound", err)
	}
}

func TestBatchWriteIsAtomic(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Update(ctx, "old", map[string]any{"x": 1.0}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	err := store.BatchWrite(ctx, []Op{
		{Kind: OpUpdate, Path: "new", Partial: map[string]any{"y": 2.0}},
		{Kind: OpDelete, Path: "old"},
	})
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	if _, err := store.Get(ctx, "new"); err != nil {
		t.Fatalf("batch update missing: %v", err)
	}
	if _, err := store.Get(ctx, "old"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("batch delete did not land: %v", err)
	}

	// An invalid op rolls back the whole batch.
	err = store.BatchWrite(ctx, []Op{
		{Kind: OpUpdate, Path: "rolled-back", Partial: map[string]any{"z": 3.0}},
		{Kind: OpKind(99), Path: "bad"},
	})
	if err == nil {
		t.Fatal("expected batch with unknown op to fail")
	}
	if _, err := store.Get(ctx, "rolled-back"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("failed batch leaked a write: %v", err)
	}
}

func TestSaveEntryAssignsID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	saved, err := store.SaveEntry(ctx, media.DiaryEntry{
		MediaKey:  "movie_603",
		Type:      media.TypeMovie,
		DiaryDate: time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC).UnixMilli(),
		Rating:    4.5,
		Title:     "The Matrix",
	})
	if err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("SaveEntry did not assign an ID")
	}

	loaded, err := store.GetEntry(ctx, saved.ID)
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if loaded.MediaKey != "movie_603" || loaded.Rating != 4.5 || loaded.Title != "The Matrix" {
		t.Fatalf("round trip mangled entry: %#v", loaded)
	}
}

func TestSaveEntryRequiresMediaKey(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.SaveEntry(context.Background(), media.DiaryEntry{}); err == nil {
		t.Fatal("expected error for entry without media key")
	}
}

func TestListDiaryFiltersAndOrders(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seed := []media.DiaryEntry{
		{MediaKey: "movie_1", Type: media.TypeMovie, Rating: 3, DiaryDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC).UnixMilli()},
		{MediaKey: "tv_2", Type: media.TypeTV, Rating: 5, DiaryDate: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC).UnixMilli()},
		{MediaKey: "album_3", Type: media.TypeAlbum, Rating: 4, DiaryDate: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC).UnixMilli()},
	}
	for _, entry := range seed {
		if _, err := store.SaveEntry(ctx, entry); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	all, err := store.ListDiary(ctx, media.DiaryFilters{})
	if err != nil {
		t.Fatalf("ListDiary failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("ListDiary returned %d entries, want 3", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].DiaryDate < all[i].DiaryDate {
			t.Fatalf("entries not sorted newest first: %v before %v", all[i-1].DiaryDate, all[i].DiaryDate)
		}
	}

	tvOnly := media.TypeTV
	filtered, err := store.ListDiary(ctx, media.DiaryFilters{MediaType: &tvOnly})
	if err != nil {
		t.Fatalf("filtered ListDiary failed: %v", err)
	}
	if len(filtered) != 1 || filtered[0].MediaKey != "tv_2" {
		t.Fatalf("filter returned %#v", filtered)
	}
}

func TestPreferenceRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, found, err := store.LoadPreference(ctx); err != nil || found {
		t.Fatalf("LoadPreference before save = found %v, err %v", found, err)
	}

	pref := media.Preference{MediaTypes: media.MediaTypes{Movie: true, Album: true}}
	if err := store.SavePreference(ctx, pref); err != nil {
		t.Fatalf("SavePreference failed: %v", err)
	}

	loaded, found, err := store.LoadPreference(ctx)
	if err != nil || !found {
		t.Fatalf("LoadPreference after save = found %v, err %v", found, err)
	}
	if loaded != pref {
		t.Fatalf("preference round trip = %#v, want %#v", loaded, pref)
	}
}

func TestMediaRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sel := media.Selected{Type: media.TypeMovie, MediaID: "603", Title: "The Matrix", Poster: "/p.jpg"}
	if err := store.SaveMedia(ctx, sel); err != nil {
		t.Fatalf("SaveMedia failed: %v", err)
	}
	loaded, err := store.GetMedia(ctx, sel.Key())
	if err != nil {
		t.Fatalf("GetMedia failed: %v", err)
	}
	if loaded != sel {
		t.Fatalf("media round trip = %#v, want %#v", loaded, sel)
	}
}

func TestWatchObservesChanges(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := store.Watch(ctx, "doc", 10*time.Millisecond)

	// First event reports the current (missing) state.
	first := <-events
	if first.Err != nil || first.Data != nil {
		t.Fatalf("initial event = %#v", first)
	}

	if err := store.Update(context.Background(), "doc", map[string]any{"a": 1.0}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	select {
	case event := <-events:
		if event.Err != nil || event.Data == nil {
			t.Fatalf("change event = %#v", event)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watch never reported the update")
	}

	cancel()
	for range events {
	}
}
