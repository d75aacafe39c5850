package diarystore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"
)

// WatchEvent is one observation of a watched document. Data is nil when the
// document does not exist (or was deleted); Err is set when a poll failed.
type WatchEvent struct {
	Path string
	Data json.RawMessage
	Err  error
}

// Watch polls the document at path and sends an event whenever its content
// changes, starting with the current state. The channel closes when the
// context is cancelled.
func (s *Store) Watch(ctx context.Context, path string, interval time.Duration) <-chan WatchEvent {
	if interval <= 0 {
		interval = time.Second
	}
	events := make(chan WatchEvent, 1)

	go func() {
		defer close(events)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		var last json.RawMessage
		first := true
		for {
			data, err := s.Get(ctx, path)
			missing := errors.Is(err, ErrNotFound)
			switch {
			case missing:
				data = nil
			case err != nil:
				select {
				case events <- WatchEvent{Path: path, Err: err}:
				case <-ctx.Done():
					return
				}
			}
			if err == nil || missing {
				if first || !bytes.Equal(last, data) {
					first = false
					last = data
					select {
					case events <- WatchEvent{Path: path, Data: data}:
					case <-ctx.Done():
						return
					}
				}
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()

	return events
}
