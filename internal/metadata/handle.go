package metadata

import "context"

// Status is the observable state of a fetch handle.
type Status int

const (
	StatusPending Status = iota
	StatusReady
	StatusError
)

// Handle is the future for one metadata fetch. It starts pending and
// resolves exactly once to ready or error; the record and error fields are
// immutable after Done is closed.
type Handle struct {
	query  Query
	done   chan struct{}
	record Record
	err    error
}

func newHandle(query Query) *Handle {
	return &Handle{query: query, done: make(chan struct{})}
}

// Query returns the query this handle resolves.
func (h *Handle) Query() Query {
	return h.query
}

// Done returns a channel closed when the handle resolves.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Status reports the current state without blocking.
func (h *Handle) Status() Status {
	select {
	case <-h.done:
		if h.err != nil {
			return StatusError
		}
		return StatusReady
	default:
		return StatusPending
	}
}

// Await blocks until the handle resolves or the context is cancelled. The
// underlying fetch keeps running on cancellation; only the wait stops.
func (h *Handle) Await(ctx context.Context) (Record, error) {
	select {
	case <-h.done:
		return h.record, h.err
	case <-ctx.Done():
		return Record{}, ctx.Err()
	}
}

// Result returns the resolved record and error. Valid only after Done is
// closed; a pending handle yields the zero record.
func (h *Handle) Result() (Record, error) {
	select {
	case <-h.done:
		return h.record, h.err
	default:
		return Record{}, nil
	}
}

func (h *Handle) resolve(record Record, err error) {
	h.record = record
	h.err = err
	close(h.done)
}
