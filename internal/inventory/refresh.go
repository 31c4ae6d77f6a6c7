// Package inventory owns the live side of the port inventory: a background
// refresher that repeatedly enumerates listening processes, and the
// termination call for the selected one.
package inventory

import (
	"context"
	"time"

	"portwatch/internal/lsof"
)

// retryDelay spaces out producer retries after a failed enumeration.
const retryDelay = time.Second

// Snapshotter is the enumeration collaborator the refresher polls.
type Snapshotter interface {
	Snapshot(ctx context.Context) ([]lsof.Entry, error)
}

// Refresher runs one background producer that repeatedly enumerates and
// hands each snapshot over an unbuffered channel. The producer blocks on the
// send until the consumer takes delivery, so at most one snapshot is ever in
// flight and a slow consumer throttles enumeration instead of piling up
// results. Ownership of each snapshot transfers through the channel; the two
// sides never share it.
type Refresher struct {
	snapshots chan []lsof.Entry
	cancel    context.CancelFunc
}

// NewRefresher starts the producer loop over src.
func NewRefresher(src Snapshotter) *Refresher {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Refresher{
		snapshots: make(chan []lsof.Entry),
		cancel:    cancel,
	}
	go r.produce(ctx, src)
	return r
}

func (r *Refresher) produce(ctx context.Context, src Snapshotter) {
	for {
		entries, err := src.Snapshot(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			// Best effort: a failed cycle delivers nothing and the consumer
			// keeps whatever snapshot it already has.
			select {
			case <-ctx.Done():
				return
			case <-time.After(retryDelay):
			}
			continue
		}

		select {
		case r.snapshots <- entries:
		case <-ctx.Done():
			return
		}
	}
}

// Poll returns the latest snapshot if the producer has one ready. It never
// blocks; the UI calls it once per redraw tick and keeps its current
// snapshot when nothing is available yet.
func (r *Refresher) Poll() ([]lsof.Entry, bool) {
	select {
	case entries := <-r.snapshots:
		return entries, true
	default:
		return nil, false
	}
}

// Stop ends the background producer, aborting an in-flight enumeration.
func (r *Refresher) Stop() {
	r.cancel()
}
