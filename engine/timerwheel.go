package engine

import (
	"sync"
	"time"

	"github.com/named-data/ndncore/internal/mailbox"
	"github.com/named-data/ndncore/internal/pq"
	"github.com/named-data/ndncore/pkt"
)

// TimerWheel is the reference TimerService: a software-only analogue of
// the original C xtimer_set_msg, adapted from the teacher's
// std/types/priority_queue generic min-heap (internal/pq), ordered by
// expiration time instead of by name.
//
// A call to Set never blocks and never touches the mailbox directly —
// Run, driven from its own goroutine, is the only thing that pops expired
// entries and delivers them as TimerFired messages, so the forwarder's
// dispatch loop remains the sole mutator of PIT/CS state (spec.md §5).
//
// Set is idempotent per token: calling it again for a token still pending
// moves that entry's deadline instead of arming a second, independent
// fire — the mechanism the Forwarder relies on to "reset the entry's timer to
// the new lifetime" on a PIT aggregation hit (spec.md §4.6 step 3) without
// ever delivering a stale TimerFired at the old deadline.
type TimerWheel struct {
	mu    sync.Mutex
	q     *pq.Queue[timerKey, int64]
	items map[uint64]*pq.Item[timerKey, int64]
	wake  chan struct{}
	stop  chan struct{}
}

type timerKey struct {
	Name  pkt.Name
	Token uint64
}

// NewTimerWheel constructs an idle TimerWheel. Call Run in its own
// goroutine to start delivering TimerFired messages.
func NewTimerWheel() *TimerWheel {
	return &TimerWheel{
		q:     pq.New[timerKey, int64](),
		items: make(map[uint64]*pq.Item[timerKey, int64]),
		wake:  make(chan struct{}, 1),
		stop:  make(chan struct{}),
	}
}

// Set registers that token should fire at at, or — if token is already
// armed — moves its existing deadline to at. It satisfies
// engine.TimerService.
func (w *TimerWheel) Set(name pkt.Name, token uint64, at time.Time) {
	w.mu.Lock()
	if it, ok := w.items[token]; ok {
		w.q.UpdatePriority(it, at.UnixNano())
	} else {
		w.items[token] = w.q.Push(timerKey{Name: name, Token: token}, at.UnixNano())
	}
	w.mu.Unlock()
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// Stop terminates Run. It is safe to call at most once.
func (w *TimerWheel) Stop() {
	close(w.stop)
}

// Run blocks, delivering a TimerFired message to mb for every deadline
// that passes, until Stop is called. It is meant to be launched as its
// own goroutine alongside the forwarder's dispatch loop.
func (w *TimerWheel) Run(mb *mailbox.Mailbox[Message]) {
	const idleWait = 24 * time.Hour
	for {
		w.mu.Lock()
		deadline, has := w.q.PeekPriority()
		w.mu.Unlock()

		var wait time.Duration
		if has {
			wait = time.Until(time.Unix(0, deadline))
			if wait < 0 {
				wait = 0
			}
		} else {
			wait = idleWait
		}
		timer := time.NewTimer(wait)

		select {
		case <-w.stop:
			timer.Stop()
			return
		case <-w.wake:
			timer.Stop()
			continue
		case <-timer.C:
		}

		now := time.Now().UnixNano()
		w.mu.Lock()
		var fired []timerKey
		for {
			p, has := w.q.PeekPriority()
			if !has || p > now {
				break
			}
			v, _ := w.q.Pop()
			delete(w.items, v.Token)
			fired = append(fired, v)
		}
		w.mu.Unlock()

		for _, k := range fired {
			mb.TrySend(TimerFired{Name: k.Name, Token: k.Token})
		}
	}
}
