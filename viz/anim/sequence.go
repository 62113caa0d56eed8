package anim

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// SequenceState is the explicit state machine a Sequence moves through.
// Transitions happen only on Play, Cancel, and the scheduler's completion
// notifications.
type SequenceState int

const (
	SequenceIdle SequenceState = iota
	SequencePlaying
	SequenceDone
)

func (s SequenceState) String() string {
	switch s {
	case SequencePlaying:
		return "playing"
	case SequenceDone:
		return "done"
	default:
		return "idle"
	}
}

// SequenceEntry is one animation in a sequence: a callback plus its
// registration options.
type SequenceEntry struct {
	Callback Callback
	Options  AddOptions
}

// Delay returns an entry that animates nothing for d, giving a pure timed
// pause between entries.
func Delay(d time.Duration) SequenceEntry {
	return SequenceEntry{Options: AddOptions{Duration: d}}
}

// Sequence plays a list of entries strictly one at a time: the next
// entry's registration is issued only from the previous entry's
// completion.
type Sequence struct {
	mu      sync.Mutex
	sched   *Scheduler
	entries []SequenceEntry
	state   SequenceState
	index   int
	current string
	onDone  func()
}

// NewSequence builds a sequence over the given scheduler. onDone, if
// non-nil, fires once when the final entry completes.
func NewSequence(sched *Scheduler, entries []SequenceEntry, onDone func()) *Sequence {
	return &Sequence{
		sched:   sched,
		entries: entries,
		onDone:  onDone,
	}
}

// State returns the sequence's current state.
func (q *Sequence) State() SequenceState {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state
}

// Index returns the position of the entry currently playing.
func (q *Sequence) Index() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.index
}

// Play starts the sequence from the beginning. Calling Play while already
// playing is a no-op; replaying a finished sequence restarts it.
func (q *Sequence) Play() {
	q.mu.Lock()
	if q.state == SequencePlaying {
		q.mu.Unlock()
		return
	}
	q.state = SequencePlaying
	q.index = 0
	q.mu.Unlock()
	q.playCurrent()
}

// Cancel stops the sequence, removing the entry in flight. The sequence
// returns to Idle and can be replayed.
func (q *Sequence) Cancel() {
	q.mu.Lock()
	if q.state != SequencePlaying {
		q.mu.Unlock()
		return
	}
	q.state = SequenceIdle
	id := q.current
	q.current = ""
	q.mu.Unlock()
	if id != "" {
		q.sched.Remove(id)
	}
}

func (q *Sequence) playCurrent() {
	q.mu.Lock()
	if q.state != SequencePlaying {
		q.mu.Unlock()
		return
	}
	if q.index >= len(q.entries) {
		q.state = SequenceDone
		q.current = ""
		done := q.onDone
		q.mu.Unlock()
		if done != nil {
			done()
		}
		return
	}
	entry := q.entries[q.index]
	id := uuid.NewString()
	q.current = id
	q.mu.Unlock()

	opts := entry.Options
	prev := opts.OnComplete
	opts.OnComplete = func() {
		if prev != nil {
			prev()
		}
		q.advance()
	}
	q.sched.Add(id, entry.Callback, opts)
}

// advance moves to the next entry. It is transitioned only by the
// scheduler's completion notification; a cancelled sequence ignores late
// completions.
func (q *Sequence) advance() {
	q.mu.Lock()
	if q.state != SequencePlaying {
		q.mu.Unlock()
		return
	}
	q.index++
	q.mu.Unlock()
	q.playCurrent()
}
