package anim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence_PlaysEntriesStrictlyInOrder(t *testing.T) {
	clock := newFakeClock()
	s := manualScheduler(clock)

	var order []string
	entries := []SequenceEntry{
		{
			Callback: func(eased, raw float64, elapsed time.Duration) {
				order = append(order, "a")
			},
			Options: AddOptions{Duration: 100 * time.Millisecond},
		},
		Delay(50 * time.Millisecond),
		{
			Callback: func(eased, raw float64, elapsed time.Duration) {
				order = append(order, "b")
			},
			Options: AddOptions{Duration: 100 * time.Millisecond},
		},
	}

	done := false
	seq := NewSequence(s, entries, func() { done = true })
	assert.Equal(t, SequenceIdle, seq.State())

	seq.Play()
	assert.Equal(t, SequencePlaying, seq.State())
	require.Equal(t, 1, s.Len(), "only one entry may be registered at a time")

	// Drive entry "a" to completion.
	s.Advance(clock.Step(60 * time.Millisecond))
	s.Advance(clock.Step(60 * time.Millisecond))
	assert.Equal(t, 1, seq.Index(), "delay entry did not start after a")

	// Drive the delay.
	s.Advance(clock.Step(60 * time.Millisecond))
	assert.Equal(t, 2, seq.Index())

	// No "b" ticks can have happened while a or the delay were playing.
	for _, name := range order {
		if name == "b" {
			t.Fatal("entry b advanced before its predecessor completed")
		}
	}

	// Drive entry "b" to completion.
	s.Advance(clock.Step(60 * time.Millisecond))
	s.Advance(clock.Step(60 * time.Millisecond))

	assert.Equal(t, SequenceDone, seq.State())
	assert.True(t, done, "onDone not fired")
	assert.Equal(t, 0, s.Len())
	assert.Contains(t, order, "b")
}

func TestSequence_EmptyCompletesImmediately(t *testing.T) {
	s := manualScheduler(newFakeClock())

	done := false
	seq := NewSequence(s, nil, func() { done = true })
	seq.Play()

	assert.Equal(t, SequenceDone, seq.State())
	assert.True(t, done)
	assert.Equal(t, 0, s.Len())
}

func TestSequence_Cancel(t *testing.T) {
	clock := newFakeClock()
	s := manualScheduler(clock)

	entries := []SequenceEntry{
		{Options: AddOptions{Duration: 100 * time.Millisecond}},
		{Options: AddOptions{Duration: 100 * time.Millisecond}},
	}
	done := false
	seq := NewSequence(s, entries, func() { done = true })
	seq.Play()
	require.Equal(t, 1, s.Len())

	seq.Cancel()
	assert.Equal(t, SequenceIdle, seq.State())
	assert.Equal(t, 0, s.Len(), "in-flight entry not removed")
	assert.False(t, done, "cancelled sequence fired onDone")

	// A cancelled sequence can be replayed from the start.
	seq.Play()
	assert.Equal(t, SequencePlaying, seq.State())
	assert.Equal(t, 0, seq.Index())
	assert.Equal(t, 1, s.Len())
}

func TestSequence_PlayWhilePlayingIsNoOp(t *testing.T) {
	clock := newFakeClock()
	s := manualScheduler(clock)

	seq := NewSequence(s, []SequenceEntry{
		{Options: AddOptions{Duration: 100 * time.Millisecond}},
	}, nil)
	seq.Play()
	seq.Play()
	assert.Equal(t, 1, s.Len())
}

func TestSequenceState_String(t *testing.T) {
	assert.Equal(t, "idle", SequenceIdle.String())
	assert.Equal(t, "playing", SequencePlaying.String())
	assert.Equal(t, "done", SequenceDone.String())
}
