// Copyright (c) 2025 The Backchannel Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import (
	"log/slog"
	"sync"

	"backchannel/models"
)

// subscriberBuffer is how many undelivered changes a subscriber may
// accumulate before further changes are dropped for it.
const subscriberBuffer = 32

// Broker fans question changes out to group subscribers in-process.
// It implements store.Emitter.
type Broker struct {
	mu   sync.Mutex
	subs map[string]map[chan models.QuestionChange]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: map[string]map[chan models.QuestionChange]struct{}{},
	}
}

// Subscribe registers for a group's changes. The returned cancel
// function unregisters and closes the channel; it is safe to call more
// than once.
func (b *Broker) Subscribe(groupID string) (<-chan models.QuestionChange, func()) {
	ch := make(chan models.QuestionChange, subscriberBuffer)

	b.mu.Lock()
	group, ok := b.subs[groupID]
	if !ok {
		group = map[chan models.QuestionChange]struct{}{}
		b.subs[groupID] = group
	}
	group[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			if group, ok := b.subs[groupID]; ok {
				delete(group, ch)
				if len(group) == 0 {
					delete(b.subs, groupID)
				}
			}
			b.mu.Unlock()
			close(ch)
		})
	}

	return ch, cancel
}

// Emit delivers a change to every subscriber of its group. Delivery is
// best-effort: a subscriber that cannot keep up loses the change and
// must rely on the next one (every change carries the full question).
func (b *Broker) Emit(change models.QuestionChange) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.subs[change.GroupID] {
		select {
		case ch <- change:
		default:
			slog.Warn("dropping change for slow subscriber",
				"group_id", change.GroupID, "question_id", change.Question.ID)
		}
	}
}
