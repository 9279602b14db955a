package state

import "sync/atomic"

// inboxSize must be a power of two for the index mask
const inboxSize = 256

const inboxMask = inboxSize - 1

// Inbox is a lock-free MPSC ring buffer carrying messages from background
// goroutines to the main loop.
//
// Thread-safety:
//   - Push: lock-free CAS, multiple producers OK
//   - Drain: single consumer (the shell, at the top of each tick)
//   - Published flags prevent reading partially written slots
//
// Overflow: oldest messages are overwritten when full.
type Inbox struct {
	messages  [inboxSize]Message
	published [inboxSize]atomic.Bool
	head      atomic.Uint64 // Read index
	tail      atomic.Uint64 // Write index
}

// NewInbox creates an empty inbox
func NewInbox() *Inbox {
	return &Inbox{}
}

// Push adds a message using CAS with published flags. Safe for concurrent
// producers.
func (in *Inbox) Push(msg Message) {
	for {
		currentTail := in.tail.Load()
		nextTail := currentTail + 1

		if in.tail.CompareAndSwap(currentTail, nextTail) {
			idx := currentTail & inboxMask

			in.messages[idx] = msg
			in.published[idx].Store(true) // MUST follow the slot write

			// Advance head if overwriting unread slots
			currentHead := in.head.Load()
			if nextTail-currentHead > inboxSize {
				in.head.CompareAndSwap(currentHead, nextTail-inboxSize)
			}
			return
		}
	}
}

// Drain returns all pending messages in FIFO order and advances the read
// index. Single-consumer only.
func (in *Inbox) Drain() []Message {
	currentHead := in.head.Load()
	currentTail := in.tail.Load()

	if currentHead == currentTail {
		return nil
	}

	count := currentTail - currentHead
	if count > inboxSize {
		count = inboxSize
		currentHead = currentTail - inboxSize
	}

	out := make([]Message, 0, count)
	for i := uint64(0); i < count; i++ {
		idx := (currentHead + i) & inboxMask
		if !in.published[idx].Load() {
			// Producer still writing this slot; stop here, the rest
			// arrives next tick
			count = i
			break
		}
		out = append(out, in.messages[idx])
		in.published[idx].Store(false)
	}

	in.head.Store(currentHead + count)
	return out
}
