package usecase

import "conflive/internal/domain/entity"

// translationDrainBatch bounds how many queued translation updates one drain
// step applies.
const translationDrainBatch = 10

// UpdateSerializer guarantees at most one in-flight mutation pass over the
// timeline per mutation class. Arrivals during a pass are queued and drained,
// in order, once the pass completes. This prevents a drain loop from
// re-entering itself; true parallelism is already excluded because every call
// happens on the session's event loop goroutine.
type UpdateSerializer struct {
	ChatInFlight        bool
	TranslationInFlight bool

	chatQueue        []entity.ChatItem
	translationQueue []entity.ChatItem
}

func NewUpdateSerializer() *UpdateSerializer {
	return &UpdateSerializer{}
}

// SubmitChat applies one incoming chat item through apply, or queues it if a
// chat pass is already in flight. After a direct application the pending
// queue is drained.
func (s *UpdateSerializer) SubmitChat(item entity.ChatItem, apply func(entity.ChatItem)) {
	if s.ChatInFlight {
		s.chatQueue = append(s.chatQueue, item)
		return
	}

	s.ChatInFlight = true
	apply(item)
	s.ChatInFlight = false

	s.DrainChat(apply)
}

// DrainChat applies queued chat items one at a time until the queue empties.
func (s *UpdateSerializer) DrainChat(apply func(entity.ChatItem)) {
	for len(s.chatQueue) > 0 {
		next := s.chatQueue[0]
		s.chatQueue = s.chatQueue[1:]
		apply(next)
	}
}

// SubmitTranslations applies a batch of translation updates through apply, or
// queues them if a translation pass is already in flight.
func (s *UpdateSerializer) SubmitTranslations(items []entity.ChatItem, apply func([]entity.ChatItem)) {
	if s.TranslationInFlight {
		s.translationQueue = append(s.translationQueue, items...)
		return
	}

	s.TranslationInFlight = true
	apply(items)
	s.TranslationInFlight = false

	s.DrainTranslations(apply)
}

// DrainTranslations applies queued translation updates in batches of up to
// translationDrainBatch until the queue empties. Batching bounds the cost of
// a single drain step when translations return in bursts.
func (s *UpdateSerializer) DrainTranslations(apply func([]entity.ChatItem)) {
	for len(s.translationQueue) > 0 {
		n := len(s.translationQueue)
		if n > translationDrainBatch {
			n = translationDrainBatch
		}
		batch := s.translationQueue[:n]
		s.translationQueue = s.translationQueue[n:]
		apply(batch)
	}
}

// ClearQueues drops all pending work. Called when the timeline is cleared on
// a language change so stale items cannot be re-admitted afterwards.
func (s *UpdateSerializer) ClearQueues() {
	s.chatQueue = nil
	s.translationQueue = nil
}

// QueuedChats returns a copy of the pending chat queue.
func (s *UpdateSerializer) QueuedChats() []entity.ChatItem {
	out := make([]entity.ChatItem, len(s.chatQueue))
	copy(out, s.chatQueue)
	return out
}

// QueuedTranslations returns a copy of the pending translation queue.
func (s *UpdateSerializer) QueuedTranslations() []entity.ChatItem {
	out := make([]entity.ChatItem, len(s.translationQueue))
	copy(out, s.translationQueue)
	return out
}
