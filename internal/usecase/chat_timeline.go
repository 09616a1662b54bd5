package usecase

import "conflive/internal/domain/entity"

// timelineCapacity bounds the chat timeline; the oldest entries are evicted
// first once the cap is reached.
const timelineCapacity = 100

// ChatTimeline is a bounded, ordered, deduplicated collection of chat items.
// It has no synchronization of its own: all access happens on the session's
// event loop goroutine.
type ChatTimeline struct {
	items []entity.ChatItem
}

func NewChatTimeline() *ChatTimeline {
	return &ChatTimeline{}
}

// InsertIfAbsent appends the item unless an item with the same ID already
// exists, then trims to the newest timelineCapacity entries. It reports
// whether the item was actually admitted.
func (t *ChatTimeline) InsertIfAbsent(item entity.ChatItem) bool {
	for _, existing := range t.items {
		if existing.ID == item.ID {
			return false
		}
	}
	t.items = append(t.items, item)
	if len(t.items) > timelineCapacity {
		t.items = t.items[len(t.items)-timelineCapacity:]
	}
	return true
}

// UpdateTranslation attaches translated text to the item with the given ID.
// A missing ID is not an error: the translation arrived for an item that has
// since been evicted, and is silently dropped.
func (t *ChatTimeline) UpdateTranslation(id, translatedText, dstLangCode string) bool {
	for i := range t.items {
		if t.items[i].ID == id {
			t.items[i].TranslatedText = translatedText
			t.items[i].DstLangCode = dstLangCode
			return true
		}
	}
	return false
}

// Clear drops every item. Used when the selected language changes: the held
// translations are only valid for one target language.
func (t *ChatTimeline) Clear() {
	t.items = nil
}

func (t *ChatTimeline) Len() int {
	return len(t.items)
}

// Items returns a copy of the timeline in arrival order.
func (t *ChatTimeline) Items() []entity.ChatItem {
	out := make([]entity.ChatItem, len(t.items))
	copy(out, t.items)
	return out
}
