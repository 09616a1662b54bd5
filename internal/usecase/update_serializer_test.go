package usecase

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"conflive/internal/domain/entity"
)

func TestSubmitChatAppliesDirectlyWhenIdle(t *testing.T) {
	s := NewUpdateSerializer()

	var applied []string
	s.SubmitChat(chatItem("a"), func(item entity.ChatItem) {
		applied = append(applied, item.ID)
	})

	assert.Equal(t, []string{"a"}, applied)
	assert.False(t, s.ChatInFlight)
	assert.Empty(t, s.QueuedChats())
}

func TestSubmitChatQueuesWhileInFlight(t *testing.T) {
	s := NewUpdateSerializer()
	s.ChatInFlight = true

	var applied []string
	apply := func(item entity.ChatItem) {
		applied = append(applied, item.ID)
	}

	// 12 rapid arrivals while a pass is (artificially) in flight.
	for i := 0; i < 12; i++ {
		s.SubmitChat(chatItem(fmt.Sprintf("id-%02d", i)), apply)
	}

	assert.Empty(t, applied)
	assert.Len(t, s.QueuedChats(), 12)

	// Release the flag and drain: all 12 applied in arrival order, no
	// duplicates, no drops.
	s.ChatInFlight = false
	s.DrainChat(apply)

	assert.Len(t, applied, 12)
	for i, id := range applied {
		assert.Equal(t, fmt.Sprintf("id-%02d", i), id)
	}
	assert.Empty(t, s.QueuedChats())
}

func TestSubmitTranslationsQueuesWhileInFlight(t *testing.T) {
	s := NewUpdateSerializer()
	s.TranslationInFlight = true

	var batches [][]entity.ChatItem
	apply := func(items []entity.ChatItem) {
		batch := make([]entity.ChatItem, len(items))
		copy(batch, items)
		batches = append(batches, batch)
	}

	var queued []entity.ChatItem
	for i := 0; i < 25; i++ {
		queued = append(queued, chatItem(fmt.Sprintf("tr-%02d", i)))
	}
	s.SubmitTranslations(queued, apply)

	assert.Empty(t, batches)
	assert.Len(t, s.QueuedTranslations(), 25)

	// Drain applies in batches of at most 10 and preserves order.
	s.TranslationInFlight = false
	s.DrainTranslations(apply)

	assert.Len(t, batches, 3)
	assert.Len(t, batches[0], 10)
	assert.Len(t, batches[1], 10)
	assert.Len(t, batches[2], 5)

	i := 0
	for _, batch := range batches {
		for _, item := range batch {
			assert.Equal(t, fmt.Sprintf("tr-%02d", i), item.ID)
			i++
		}
	}
}

func TestClearQueues(t *testing.T) {
	s := NewUpdateSerializer()
	s.ChatInFlight = true
	s.TranslationInFlight = true
	s.SubmitChat(chatItem("a"), nil)
	s.SubmitTranslations([]entity.ChatItem{chatItem("b")}, nil)

	s.ClearQueues()

	assert.Empty(t, s.QueuedChats())
	assert.Empty(t, s.QueuedTranslations())
}
