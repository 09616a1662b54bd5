package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conflive/internal/domain/entity"
)

// fakeTransport is a controllable StreamTransport. Each OpenStream call
// yields a fresh channel the test feeds events into; cancellation emits a
// Disconnect and closes the channel, like the live client.
type fakeTransport struct {
	mu sync.Mutex

	langSet     *entity.LangSet
	langSetErr  error
	langList    []entity.LanguageItem
	langListErr error
	roomInfo    *entity.RoomInfo
	roomInfoErr error

	openErr error

	langSetCalls    []string
	translationReqs [][]entity.TranslationRequest
	streams         []chan entity.StreamEvent
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		langSet: &entity.LangSet{Data: map[string]string{"en": "English"}},
		langList: []entity.LanguageItem{
			{ID: "en", LangCode: "en", Name: "English"},
			{ID: "ja", LangCode: "ja", Name: "日本語"},
			{ID: "zh-TW", LangCode: "zh-TW", Name: "中文（繁體）"},
		},
		roomInfo: &entity.RoomInfo{ChatRoomID: "490294", ChatRoomTitle: "iPlayground"},
	}
}

func (f *fakeTransport) OpenStream(ctx context.Context, roomID string) (<-chan entity.StreamEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.openErr != nil {
		return nil, f.openErr
	}

	ch := make(chan entity.StreamEvent, 256)
	f.streams = append(f.streams, ch)

	go func() {
		<-ctx.Done()
		ch <- entity.StreamEvent{Type: entity.StreamDisconnect}
		close(ch)
	}()

	return ch, nil
}

func (f *fakeTransport) RequestBatchTranslation(ctx context.Context, requests []entity.TranslationRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.translationReqs = append(f.translationReqs, requests)
	return nil
}

func (f *fakeTransport) GetLangSet(ctx context.Context, langCode string) (*entity.LangSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.langSetCalls = append(f.langSetCalls, langCode)
	if f.langSetErr != nil {
		return nil, f.langSetErr
	}
	return f.langSet, nil
}

func (f *fakeTransport) GetLangList(ctx context.Context) ([]entity.LanguageItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.langListErr != nil {
		return nil, f.langListErr
	}
	return f.langList, nil
}

func (f *fakeTransport) GetChatRoomInfo(ctx context.Context, roomID string) (*entity.RoomInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.roomInfoErr != nil {
		return nil, f.roomInfoErr
	}
	return f.roomInfo, nil
}

func (f *fakeTransport) streamCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.streams)
}

func (f *fakeTransport) stream(i int) chan entity.StreamEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.streams[i]
}

func (f *fakeTransport) langSetCallsSnapshot() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.langSetCalls))
	copy(out, f.langSetCalls)
	return out
}

func (f *fakeTransport) translationReqCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.translationReqs)
}

func startSession(t *testing.T, transport StreamTransport, opts SessionOptions) *LiveTranslationSession {
	t.Helper()
	if opts.RoomID == "" {
		opts.RoomID = "490294"
	}
	if opts.DefaultRoomTitle == "" {
		opts.DefaultRoomTitle = "Live Translation"
	}

	session := NewLiveTranslationSession("test-session", transport, opts)
	session.Start(context.Background())
	t.Cleanup(session.Close)
	return session
}

func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	assert.Eventually(t, cond, 2*time.Second, 5*time.Millisecond)
}

func streamChat(id string) entity.StreamEvent {
	item := chatItem(id)
	return entity.StreamEvent{Type: entity.StreamChatResponse, Chat: &item}
}

func TestInitialState(t *testing.T) {
	session := NewLiveTranslationSession("s", newFakeTransport(), SessionOptions{RoomID: "490294"})
	state := session.State()

	assert.Empty(t, state.ChatList)
	assert.Nil(t, state.LangSet)
	assert.Empty(t, state.LangList)
	assert.Nil(t, state.RoomInfo)
	assert.Equal(t, "en", state.SelectedLangCode)
	assert.False(t, state.IsConnected)
	assert.True(t, state.IsLoading)
	assert.False(t, state.IsShowingLanguageSheet)
	assert.False(t, state.HasLoadedLangSet)
	assert.False(t, state.HasLoadedLangList)
	assert.False(t, state.HasLoadedRoomInfo)
	assert.Empty(t, state.ErrorMessage)
}

func TestInitialLoadCompletes(t *testing.T) {
	transport := newFakeTransport()
	session := startSession(t, transport, SessionOptions{PreferredLocale: "en"})

	session.Activate()

	eventually(t, func() bool { return !session.State().IsLoading })

	state := session.State()
	assert.True(t, state.HasLoadedLangSet)
	assert.True(t, state.HasLoadedLangList)
	assert.True(t, state.HasLoadedRoomInfo)
	assert.Empty(t, state.ErrorMessage)
	require.NotNil(t, state.RoomInfo)
	assert.Equal(t, "iPlayground", state.RoomInfo.ChatRoomTitle)
	assert.NotNil(t, state.LangSet)
	assert.Len(t, state.LangList, 3)
	assert.Equal(t, "en", state.SelectedLangCode)
}

func TestInitialLanguageResolution(t *testing.T) {
	transport := newFakeTransport()
	session := startSession(t, transport, SessionOptions{PreferredLocale: "zh-Hant"})

	session.Activate()

	eventually(t, func() bool {
		return session.State().SelectedLangCode == "zh-TW"
	})

	// The language set is fetched a second time for the resolved code.
	eventually(t, func() bool {
		for _, call := range transport.langSetCallsSnapshot() {
			if call == "zh-TW" {
				return true
			}
		}
		return false
	})

	eventually(t, func() bool { return !session.State().IsLoading })
	assert.Empty(t, session.State().ErrorMessage)
}

func TestRoomInfoFailureFallsBackToDefault(t *testing.T) {
	transport := newFakeTransport()
	transport.roomInfoErr = fmt.Errorf("backend unavailable")

	session := startSession(t, transport, SessionOptions{
		RoomID:           "490294",
		DefaultRoomTitle: "Live Translation",
		PreferredLocale:  "en",
	})
	session.Activate()

	eventually(t, func() bool { return !session.State().IsLoading })

	state := session.State()
	assert.Empty(t, state.ErrorMessage)
	require.NotNil(t, state.RoomInfo)
	assert.Equal(t, "490294", state.RoomInfo.ChatRoomID)
	assert.Equal(t, "Live Translation", state.RoomInfo.ChatRoomTitle)
}

func TestLangListFailureEndsLoadingWithError(t *testing.T) {
	transport := newFakeTransport()
	transport.langListErr = fmt.Errorf("backend unavailable")

	session := startSession(t, transport, SessionOptions{PreferredLocale: "en"})
	session.Activate()

	eventually(t, func() bool {
		state := session.State()
		return !state.IsLoading && state.ErrorMessage != ""
	})

	assert.False(t, session.State().HasLoadedLangList)
}

func TestLangSetFailureEndsLoadingWithError(t *testing.T) {
	transport := newFakeTransport()
	transport.langSetErr = fmt.Errorf("backend unavailable")

	session := startSession(t, transport, SessionOptions{PreferredLocale: "fr-CA"})
	session.Activate()

	eventually(t, func() bool {
		state := session.State()
		return !state.IsLoading && state.ErrorMessage != ""
	})
}

func TestStreamChatAndTranslationFlow(t *testing.T) {
	transport := newFakeTransport()
	session := startSession(t, transport, SessionOptions{PreferredLocale: "en"})

	session.ConnectStream()
	eventually(t, func() bool { return transport.streamCount() == 1 })

	stream := transport.stream(0)
	stream <- entity.StreamEvent{Type: entity.StreamConnect}
	eventually(t, func() bool { return session.State().IsConnected })

	stream <- streamChat("m1")
	stream <- streamChat("m2")
	eventually(t, func() bool { return len(session.State().ChatList) == 2 })

	// One translation request per admitted item, targeting the selected
	// language at issue time.
	eventually(t, func() bool { return transport.translationReqCount() == 2 })
	transport.mu.Lock()
	var req *entity.TranslationRequest
	for _, batch := range transport.translationReqs {
		for i := range batch {
			if batch[i].ChatID == "m1" {
				req = &batch[i]
			}
		}
	}
	transport.mu.Unlock()
	require.NotNil(t, req)
	assert.Equal(t, "en", req.DstLangCode)
	assert.Equal(t, "ja", req.SrcLangCode)

	// Translation merges into the matching item.
	stream <- entity.StreamEvent{
		Type: entity.StreamBatchTranslationResponse,
		Translations: []entity.ChatItem{
			{ID: "m1", TranslatedText: "hello", DstLangCode: "en"},
		},
	}
	eventually(t, func() bool {
		list := session.State().ChatList
		return len(list) == 2 && list[0].TranslatedText == "hello" && list[0].DstLangCode == "en"
	})
	// Original text untouched.
	assert.Equal(t, "message m1", session.State().ChatList[0].Text)
}

func TestDuplicateChatRedeliveryIsIdempotent(t *testing.T) {
	transport := newFakeTransport()
	session := startSession(t, transport, SessionOptions{PreferredLocale: "en"})

	session.ConnectStream()
	eventually(t, func() bool { return transport.streamCount() == 1 })

	stream := transport.stream(0)
	stream <- streamChat("m1")
	stream <- streamChat("m1")
	stream <- streamChat("m2")

	eventually(t, func() bool { return len(session.State().ChatList) == 2 })

	// Only admitted items trigger translation requests.
	eventually(t, func() bool { return transport.translationReqCount() == 2 })
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 2, transport.translationReqCount())
}

func TestTranslationForUnknownIDIsNoop(t *testing.T) {
	transport := newFakeTransport()
	session := startSession(t, transport, SessionOptions{PreferredLocale: "en"})

	session.ConnectStream()
	eventually(t, func() bool { return transport.streamCount() == 1 })

	stream := transport.stream(0)
	stream <- streamChat("m1")
	eventually(t, func() bool { return len(session.State().ChatList) == 1 })

	stream <- entity.StreamEvent{
		Type: entity.StreamBatchTranslationResponse,
		Translations: []entity.ChatItem{
			{ID: "evicted", TranslatedText: "stale", DstLangCode: "en"},
		},
	}
	stream <- streamChat("m2")

	eventually(t, func() bool { return len(session.State().ChatList) == 2 })
	for _, item := range session.State().ChatList {
		assert.Empty(t, item.TranslatedText)
	}
}

func TestTimelineBoundedUnderStreamLoad(t *testing.T) {
	transport := newFakeTransport()
	session := startSession(t, transport, SessionOptions{PreferredLocale: "en"})

	session.ConnectStream()
	eventually(t, func() bool { return transport.streamCount() == 1 })

	stream := transport.stream(0)
	total := 110
	go func() {
		for i := 0; i < total; i++ {
			stream <- streamChat(fmt.Sprintf("id-%03d", i))
		}
	}()

	eventually(t, func() bool {
		list := session.State().ChatList
		return len(list) == timelineCapacity && list[0].ID == "id-010"
	})

	list := session.State().ChatList
	assert.Equal(t, fmt.Sprintf("id-%03d", total-1), list[len(list)-1].ID)
}

func TestPeerClosedReconnects(t *testing.T) {
	transport := newFakeTransport()
	session := startSession(t, transport, SessionOptions{PreferredLocale: "en"})

	session.ConnectStream()
	eventually(t, func() bool { return transport.streamCount() == 1 })

	transport.stream(0) <- entity.StreamEvent{Type: entity.StreamConnect}
	eventually(t, func() bool { return session.State().IsConnected })

	transport.stream(0) <- entity.StreamEvent{Type: entity.StreamPeerClosed}

	// A replacement subscription is opened automatically.
	eventually(t, func() bool { return transport.streamCount() == 2 })

	transport.stream(1) <- entity.StreamEvent{Type: entity.StreamConnect}
	eventually(t, func() bool { return session.State().IsConnected })
}

func TestManualDisconnectDoesNotReconnect(t *testing.T) {
	transport := newFakeTransport()
	session := startSession(t, transport, SessionOptions{PreferredLocale: "en"})

	session.ConnectStream()
	eventually(t, func() bool { return transport.streamCount() == 1 })

	transport.stream(0) <- entity.StreamEvent{Type: entity.StreamConnect}
	eventually(t, func() bool { return session.State().IsConnected })

	session.DisconnectStream()
	eventually(t, func() bool { return !session.State().IsConnected })

	assert.Never(t, func() bool {
		return transport.streamCount() > 1
	}, 200*time.Millisecond, 20*time.Millisecond)
}

func TestChangeLanguageClearsTimelineAndReconnects(t *testing.T) {
	transport := newFakeTransport()
	session := startSession(t, transport, SessionOptions{PreferredLocale: "en"})

	session.ShowLanguageSheet()
	eventually(t, func() bool { return session.State().IsShowingLanguageSheet })

	session.ConnectStream()
	eventually(t, func() bool { return transport.streamCount() == 1 })

	stream := transport.stream(0)
	stream <- streamChat("m1")
	stream <- streamChat("m2")
	eventually(t, func() bool { return len(session.State().ChatList) == 2 })

	session.ChangeLanguage("ja")

	eventually(t, func() bool {
		state := session.State()
		return state.SelectedLangCode == "ja" &&
			len(state.ChatList) == 0 &&
			!state.IsShowingLanguageSheet
	})

	// The stream is reconnected and the language set refreshed for "ja".
	eventually(t, func() bool { return transport.streamCount() == 2 })
	eventually(t, func() bool {
		calls := transport.langSetCallsSnapshot()
		return len(calls) > 0 && calls[len(calls)-1] == "ja"
	})
}

func TestSubscribeReceivesSnapshots(t *testing.T) {
	transport := newFakeTransport()
	session := startSession(t, transport, SessionOptions{PreferredLocale: "en"})

	id, states := session.Subscribe()
	defer session.Unsubscribe(id)

	session.ShowLanguageSheet()

	select {
	case state := <-states:
		assert.True(t, state.IsShowingLanguageSheet)
	case <-time.After(2 * time.Second):
		t.Fatal("no state snapshot received")
	}
}
