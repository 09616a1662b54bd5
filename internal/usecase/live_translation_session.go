package usecase

import (
	"context"
	"fmt"
	"sync"

	"conflive/internal/domain/entity"
	"conflive/pkg/logger"
)

// SessionState is the view-facing snapshot of one live-translation session.
type SessionState struct {
	ChatList               []entity.ChatItem     `json:"chat_list"`
	LangSet                *entity.LangSet       `json:"lang_set,omitempty"`
	LangList               []entity.LanguageItem `json:"lang_list"`
	RoomInfo               *entity.RoomInfo      `json:"room_info,omitempty"`
	SelectedLangCode       string                `json:"selected_lang_code"`
	IsConnected            bool                  `json:"is_connected"`
	IsLoading              bool                  `json:"is_loading"`
	IsShowingLanguageSheet bool                  `json:"is_showing_language_sheet"`
	IsUpdatingChat         bool                  `json:"is_updating_chat"`
	IsUpdatingTranslation  bool                  `json:"is_updating_translation"`
	UpdateChatQueue        []entity.ChatItem     `json:"update_chat_queue,omitempty"`
	UpdateTranslationQueue []entity.ChatItem     `json:"update_translation_queue,omitempty"`
	HasLoadedLangSet       bool                  `json:"has_loaded_lang_set"`
	HasLoadedLangList      bool                  `json:"has_loaded_lang_list"`
	HasLoadedRoomInfo      bool                  `json:"has_loaded_room_info"`
	ErrorMessage           string                `json:"error_message,omitempty"`
}

// SessionOptions carries the host-supplied configuration for a session. The
// room id is an explicit parameter, never ambient state.
type SessionOptions struct {
	RoomID           string
	DefaultRoomTitle string
	PreferredLocale  string
}

// LiveTranslationSession coordinates one client's live-translation view of a
// chat room. All state transitions run on a single event-loop goroutine;
// fetches and the stream subscription are independent tasks that post their
// results back onto that loop. The loop is the only writer of session state.
type LiveTranslationSession struct {
	ID string

	transport StreamTransport
	opts      SessionOptions

	ctx    context.Context
	cancel context.CancelFunc
	events chan func()

	mu         sync.RWMutex
	timeline   *ChatTimeline
	serializer *UpdateSerializer

	langSet                *entity.LangSet
	langList               []entity.LanguageItem
	roomInfo               *entity.RoomInfo
	selectedLangCode       string
	isConnected            bool
	isLoading              bool
	isShowingLanguageSheet bool

	hasLoadedLangSet  bool
	hasLoadedLangList bool
	hasLoadedRoomInfo bool
	errorMessage      string

	// streamCancel tears down the current subscription; at most one is live.
	streamCancel context.CancelFunc

	subMu   sync.Mutex
	subs    map[int]chan SessionState
	nextSub int
}

func NewLiveTranslationSession(id string, transport StreamTransport, opts SessionOptions) *LiveTranslationSession {
	if opts.PreferredLocale == "" {
		opts.PreferredLocale = "en"
	}
	return &LiveTranslationSession{
		ID:               id,
		transport:        transport,
		opts:             opts,
		events:           make(chan func(), 64),
		timeline:         NewChatTimeline(),
		serializer:       NewUpdateSerializer(),
		selectedLangCode: "en",
		isLoading:        true,
		subs:             make(map[int]chan SessionState),
	}
}

// Start launches the event loop. It must be called exactly once.
func (s *LiveTranslationSession) Start(ctx context.Context) {
	s.ctx, s.cancel = context.WithCancel(ctx)
	go s.run()
}

// Close tears down the loop, the stream subscription, and all subscribers.
func (s *LiveTranslationSession) Close() {
	s.cancel()

	s.subMu.Lock()
	for id, ch := range s.subs {
		close(ch)
		delete(s.subs, id)
	}
	s.subMu.Unlock()
}

func (s *LiveTranslationSession) run() {
	for {
		select {
		case <-s.ctx.Done():
			return
		case fn := <-s.events:
			s.mu.Lock()
			fn()
			s.mu.Unlock()
			s.broadcast()
		}
	}
}

// post schedules fn on the event loop. Events posted after Close are dropped.
func (s *LiveTranslationSession) post(fn func()) {
	select {
	case s.events <- fn:
	case <-s.ctx.Done():
	}
}

// State returns a snapshot of the session.
func (s *LiveTranslationSession) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *LiveTranslationSession) snapshotLocked() SessionState {
	langList := make([]entity.LanguageItem, len(s.langList))
	copy(langList, s.langList)

	return SessionState{
		ChatList:               s.timeline.Items(),
		LangSet:                s.langSet,
		LangList:               langList,
		RoomInfo:               s.roomInfo,
		SelectedLangCode:       s.selectedLangCode,
		IsConnected:            s.isConnected,
		IsLoading:              s.isLoading,
		IsShowingLanguageSheet: s.isShowingLanguageSheet,
		IsUpdatingChat:         s.serializer.ChatInFlight,
		IsUpdatingTranslation:  s.serializer.TranslationInFlight,
		UpdateChatQueue:        s.serializer.QueuedChats(),
		UpdateTranslationQueue: s.serializer.QueuedTranslations(),
		HasLoadedLangSet:       s.hasLoadedLangSet,
		HasLoadedLangList:      s.hasLoadedLangList,
		HasLoadedRoomInfo:      s.hasLoadedRoomInfo,
		ErrorMessage:           s.errorMessage,
	}
}

// Subscribe registers a state listener. Snapshots are pushed after every
// applied event; slow consumers miss intermediate snapshots, never the final
// one still pending in their buffer.
func (s *LiveTranslationSession) Subscribe() (int, <-chan SessionState) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	s.nextSub++
	id := s.nextSub
	ch := make(chan SessionState, 8)
	s.subs[id] = ch
	return id, ch
}

func (s *LiveTranslationSession) Unsubscribe(id int) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	if ch, ok := s.subs[id]; ok {
		close(ch)
		delete(s.subs, id)
	}
}

func (s *LiveTranslationSession) broadcast() {
	state := s.State()

	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- state:
		default:
		}
	}
}

// Activate kicks off the initial three-way metadata load: language set for
// the selected code, full language list, and room info, all concurrently.
func (s *LiveTranslationSession) Activate() {
	s.post(func() {
		s.isLoading = true
		s.errorMessage = ""
		s.hasLoadedLangSet = false
		s.hasLoadedLangList = false
		s.hasLoadedRoomInfo = false

		code := s.selectedLangCode
		go s.fetchLangSet(code, true)
		go s.fetchLangList()
		go s.fetchRoomInfo()
	})
}

// fetchLangSet loads the language set for code. During the initial load the
// fetch is required and a failure ends loading with an error; refreshes after
// language resolution or a language change are logged only.
func (s *LiveTranslationSession) fetchLangSet(code string, required bool) {
	langSet, err := s.transport.GetLangSet(s.ctx, code)
	if err != nil {
		if required {
			s.post(func() {
				s.applyLoadError(fmt.Sprintf("Failed to load language set: %v", err))
			})
		} else {
			logger.Error("Failed to load language set for %s: %v", code, err)
		}
		return
	}

	s.post(func() {
		s.langSet = langSet
		s.hasLoadedLangSet = true
		s.checkLoadingCompleted()
	})
}

func (s *LiveTranslationSession) fetchLangList() {
	langList, err := s.transport.GetLangList(s.ctx)
	if err != nil {
		s.post(func() {
			s.applyLoadError(fmt.Sprintf("Failed to load language list: %v", err))
		})
		return
	}

	s.post(func() {
		s.langList = langList
		s.hasLoadedLangList = true

		// Resolve the initial display language now that the available codes
		// are known; a switch requires one extra language-set round trip.
		resolved := ResolveInitialLanguage(s.opts.PreferredLocale, AvailableCodes(langList))
		if resolved != s.selectedLangCode {
			s.selectedLangCode = resolved
			go s.fetchLangSet(resolved, false)
		}

		s.checkLoadingCompleted()
	})
}

// fetchRoomInfo is best-effort: a failure synthesizes a default so loading
// can still complete, and never sets the error message.
func (s *LiveTranslationSession) fetchRoomInfo() {
	roomInfo, err := s.transport.GetChatRoomInfo(s.ctx, s.opts.RoomID)
	if err != nil {
		logger.Warn("Failed to load chat room info: %v", err)
		roomInfo = &entity.RoomInfo{
			ChatRoomID:    s.opts.RoomID,
			ChatRoomTitle: s.opts.DefaultRoomTitle,
		}
	}

	s.post(func() {
		s.roomInfo = roomInfo
		s.hasLoadedRoomInfo = true
		s.checkLoadingCompleted()
	})
}

func (s *LiveTranslationSession) checkLoadingCompleted() {
	if s.hasLoadedLangSet && s.hasLoadedLangList && s.hasLoadedRoomInfo {
		s.isLoading = false
	}
}

func (s *LiveTranslationSession) applyLoadError(msg string) {
	s.errorMessage = msg
	s.isLoading = false
	logger.Error("Live translation error: %s", msg)
}

// ConnectStream opens the room subscription, replacing any live one.
func (s *LiveTranslationSession) ConnectStream() {
	s.post(s.connectStreamLocked)
}

// connectStreamLocked must run on the event loop. Reconnecting cancels the
// previous subscription first so at most one is ever live.
func (s *LiveTranslationSession) connectStreamLocked() {
	if s.streamCancel != nil {
		s.streamCancel()
	}
	streamCtx, cancel := context.WithCancel(s.ctx)
	s.streamCancel = cancel
	go s.consumeStream(streamCtx)
}

// DisconnectStream cancels the subscription. No reconnect follows a manual
// disconnect.
func (s *LiveTranslationSession) DisconnectStream() {
	s.post(func() {
		if s.streamCancel != nil {
			s.streamCancel()
			s.streamCancel = nil
		}
	})
}

func (s *LiveTranslationSession) consumeStream(ctx context.Context) {
	events, err := s.transport.OpenStream(ctx, s.opts.RoomID)
	if err != nil {
		logger.Error("Stream connection failed: %v", err)
		s.post(func() { s.isConnected = false })
		return
	}

	sawTerminal := false
	for ev := range events {
		if ev.Type == entity.StreamDisconnect || ev.Type == entity.StreamPeerClosed {
			sawTerminal = true
		}
		ev := ev
		s.post(func() { s.handleStreamEvent(ev) })
	}

	// Closed without a terminal event and without cancellation: the stream
	// failed. Connection state is updated, no error is surfaced.
	if ctx.Err() == nil && !sawTerminal {
		logger.Error("Stream for room %s closed unexpectedly", s.opts.RoomID)
		s.post(func() { s.isConnected = false })
	}
}

func (s *LiveTranslationSession) handleStreamEvent(ev entity.StreamEvent) {
	switch ev.Type {
	case entity.StreamConnect:
		s.isConnected = true
		logger.Info("Connected to live translation stream for room %s", s.opts.RoomID)

	case entity.StreamDisconnect:
		s.isConnected = false
		logger.Info("Disconnected from live translation stream")

	case entity.StreamPeerClosed:
		s.isConnected = false
		logger.Info("Peer closed live translation stream, reconnecting")
		s.connectStreamLocked()

	case entity.StreamChatResponse:
		if ev.Chat == nil {
			return
		}
		s.serializer.SubmitChat(*ev.Chat, s.admitChat)

	case entity.StreamBatchTranslationResponse:
		s.serializer.SubmitTranslations(ev.Translations, s.applyTranslations)
	}
}

// admitChat inserts one chat item and, if it was actually admitted rather
// than deduplicated, requests its translation for the currently selected
// language.
func (s *LiveTranslationSession) admitChat(item entity.ChatItem) {
	if s.timeline.InsertIfAbsent(item) {
		s.requestTranslation([]entity.ChatItem{item})
	}
}

func (s *LiveTranslationSession) applyTranslations(items []entity.ChatItem) {
	for _, item := range items {
		s.timeline.UpdateTranslation(item.ID, item.TranslatedText, item.DstLangCode)
	}
}

// requestTranslation issues a batch-translation request for the given items.
// The destination code is captured at issue time. Fire and forget: failures
// are logged, never retried.
func (s *LiveTranslationSession) requestTranslation(items []entity.ChatItem) {
	dstLangCode := s.selectedLangCode

	requests := make([]entity.TranslationRequest, 0, len(items))
	for _, item := range items {
		requests = append(requests, entity.TranslationRequest{
			ChatRoomID:  item.ChatID,
			ChatID:      item.ID,
			SrcLangCode: item.SrcLangCode,
			DstLangCode: dstLangCode,
			Timestamp:   item.Timestamp,
			Text:        item.Text,
		})
	}

	go func() {
		if err := s.transport.RequestBatchTranslation(s.ctx, requests); err != nil {
			logger.LogSessionError(s.ID, "request_translation", err)
		}
	}()
}

// ChangeLanguage switches the target language. The timeline is cleared,
// since held translations are only valid for one target language, and the
// stream is reconnected so the backend delivers translations for the new one.
func (s *LiveTranslationSession) ChangeLanguage(code string) {
	s.post(func() {
		s.selectedLangCode = code
		s.isShowingLanguageSheet = false
		s.timeline.Clear()
		s.serializer.ClearQueues()

		go s.fetchLangSet(code, false)
		s.connectStreamLocked()
	})
}

func (s *LiveTranslationSession) ShowLanguageSheet() {
	s.post(func() { s.isShowingLanguageSheet = true })
}

func (s *LiveTranslationSession) HideLanguageSheet() {
	s.post(func() { s.isShowingLanguageSheet = false })
}
