package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"conflive/internal/infrastructure/ratelimit"
	"conflive/pkg/errors"
	"conflive/pkg/logger"
)

type LiveTranslationUseCase struct {
	transport   StreamTransport
	rateLimiter *ratelimit.RateLimiter

	roomID           string
	defaultRoomTitle string
	defaultLocale    string
	roomPageBase     string
	maxSessions      int

	mu       sync.RWMutex
	sessions map[string]*LiveTranslationSession
}

func NewLiveTranslationUseCase(
	transport StreamTransport,
	roomID string,
	defaultRoomTitle string,
	defaultLocale string,
	roomPageBase string,
	maxSessions int,
) *LiveTranslationUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	return &LiveTranslationUseCase{
		transport:        transport,
		rateLimiter:      rateLimiter,
		roomID:           roomID,
		defaultRoomTitle: defaultRoomTitle,
		defaultLocale:    defaultLocale,
		roomPageBase:     roomPageBase,
		maxSessions:      maxSessions,
		sessions:         make(map[string]*LiveTranslationSession),
	}
}

// CreateSession starts a new coordinator for one UI client and triggers its
// initial load. clientKey identifies the caller for rate limiting.
func (uc *LiveTranslationUseCase) CreateSession(ctx context.Context, clientKey, preferredLocale string) (*LiveTranslationSession, error) {
	allowed, waitTime := uc.rateLimiter.Allow(clientKey, "create_session")
	if !allowed {
		logger.Warn("CreateSession rate limited: client %s must wait %v", clientKey, waitTime)
		return nil, errors.TooManyRequests("Rate limit exceeded. Please wait before creating another session")
	}

	if preferredLocale == "" {
		preferredLocale = uc.defaultLocale
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if len(uc.sessions) >= uc.maxSessions {
		return nil, errors.TooManyRequests("Maximum number of translation sessions reached")
	}

	session := NewLiveTranslationSession(uuid.NewString(), uc.transport, SessionOptions{
		RoomID:           uc.roomID,
		DefaultRoomTitle: uc.defaultRoomTitle,
		PreferredLocale:  preferredLocale,
	})

	// Sessions outlive the creating request; their lifetime is bounded by
	// CloseSession or server shutdown.
	session.Start(context.Background())
	session.Activate()

	uc.sessions[session.ID] = session
	logger.Info("Created translation session %s (locale %s)", session.ID, preferredLocale)

	return session, nil
}

func (uc *LiveTranslationUseCase) GetSession(id string) (*LiveTranslationSession, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	session, ok := uc.sessions[id]
	if !ok {
		return nil, errors.NotFound("Translation session", nil)
	}
	return session, nil
}

func (uc *LiveTranslationUseCase) CloseSession(id string) error {
	uc.mu.Lock()
	session, ok := uc.sessions[id]
	if ok {
		delete(uc.sessions, id)
	}
	uc.mu.Unlock()

	if !ok {
		return errors.NotFound("Translation session", nil)
	}

	session.Close()
	logger.Info("Closed translation session %s", id)
	return nil
}

// ChangeLanguage switches a session's target language, rate limited per
// client because every change reconnects the upstream stream.
func (uc *LiveTranslationUseCase) ChangeLanguage(clientKey, id, langCode string) error {
	allowed, waitTime := uc.rateLimiter.Allow(clientKey, "change_language")
	if !allowed {
		logger.Warn("ChangeLanguage rate limited: client %s must wait %v", clientKey, waitTime)
		return errors.TooManyRequests("Rate limit exceeded. Please wait before switching languages again")
	}

	session, err := uc.GetSession(id)
	if err != nil {
		return err
	}

	session.ChangeLanguage(langCode)
	return nil
}

// RoomPageURL returns the external chat web page for the configured room.
func (uc *LiveTranslationUseCase) RoomPageURL() string {
	return fmt.Sprintf("%s/%s", uc.roomPageBase, uc.roomID)
}

// SessionCount reports how many sessions are live.
func (uc *LiveTranslationUseCase) SessionCount() int {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return len(uc.sessions)
}

// Shutdown closes every live session.
func (uc *LiveTranslationUseCase) Shutdown() {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	for id, session := range uc.sessions {
		session.Close()
		delete(uc.sessions, id)
	}
}
