package usecase

import (
	"context"

	"conflive/internal/domain/entity"
)

// StreamTransport is the live-translation backend client. OpenStream yields
// events until the subscription ends; the returned channel is closed when the
// context is canceled or the connection is lost. A close without a preceding
// Disconnect or PeerClosed event means the stream failed.
type StreamTransport interface {
	OpenStream(ctx context.Context, roomID string) (<-chan entity.StreamEvent, error)
	RequestBatchTranslation(ctx context.Context, requests []entity.TranslationRequest) error
	GetLangSet(ctx context.Context, langCode string) (*entity.LangSet, error)
	GetLangList(ctx context.Context) ([]entity.LanguageItem, error)
	GetChatRoomInfo(ctx context.Context, roomID string) (*entity.RoomInfo, error)
}
