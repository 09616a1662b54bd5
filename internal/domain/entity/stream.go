package entity

// StreamEventType discriminates the events yielded by a room subscription.
type StreamEventType string

const (
	StreamConnect                  StreamEventType = "connect"
	StreamDisconnect               StreamEventType = "disconnect"
	StreamPeerClosed               StreamEventType = "peer_closed"
	StreamChatResponse             StreamEventType = "chat_response"
	StreamBatchTranslationResponse StreamEventType = "batch_translation_response"
)

// StreamEvent is one event from the translation backend's room stream.
// Chat is set for StreamChatResponse, Translations for
// StreamBatchTranslationResponse; both are nil otherwise.
type StreamEvent struct {
	Type         StreamEventType
	Chat         *ChatItem
	Translations []ChatItem
}
