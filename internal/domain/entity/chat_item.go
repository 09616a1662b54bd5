package entity

// ChatItem is a chat message merged with its (possibly absent) translation.
// Identity is the backend-assigned ID; the timestamp is an opaque label from
// the translation backend and is never parsed or used for ordering.
type ChatItem struct {
	ID             string `json:"id"`
	ChatID         string `json:"chat_id"`
	Text           string `json:"text"`
	TranslatedText string `json:"translated_text,omitempty"`
	SrcLangCode    string `json:"src_lang_code"`
	DstLangCode    string `json:"dst_lang_code"`
	Timestamp      string `json:"timestamp"`
}

// TranslationRequest is sent to the translation backend for a single chat
// message. It is an outbound payload and is never stored.
type TranslationRequest struct {
	ChatRoomID  string `json:"chat_room_id"`
	ChatID      string `json:"chat_id"`
	SrcLangCode string `json:"src_lang_code"`
	DstLangCode string `json:"dst_lang_code"`
	Timestamp   string `json:"timestamp"`
	Text        string `json:"text"`
}
