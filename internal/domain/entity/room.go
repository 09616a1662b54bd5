package entity

// RoomInfo describes the live-translation chat room. Loaded once during the
// initial load; a default is synthesized when the fetch fails.
type RoomInfo struct {
	ChatRoomID    string `json:"chat_room_id"`
	ChatRoomTitle string `json:"chat_room_title"`
}
