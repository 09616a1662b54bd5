package stream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/websocket"

	"conflive/internal/domain/entity"
	"conflive/pkg/errors"
	"conflive/pkg/logger"
)

// Client talks to the live-translation backend: a WebSocket per room
// subscription and REST endpoints for metadata and batch translation.
type Client struct {
	apiBase    string
	wsURL      string
	httpClient *http.Client
	dialer     *websocket.Dialer
}

func NewClient(apiBase, wsURL string) *Client {
	return &Client{
		apiBase:    apiBase,
		wsURL:      wsURL,
		httpClient: &http.Client{},
		dialer:     websocket.DefaultDialer,
	}
}

// Wire messages delivered over the room WebSocket.
type wireMessage struct {
	Type        string          `json:"type"`
	ContentData wireContentData `json:"content_data"`
}

type wireContentData struct {
	ChatList []wireChatItem `json:"chat_list"`
}

type wireChatItem struct {
	ID          string `json:"id"`
	ChatID      string `json:"chat_id"`
	ChatRoomID  string `json:"chat_room_id"`
	Text        string `json:"text"`
	Content     string `json:"content"`
	SrcLangCode string `json:"src_lang_code"`
	DstLangCode string `json:"dst_lang_code"`
	Timestamp   string `json:"timestamp"`
}

// OpenStream subscribes to a room. A Connect event is emitted once the
// socket is up. A server-side close surfaces as PeerClosed, cancellation as
// Disconnect; any other failure just closes the channel.
func (c *Client) OpenStream(ctx context.Context, roomID string) (<-chan entity.StreamEvent, error) {
	url := fmt.Sprintf("%s/room/%s", c.wsURL, roomID)
	conn, resp, err := c.dialer.DialContext(ctx, url, nil)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, errors.TransportFailed("stream dial", err)
	}

	events := make(chan entity.StreamEvent, 16)

	// Unblock the read loop when the subscription is canceled.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	go func() {
		defer close(events)
		defer conn.Close()

		events <- entity.StreamEvent{Type: entity.StreamConnect}

		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				if ctx.Err() != nil {
					events <- entity.StreamEvent{Type: entity.StreamDisconnect}
					return
				}
				if websocket.IsCloseError(err,
					websocket.CloseNormalClosure,
					websocket.CloseGoingAway,
					websocket.CloseAbnormalClosure) {
					events <- entity.StreamEvent{Type: entity.StreamPeerClosed}
					return
				}
				logger.Error("Stream read failed for room %s: %v", roomID, err)
				return
			}

			var msg wireMessage
			if err := json.Unmarshal(payload, &msg); err != nil {
				logger.Warn("Dropping malformed stream message: %v", err)
				continue
			}

			switch msg.Type {
			case "chat":
				for _, item := range msg.ContentData.ChatList {
					chat := entity.ChatItem{
						ID:          item.ID,
						ChatID:      item.ChatRoomID,
						Text:        item.Text,
						SrcLangCode: item.SrcLangCode,
						Timestamp:   item.Timestamp,
					}
					events <- entity.StreamEvent{Type: entity.StreamChatResponse, Chat: &chat}
				}

			case "translation":
				translations := make([]entity.ChatItem, 0, len(msg.ContentData.ChatList))
				for _, item := range msg.ContentData.ChatList {
					translations = append(translations, entity.ChatItem{
						ID:             item.ChatID,
						ChatID:         item.ChatID,
						TranslatedText: item.Content,
						SrcLangCode:    item.SrcLangCode,
						DstLangCode:    item.DstLangCode,
						Timestamp:      item.Timestamp,
					})
				}
				events <- entity.StreamEvent{Type: entity.StreamBatchTranslationResponse, Translations: translations}

			default:
				logger.Warn("Unknown stream message type: %s", msg.Type)
			}
		}
	}()

	return events, nil
}

func (c *Client) RequestBatchTranslation(ctx context.Context, requests []entity.TranslationRequest) error {
	body, err := json.Marshal(map[string]interface{}{"data": requests})
	if err != nil {
		return errors.TransportFailed("batch translation encode", err)
	}

	url := c.apiBase + "/api/v1/translation/batch"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errors.TransportFailed("batch translation request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.TransportFailed("batch translation request", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return errors.TransportFailed("batch translation request",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	return nil
}

func (c *Client) GetLangSet(ctx context.Context, langCode string) (*entity.LangSet, error) {
	var payload struct {
		Data map[string]string `json:"data"`
	}
	url := fmt.Sprintf("%s/api/v1/lang-set?lang_code=%s", c.apiBase, langCode)
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, errors.FetchFailed("language set", err)
	}
	return &entity.LangSet{Data: payload.Data}, nil
}

func (c *Client) GetLangList(ctx context.Context) ([]entity.LanguageItem, error) {
	var payload struct {
		Data []struct {
			ID       string `json:"id"`
			LangCode string `json:"lang_code"`
			Language string `json:"language"`
		} `json:"data"`
	}
	if err := c.getJSON(ctx, c.apiBase+"/api/v1/lang-list", &payload); err != nil {
		return nil, errors.FetchFailed("language list", err)
	}

	items := make([]entity.LanguageItem, 0, len(payload.Data))
	for _, item := range payload.Data {
		items = append(items, entity.LanguageItem{
			ID:       item.ID,
			LangCode: item.LangCode,
			Name:     item.Language,
		})
	}
	return items, nil
}

func (c *Client) GetChatRoomInfo(ctx context.Context, roomID string) (*entity.RoomInfo, error) {
	var payload struct {
		ChatRoomID    string `json:"chat_room_id"`
		ChatRoomTitle string `json:"chat_room_title"`
	}
	url := fmt.Sprintf("%s/api/v1/chat-room/%s", c.apiBase, roomID)
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, errors.FetchFailed("chat room info", err)
	}
	return &entity.RoomInfo{
		ChatRoomID:    payload.ChatRoomID,
		ChatRoomTitle: payload.ChatRoomTitle,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
