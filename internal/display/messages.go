package display

import (
	"encoding/json"
	"time"
)

type MessageType string

const (
	MessageBoard        MessageType = "board"
	MessageAnnouncement MessageType = "announcement"
	MessageFlash        MessageType = "flash"
	MessageMedia        MessageType = "media"
)

// Message is the envelope pushed to display clients.
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   any         `json:"payload"`
}

type FlashPayload struct {
	On bool `json:"on"`
}

type encodedMessage struct {
	typ  MessageType
	data []byte
}

func encode(m Message) (encodedMessage, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return encodedMessage{}, err
	}
	return encodedMessage{typ: m.Type, data: data}, nil
}
