package hub

import (
	"encoding/json"
	"time"
)

// MessageType 消息类型
type MessageType string

const (
	MsgTypeCatalog    MessageType = "catalog"     // full sound list, sent on connect
	MsgTypeSoundAdded MessageType = "sound_added" // one appended sound
	MsgTypePlayback   MessageType = "playback"    // playback snapshot
	MsgTypeToggle     MessageType = "toggle"      // client -> server
	MsgTypePing       MessageType = "ping"
	MsgTypePong       MessageType = "pong"
	MsgTypeError      MessageType = "error"
)

// WSMessage WebSocket 消息结构
type WSMessage struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// ToggleData is the payload of a client toggle request.
type ToggleData struct {
	ID string `json:"id"`
}

// ErrorData is sent back to a client whose request was rejected.
type ErrorData struct {
	Message string `json:"message"`
}

// Encode builds a timestamped message around data.
func Encode(t MessageType, data interface{}) ([]byte, error) {
	msg := WSMessage{Type: t, Timestamp: time.Now().UnixMilli()}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		msg.Data = raw
	}
	return json.Marshal(msg)
}
