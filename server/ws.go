package server

import (
	"context"
	"encoding/json"
	"net/http"

	"Sampler/core/hub"
	"Sampler/logger"

	"github.com/gorilla/websocket"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WebSocketHandler upgrades the connection, sends the current catalog and
// playback state, then keeps the client in sync through the hub.
func (h *APIHandler) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("websocket upgrade failed", logger.ErrorField(err))
		return
	}

	client := h.hub.NewClient(conn)

	snap, err := h.player.Snapshot(r.Context())
	if err != nil {
		logger.Warn("snapshot for new client", logger.ErrorField(err))
	}
	// Queued before Register so they precede any broadcast.
	_ = client.SendMessage(hub.MsgTypeCatalog, views(h.catalog.List(), snap))
	_ = client.SendMessage(hub.MsgTypePlayback, snap)

	h.hub.Register(client)
	go client.WritePump()
	go client.ReadPump(context.Background(), h.handleClientMessage)
}

func (h *APIHandler) handleClientMessage(ctx context.Context, client *hub.Client, msg *hub.WSMessage) {
	switch msg.Type {
	case hub.MsgTypeToggle:
		var data hub.ToggleData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			_ = client.SendMessage(hub.MsgTypeError, hub.ErrorData{Message: "invalid toggle payload"})
			return
		}
		// The resulting state reaches every client, this one included, via
		// the playback broadcast.
		if _, err := h.toggle(ctx, data.ID); err != nil {
			_ = client.SendMessage(hub.MsgTypeError, hub.ErrorData{Message: err.Error()})
		}
	default:
		logger.Debug("unhandled client message", logger.String("type", string(msg.Type)), logger.String("client", client.ID))
	}
}
