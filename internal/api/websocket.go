package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// WebSocket message types for the event stream
const (
	// Client -> Server messages
	MsgTypePing = "ping"

	// Server -> Client messages
	MsgTypeConnected  = "connected"
	MsgTypeNavigation = "navigation"
	MsgTypePong       = "pong"
	MsgTypeError      = "error"
)

const (
	wsWriteWait    = 10 * time.Second
	wsPingInterval = 30 * time.Second
)

// WSMessage is one frame of the event stream.
type WSMessage struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// WebSocketHandler streams a session's navigation events
type WebSocketHandler struct {
	sessions SessionManager
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// NewWebSocketHandler creates a new event stream handler
func NewWebSocketHandler(sessions SessionManager, logger zerolog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		sessions: sessions,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
		},
		logger: logger,
	}
}

// HandleEvents upgrades the connection and forwards every route change of
// the session until either side goes away.
func (wsh *WebSocketHandler) HandleEvents(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}

	view, err := wsh.sessions.View(id)
	if err != nil {
		return err
	}
	events, cancel, err := wsh.sessions.Subscribe(id)
	if err != nil {
		return err
	}
	defer cancel()

	ws, err := wsh.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	log := wsh.logger.With().Str("session", id).Logger()
	log.Debug().Msg("event stream connected")

	if err := wsh.send(ws, MsgTypeConnected, view); err != nil {
		return nil
	}

	// The reader owns ReadJSON; it reports pings and the end of the
	// connection to the writer loop below.
	pings := make(chan struct{}, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var msg WSMessage
			if err := ws.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Warn().Err(err).Msg("event stream read failed")
				}
				return
			}
			if msg.Type == MsgTypePing {
				select {
				case pings <- struct{}{}:
				default:
				}
			}
		}
	}()

	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			log.Debug().Msg("event stream disconnected")
			return nil
		case ev, ok := <-events:
			if !ok {
				wsh.close(ws, "session ended")
				select {
				case <-done:
				case <-time.After(wsWriteWait):
				}
				return nil
			}
			if err := wsh.send(ws, MsgTypeNavigation, ev); err != nil {
				return nil
			}
		case <-pings:
			if err := wsh.send(ws, MsgTypePong, nil); err != nil {
				return nil
			}
		case <-ticker.C:
			if err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return nil
			}
		}
	}
}

func (wsh *WebSocketHandler) send(ws *websocket.Conn, msgType string, payload any) error {
	msg := WSMessage{Type: msgType, Timestamp: time.Now().UnixMilli()}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		msg.Payload = data
	}
	ws.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return ws.WriteJSON(msg)
}

func (wsh *WebSocketHandler) close(ws *websocket.Conn, reason string) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason)
	_ = ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(wsWriteWait))
}
