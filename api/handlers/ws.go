package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/openinbox/inboxd/dto"
	"github.com/openinbox/inboxd/interfaces"
	"github.com/openinbox/inboxd/internal/logger"
)

const (
	wsWriteTimeout = 10 * time.Second
	wsPingPeriod   = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The API key middleware already gates this endpoint.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ViewStream upgrades the connection and pushes every published view state to
// the client. The current state, if any, is sent immediately on connect.
func ViewStream(log logger.Logger, viewState interfaces.ViewStateService) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Warnf("Websocket upgrade failed: %v", err)
			return
		}

		connID := uuid.New().String()
		log.Infof("View stream connected: %s", connID)

		updates, cancel := viewState.Subscribe()
		defer cancel()
		defer conn.Close()

		// Reader goroutine: the client sends nothing we care about, but reads
		// are needed to notice the connection closing.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		if current, ok := viewState.Current(); ok {
			if err := writeState(conn, dto.MapViewState(current)); err != nil {
				log.Debugf("View stream %s initial write failed: %v", connID, err)
				return
			}
		}

		pingTicker := time.NewTicker(wsPingPeriod)
		defer pingTicker.Stop()

		for {
			select {
			case <-done:
				log.Infof("View stream disconnected: %s", connID)
				return
			case state, ok := <-updates:
				if !ok {
					return
				}
				if err := writeState(conn, dto.MapViewState(state)); err != nil {
					log.Debugf("View stream %s write failed: %v", connID, err)
					return
				}
			case <-pingTicker.C:
				conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}
}

func writeState(conn *websocket.Conn, state dto.ViewStateResponse) error {
	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteJSON(state)
}
