package ws

import (
	"time"

	"github.com/gorilla/websocket"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// client связывает websocket-соединение с подпиской на диалог.
type client struct {
	conn *websocket.Conn
	sub  *Subscription
}

// serve гоняет read/write pump до закрытия соединения или подписки.
func (c *client) serve() {
	done := make(chan struct{})
	go c.readPump(done)
	c.writePump(done)
}

// readPump только следит за жизнью соединения: входящие фреймы
// не несут команд, сообщения отправляются через REST.
func (c *client) readPump(done chan<- struct{}) {
	defer close(done)
	c.conn.SetReadLimit(4096)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump(done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.sub.Close()
		_ = c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.sub.C:
			if !ok {
				_ = c.conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(writeWait))
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(event); err != nil {
				logger.Debug("ws write failed", "error", err.Error())
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
