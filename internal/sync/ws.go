package sync

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Clients never send anything meaningful; the limit just caps what a
// misbehaving one can make us buffer.
const readLimit = 1 << 10

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // same-origin only in practice; restrict before exposing publicly
	},
}

// WSHandler upgrades the request and parks the connection in the hub until
// the client goes away. The read loop exists only to notice disconnects.
func WSHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[ws] upgrade failed: %v", err)
			return
		}
		ws.SetReadLimit(readLimit)

		hub.Add(ws)
		log.Printf("[ws] client connected (%d active)", hub.Stats().Clients)

		_ = ws.WriteJSON(Event{Type: "welcome", At: time.Now().UTC()})

		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}

		hub.Remove(ws)
		log.Printf("[ws] client disconnected (%d active)", hub.Stats().Clients)
	}
}
