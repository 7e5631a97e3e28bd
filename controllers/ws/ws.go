package wscontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/killjoy47/MniseCosmetics/realtime"
	"github.com/killjoy47/MniseCosmetics/store"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades a terminal to a websocket session, sends the current
// catalog snapshot and keeps the session registered until it disconnects.
func Handler(st *store.Store, hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		products, err := st.ListProducts()
		if err != nil {
			conn.Close()
			return
		}
		hub.Subscribe(conn, products)

		// Read loop only detects disconnects; terminals never send data.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				hub.Unsubscribe(conn)
				break
			}
		}
	}
}
