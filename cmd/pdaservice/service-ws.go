package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

// WebSocketService registers the /api WebSocket handler.  Each text
// message is one SOp; each gets one SResult back on the same
// connection.
func (s *Service) WebSocketService(ctx context.Context) error {

	var upgrader = websocket.Upgrader{} // use default options

	api := func(w http.ResponseWriter, r *http.Request) {
		log.Printf("Service.WebSocketService connection from %s", r.RemoteAddr)

		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error", err)
			return
		}
		defer c.Close()

		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			mt, message, err := c.ReadMessage()
			if err != nil {
				log.Println("read error", err)
				break
			}

			var op SOp
			var res *SResult
			if err := json.Unmarshal(message, &op); err != nil {
				res = erred(&SResult{}, err)
			} else {
				res = s.Do(ctx, &op)
			}

			js, err := json.Marshal(res)
			if err != nil {
				log.Printf("marshal error %v on %#v", err, res)
				continue
			}
			if err = c.WriteMessage(mt, js); err != nil {
				log.Println("write error", err)
				break
			}
		}
	}

	http.HandleFunc("/api", api)

	return nil
}
