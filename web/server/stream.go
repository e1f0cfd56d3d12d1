package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/df07/go-whitted-raytracer/pkg/display"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleRenderStream renders a scene and streams it row by row over a websocket.
// Console lines are interleaved as text frames; the connection closes once the
// image is done or the render fails.
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	// Validate before upgrading so bad requests get a plain HTTP error
	req, sceneObj, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// The client never sends anything we act on; a read error means it left
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	consoleChan := make(chan ConsoleMessage, 100)
	rt := s.newRaytracer(sceneObj, req, NewWebLogger(consoleChan))
	sink := display.NewStreamSink(conn, rt.ID(), req.Codec)

	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		for msg := range consoleChan {
			if err := sink.WriteConsole(msg.Message); err != nil {
				cancel()
			}
		}
	}()

	_, renderErr := rt.Render(ctx, sink)

	// The raytracer logs only from this goroutine, so nothing sends after Render returns
	close(consoleChan)
	<-consoleDone

	if renderErr != nil {
		if ctx.Err() != nil {
			log.Printf("Render %s stopped: client disconnected", rt.ID())
			return
		}
		sink.WriteError(renderErr)
	}

	deadline := time.Now().Add(time.Second)
	conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
}
