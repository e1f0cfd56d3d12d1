package server

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/display"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// handleRender renders a scene synchronously and responds with a PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, sceneObj, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	rt := s.newRaytracer(sceneObj, req, NewWebLogger(nil))

	var buf bytes.Buffer
	stats, err := rt.Render(r.Context(), display.NewPNGWriterSink(&buf))
	if err != nil {
		// Client went away; nothing to send
		if r.Context().Err() != nil {
			return
		}
		log.Printf("Render %s failed: %v", rt.ID(), err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Render-Id", rt.ID())
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.Header().Set("X-Rays-Cast", strconv.Itoa(stats.RaysCast))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// newRaytracer wires a parsed request to a raytracer looking through the scene's camera
func (s *Server) newRaytracer(sceneObj *scene.Scene, req *RenderRequest, logger core.Logger) *renderer.Raytracer {
	return renderer.NewRaytracer(sceneObj, sceneObj.Camera, req.Config(), logger)
}
