package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/display"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const (
	minDimension = 16
	maxDimension = 2000
)

// Server handles web requests for the raytracer
type Server struct {
	port int
	mux  *http.ServeMux
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	s := &Server{port: port, mux: http.NewServeMux()}

	// API endpoints
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)
	s.mux.HandleFunc("/ws/render", s.handleRenderStream)

	return s
}

// Handler returns the server's request router
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene      string           `json:"scene"`      // Scene name (e.g., "room")
	Width      int              `json:"width"`      // Image width
	Height     int              `json:"height"`     // Image height
	MaxBounces int              `json:"maxBounces"` // Maximum reflection bounces
	ToneMap    renderer.ToneMap `json:"toneMap"`    // "clamp" or "normalize"
	Ambient    bool             `json:"ambient"`    // Add the scene's ambient light
	Codec      string           `json:"codec"`      // Row frame codec for /ws/render
}

// Config converts the request into render settings
func (req *RenderRequest) Config() renderer.Config {
	cfg := renderer.DefaultConfig()
	cfg.Width = req.Width
	cfg.Height = req.Height
	cfg.MaxBounces = req.MaxBounces
	cfg.ToneMap = req.ToneMap
	cfg.Ambient = req.Ambient
	return cfg
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the available scenes grouped by category
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	writeJSON(w, http.StatusOK, scene.ListAllScenes())
}

// handleSceneConfig returns the recommended configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = config.DefaultScene
	}

	sceneObj, err := scene.Create(sceneName)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Unknown scene: " + sceneName})
		return
	}

	response := map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":      sceneObj.Config.Width,
			"height":     sceneObj.Config.Height,
			"maxBounces": sceneObj.Config.MaxBounces,
			"toneMap":    renderer.ToneMapClamp,
		},
		"limits": map[string]interface{}{
			"width": map[string]int{
				"min": minDimension,
				"max": maxDimension,
			},
			"height": map[string]int{
				"min": minDimension,
				"max": maxDimension,
			},
			"maxBounces": map[string]int{
				"min": 0,
				"max": renderer.MaxBouncesLimit,
			},
		},
		"meshes": sceneObj.GetMeshCount(),
		"lights": len(sceneObj.Lights),
	}

	writeJSON(w, http.StatusOK, response)
}

// parseRenderRequest parses request parameters, defaulting to the scene's recommendation
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, *scene.Scene, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = config.DefaultScene
	}

	sceneObj, err := scene.Create(req.Scene)
	if err != nil {
		return nil, nil, err
	}

	if req.Width, err = parseIntParam(query, "width", sceneObj.Config.Width, minDimension, maxDimension); err != nil {
		return nil, nil, err
	}
	if req.Height, err = parseIntParam(query, "height", sceneObj.Config.Height, minDimension, maxDimension); err != nil {
		return nil, nil, err
	}
	if req.MaxBounces, err = parseIntParam(query, "maxBounces", sceneObj.Config.MaxBounces, 0, renderer.MaxBouncesLimit); err != nil {
		return nil, nil, err
	}
	if req.ToneMap, err = renderer.ParseToneMap(query.Get("toneMap")); err != nil {
		return nil, nil, err
	}
	if req.Ambient, err = parseBoolParam(query, "ambient", false); err != nil {
		return nil, nil, err
	}

	req.Codec = strings.ToLower(query.Get("codec"))
	switch req.Codec {
	case "", display.CodecRaw:
		req.Codec = display.CodecRaw
	case display.CodecSnappy:
	default:
		return nil, nil, fmt.Errorf("codec must be %s or %s, got: %s", display.CodecRaw, display.CodecSnappy, req.Codec)
	}

	// Performance warning
	if req.Width*req.Height > 1000*1000 && req.MaxBounces > 50 {
		log.Printf("Render warning: Large image with deep reflections may render slowly")
	}

	return req, sceneObj, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseBoolParam parses a boolean parameter from URL query
func parseBoolParam(values url.Values, key string, defaultValue bool) (bool, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
