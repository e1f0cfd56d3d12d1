package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType,omitempty"`
	MeshIndex    int                    `json:"meshIndex"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Color        [3]float64             `json:"color"` // Unclamped radiance along the pixel ray
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// extractMaterialInfo lists the shading coefficients of a material
func extractMaterialInfo(m material.Material) map[string]interface{} {
	c := m.Color.Clamp(0, 1)
	return map[string]interface{}{
		"diffusion":   m.Diffusion,
		"specularity": m.Specularity,
		"shininess":   m.Shininess,
		"reflectance": m.Reflectance,
		"albedo":      toArray(m.Color),
		"color": fmt.Sprintf("#%02x%02x%02x",
			int(c.X*255), int(c.Y*255), int(c.Z*255)),
	}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(geom geometry.Geometry) map[string]interface{} {
	properties := make(map[string]interface{})

	switch g := geom.(type) {
	case geometry.Plane:
		properties["normal"] = toArray(g.Normal)
		properties["offset"] = g.Offset

	case geometry.Sphere:
		properties["center"] = toArray(g.Center)
		properties["radius"] = g.Radius

	case geometry.Parallelogram:
		properties["origin"] = toArray(g.Origin)
		properties["u"] = toArray(g.U)
		properties["v"] = toArray(g.V)
	}

	return properties
}

// handleInspect casts the primary ray through one pixel and describes what it hits
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, sceneObj, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	// Parse pixel coordinates
	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}

	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	rt := renderer.NewRaytracer(sceneObj, sceneObj.Camera, req.Config(), NewWebLogger(nil))
	ray := sceneObj.Camera.GetRay(pixelY, pixelX, req.Width, req.Height)

	response := InspectResponse{MeshIndex: -1}
	hit, ok := rt.Intersect(ray)
	if ok {
		mesh := sceneObj.Meshes[hit.MeshIndex]
		response.Hit = true
		response.GeometryType = mesh.Geometry.Kind().String()
		response.MeshIndex = hit.MeshIndex
		response.Point = toArray(hit.Point)
		response.Normal = toArray(hit.Normal)
		response.Distance = hit.T
		response.Color = toArray(rt.CastRay(ray, req.MaxBounces))
		response.Properties = map[string]interface{}{
			"geometry": extractGeometryInfo(mesh.Geometry),
			"material": extractMaterialInfo(mesh.Material),
		}
	}

	writeJSON(w, http.StatusOK, response)
}

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
