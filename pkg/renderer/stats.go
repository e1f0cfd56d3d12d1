package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	PrimaryHits     int           // Camera rays that hit a mesh
	RaysCast        int           // Primary plus reflection rays
	MaxDepthReached int           // Deepest reflection bounce followed
	Duration        time.Duration // Wall time of the render
}

// Merge folds another set of counters into s
func (s *RenderStats) Merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.PrimaryHits += other.PrimaryHits
	s.RaysCast += other.RaysCast
	s.MaxDepthReached = max(s.MaxDepthReached, other.MaxDepthReached)
}

// HitRatio returns the fraction of camera rays that hit something
func (s RenderStats) HitRatio() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.PrimaryHits) / float64(s.TotalPixels)
}
