package renderer

import (
	"errors"
	"fmt"
	"strings"
)

// MaxBouncesLimit caps the reflection depth of any render
const MaxBouncesLimit = 256

// ErrInvalidConfig is returned when a render configuration fails validation
var ErrInvalidConfig = errors.New("invalid render config")

// ToneMap selects how unbounded radiance is mapped into [0,1]
type ToneMap string

const (
	ToneMapClamp        ToneMap = "clamp"     // Per-channel clamp
	ToneMapMaxNormalize ToneMap = "normalize" // Divide by the brightest pixel's magnitude, floored at 1
)

// ParseToneMap converts a policy name into a ToneMap
func ParseToneMap(name string) (ToneMap, error) {
	switch ToneMap(strings.ToLower(strings.TrimSpace(name))) {
	case ToneMapClamp, "":
		return ToneMapClamp, nil
	case ToneMapMaxNormalize:
		return ToneMapMaxNormalize, nil
	default:
		return "", fmt.Errorf("%w: unknown tone map %q", ErrInvalidConfig, name)
	}
}

// Config contains the settings for a single render
type Config struct {
	Width      int     // Image width in pixels
	Height     int     // Image height in pixels
	MaxBounces int     // Reflection bounces after the primary hit
	NumWorkers int     // Row workers (0 = auto-detect from CPU count)
	ToneMap    ToneMap // Mapping from radiance to display color
	Ambient    bool    // Add material diffusion times scene ambient before tinting
}

// DefaultConfig returns sensible default render settings
func DefaultConfig() Config {
	return Config{
		Width:      400,
		Height:     400,
		MaxBounces: 10,
		NumWorkers: 0,
		ToneMap:    ToneMapClamp,
		Ambient:    false,
	}
}

// Validate reports every problem with the configuration in a single error
func (c Config) Validate() error {
	var problems []string

	if c.Width <= 0 {
		problems = append(problems, fmt.Sprintf("width must be positive, got %d", c.Width))
	}
	if c.Height <= 0 {
		problems = append(problems, fmt.Sprintf("height must be positive, got %d", c.Height))
	}
	if c.MaxBounces < 0 || c.MaxBounces > MaxBouncesLimit {
		problems = append(problems, fmt.Sprintf("max bounces must be in [0, %d], got %d", MaxBouncesLimit, c.MaxBounces))
	}
	if c.NumWorkers < 0 {
		problems = append(problems, fmt.Sprintf("workers must be non-negative, got %d", c.NumWorkers))
	}
	if c.ToneMap != ToneMapClamp && c.ToneMap != ToneMapMaxNormalize {
		problems = append(problems, fmt.Sprintf("unknown tone map %q", c.ToneMap))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
