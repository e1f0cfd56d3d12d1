package renderer

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// renderLogger prefixes every line with the render ID
type renderLogger struct {
	renderID string
	base     core.Logger
}

func (rl *renderLogger) Printf(format string, args ...interface{}) {
	rl.base.Printf("[render %s] %s", rl.renderID, fmt.Sprintf(format, args...))
}
