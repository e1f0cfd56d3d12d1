package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const (
	// DefaultScene is rendered when no scene is named
	DefaultScene = "default"
	// DefaultOutput is where the CLI writes its PNG
	DefaultOutput = "output/render.png"
	// DefaultPort is the web server's listening port
	DefaultPort = 8080
	// MaxDimension bounds the image width and height
	MaxDimension = 8192
)

// ErrHelp is returned when -help or -h was given
var ErrHelp = flag.ErrHelp

// Options captures everything the CLI needs for one render.
// Zero Width/Height and negative MaxBounces mean "use the scene's recommendation".
type Options struct {
	Scene      string
	Width      int
	Height     int
	MaxBounces int
	ToneMap    renderer.ToneMap
	Ambient    bool
	Workers    int
	Output     string
	Raw        string
}

// ServerOptions captures the web server settings
type ServerOptions struct {
	Port int
}

// Load builds the CLI options from RAYTRACER_* environment variables,
// then applies command-line flags over them. Every problem found is
// reported in one error.
func Load(args []string, getenv func(string) string) (*Options, error) {
	env := envReader{getenv: getenv}

	defaults := Options{
		Scene:      env.getString("RAYTRACER_SCENE", DefaultScene),
		Width:      env.getInt("RAYTRACER_WIDTH", 0),
		Height:     env.getInt("RAYTRACER_HEIGHT", 0),
		MaxBounces: env.getInt("RAYTRACER_BOUNCES", -1),
		Ambient:    env.getBool("RAYTRACER_AMBIENT", false),
		Workers:    env.getInt("RAYTRACER_WORKERS", 0),
		Output:     env.getString("RAYTRACER_OUT", DefaultOutput),
		Raw:        env.getString("RAYTRACER_RAW", ""),
	}
	toneMapName := env.getString("RAYTRACER_TONEMAP", string(renderer.ToneMapClamp))

	opts := &Options{}
	fs := newFlagSet(opts, &toneMapName, defaults)
	fs.SetOutput(io.Discard)

	problems := env.problems
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, ErrHelp
		}
		problems = append(problems, err.Error())
	}
	if fs.NArg() > 0 {
		problems = append(problems, fmt.Sprintf("unexpected arguments: %s", strings.Join(fs.Args(), " ")))
	}

	if toneMap, err := renderer.ParseToneMap(toneMapName); err != nil {
		problems = append(problems, fmt.Sprintf("tonemap must be clamp or normalize, got %q", toneMapName))
	} else {
		opts.ToneMap = toneMap
	}
	if !scene.Has(opts.Scene) {
		problems = append(problems, fmt.Sprintf("scene must be one of %s, got %q", strings.Join(sceneIDs(), ", "), opts.Scene))
	}
	if opts.Width < 0 || opts.Width > MaxDimension {
		problems = append(problems, fmt.Sprintf("width must be between 0 and %d, got %d", MaxDimension, opts.Width))
	}
	if opts.Height < 0 || opts.Height > MaxDimension {
		problems = append(problems, fmt.Sprintf("height must be between 0 and %d, got %d", MaxDimension, opts.Height))
	}
	if opts.MaxBounces < -1 || opts.MaxBounces > renderer.MaxBouncesLimit {
		problems = append(problems, fmt.Sprintf("bounces must be between -1 and %d, got %d", renderer.MaxBouncesLimit, opts.MaxBounces))
	}
	if opts.Workers < 0 {
		problems = append(problems, fmt.Sprintf("workers must be non-negative, got %d", opts.Workers))
	}
	if strings.TrimSpace(opts.Output) == "" {
		problems = append(problems, "out must not be empty")
	}

	if len(problems) > 0 {
		return nil, errors.New(strings.Join(problems, "; "))
	}
	return opts, nil
}

// RenderConfig merges the options over a scene's recommended settings
func (o *Options) RenderConfig(s *scene.Scene) renderer.Config {
	config := renderer.DefaultConfig()
	if s.Config.Width > 0 {
		config.Width = s.Config.Width
	}
	if s.Config.Height > 0 {
		config.Height = s.Config.Height
	}
	if s.Config.MaxBounces > 0 {
		config.MaxBounces = s.Config.MaxBounces
	}

	if o.Width > 0 {
		config.Width = o.Width
	}
	if o.Height > 0 {
		config.Height = o.Height
	}
	if o.MaxBounces >= 0 {
		config.MaxBounces = o.MaxBounces
	}
	config.NumWorkers = o.Workers
	config.ToneMap = o.ToneMap
	config.Ambient = o.Ambient
	return config
}

// Usage writes the flag help text to w
func Usage(w io.Writer) {
	fmt.Fprintln(w, "Whitted Raytracer")
	fmt.Fprintln(w, "Usage: raytracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	toneMap := string(renderer.ToneMapClamp)
	fs := newFlagSet(&Options{}, &toneMap, Options{
		Scene:      DefaultScene,
		MaxBounces: -1,
		Output:     DefaultOutput,
	})
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables RAYTRACER_SCENE, RAYTRACER_WIDTH, RAYTRACER_HEIGHT,")
	fmt.Fprintln(w, "RAYTRACER_BOUNCES, RAYTRACER_TONEMAP, RAYTRACER_AMBIENT, RAYTRACER_WORKERS,")
	fmt.Fprintln(w, "RAYTRACER_OUT and RAYTRACER_RAW set the defaults for the matching flags.")
}

// LoadServer builds the web server options from RAYTRACER_PORT and the -port flag
func LoadServer(args []string, getenv func(string) string) (*ServerOptions, error) {
	env := envReader{getenv: getenv}
	defaultPort := env.getInt("RAYTRACER_PORT", DefaultPort)

	fs := flag.NewFlagSet("raytracer-web", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	opts := &ServerOptions{}
	fs.IntVar(&opts.Port, "port", defaultPort, "Port to serve on")

	problems := env.problems
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, ErrHelp
		}
		problems = append(problems, err.Error())
	}
	if opts.Port <= 0 || opts.Port > 65535 {
		problems = append(problems, fmt.Sprintf("port must be between 1 and 65535, got %d", opts.Port))
	}

	if len(problems) > 0 {
		return nil, errors.New(strings.Join(problems, "; "))
	}
	return opts, nil
}

// newFlagSet binds the CLI flags to opts, defaulting to defaults and *toneMap
func newFlagSet(opts *Options, toneMap *string, defaults Options) *flag.FlagSet {
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.StringVar(&opts.Scene, "scene", defaults.Scene, "Scene name: "+strings.Join(sceneIDs(), ", "))
	fs.IntVar(&opts.Width, "width", defaults.Width, "Image width (0 = scene default)")
	fs.IntVar(&opts.Height, "height", defaults.Height, "Image height (0 = scene default)")
	fs.IntVar(&opts.MaxBounces, "bounces", defaults.MaxBounces, "Maximum reflection bounces (-1 = scene default)")
	fs.StringVar(toneMap, "tonemap", *toneMap, "Tone mapping: clamp or normalize")
	fs.BoolVar(&opts.Ambient, "ambient", defaults.Ambient, "Add the scene's ambient light")
	fs.IntVar(&opts.Workers, "workers", defaults.Workers, "Row workers (0 = one per CPU)")
	fs.StringVar(&opts.Output, "out", defaults.Output, "PNG output path")
	fs.StringVar(&opts.Raw, "raw", defaults.Raw, "Optional zstd float dump path")
	return fs
}

func sceneIDs() []string {
	var ids []string
	for _, info := range scene.List() {
		ids = append(ids, info.ID)
	}
	return ids
}

// envReader reads typed environment values, collecting problems instead of failing fast
type envReader struct {
	getenv   func(string) string
	problems []string
}

func (e *envReader) lookup(key string) string {
	if e.getenv == nil {
		return ""
	}
	return strings.TrimSpace(e.getenv(key))
}

func (e *envReader) getString(key, fallback string) string {
	if value := e.lookup(key); value != "" {
		return value
	}
	return fallback
}

func (e *envReader) getInt(key string, fallback int) int {
	raw := e.lookup(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		e.problems = append(e.problems, fmt.Sprintf("%s must be an integer, got %q", key, raw))
		return fallback
	}
	return value
}

func (e *envReader) getBool(key string, fallback bool) bool {
	raw := e.lookup(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		e.problems = append(e.problems, fmt.Sprintf("%s must be a boolean value, got %q", key, raw))
		return fallback
	}
	return value
}
