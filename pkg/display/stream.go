package display

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image/color"
	"sync"

	"github.com/golang/snappy"
	"github.com/gorilla/websocket"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// Stream codecs for binary row frames
const (
	CodecRaw    = "raw"
	CodecSnappy = "snappy"
)

// ErrBadFrame is returned when a row frame cannot be decoded
var ErrBadFrame = errors.New("bad row frame")

// StreamMessage is the JSON envelope for text frames on the render stream
type StreamMessage struct {
	Type     string `json:"type"` // "begin", "done", "console" or "error"
	RenderID string `json:"renderId,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Codec    string `json:"codec,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Conn is the subset of *websocket.Conn the stream needs
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	WriteJSON(v interface{}) error
}

// StreamSink sends a render over a websocket: a "begin" text frame, one
// binary frame per completed row, then a "done" text frame.
// A row frame is a little-endian uint32 row index followed by RGB bytes,
// snappy-compressed as a whole when the codec is CodecSnappy.
type StreamSink struct {
	mu       sync.Mutex
	conn     Conn
	renderID string
	codec    string
	width    int
	row      []byte
	err      error
}

// NewStreamSink creates a sink writing to conn. Unknown codecs fall back to CodecRaw.
func NewStreamSink(conn Conn, renderID, codec string) *StreamSink {
	if codec != CodecSnappy {
		codec = CodecRaw
	}
	return &StreamSink{
		conn:     conn,
		renderID: renderID,
		codec:    codec,
	}
}

// Codec returns the codec used for row frames
func (s *StreamSink) Codec() string {
	return s.codec
}

func (s *StreamSink) Begin(width, height int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.width = width
	s.row = make([]byte, 4+3*width)
	s.err = s.conn.WriteJSON(StreamMessage{
		Type:     "begin",
		RenderID: s.renderID,
		Width:    width,
		Height:   height,
		Codec:    s.codec,
	})
	return s.err
}

// SetPixel buffers the pixel and sends the row once its last column arrives
func (s *StreamSink) SetPixel(row, col int, c core.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return
	}
	rgba := renderer.ToRGBA(c)
	offset := 4 + 3*col
	s.row[offset] = rgba.R
	s.row[offset+1] = rgba.G
	s.row[offset+2] = rgba.B

	if col == s.width-1 {
		binary.LittleEndian.PutUint32(s.row[:4], uint32(row))
		frame := s.row
		if s.codec == CodecSnappy {
			frame = snappy.Encode(nil, s.row)
		}
		s.err = s.conn.WriteMessage(websocket.BinaryMessage, frame)
	}
}

func (s *StreamSink) Present() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return fmt.Errorf("stream sink: %w", s.err)
	}
	return s.conn.WriteJSON(StreamMessage{Type: "done", RenderID: s.renderID})
}

// WriteConsole sends a log line to the client between frames
func (s *StreamSink) WriteConsole(message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.conn.WriteJSON(StreamMessage{Type: "console", RenderID: s.renderID, Message: message})
}

// WriteError reports a failed render to the client
func (s *StreamSink) WriteError(err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.conn.WriteJSON(StreamMessage{Type: "error", RenderID: s.renderID, Message: err.Error()})
}

// DecodeRowFrame parses a binary row frame into its row index and colors
func DecodeRowFrame(frame []byte, codec string) (int, []color.RGBA, error) {
	data := frame
	if codec == CodecSnappy {
		decoded, err := snappy.Decode(nil, frame)
		if err != nil {
			return 0, nil, fmt.Errorf("%w: %v", ErrBadFrame, err)
		}
		data = decoded
	}
	if len(data) < 4 || (len(data)-4)%3 != 0 {
		return 0, nil, fmt.Errorf("%w: length %d", ErrBadFrame, len(data))
	}

	row := int(binary.LittleEndian.Uint32(data[:4]))
	pixels := make([]color.RGBA, (len(data)-4)/3)
	for i := range pixels {
		p := data[4+3*i:]
		pixels[i] = color.RGBA{R: p[0], G: p[1], B: p[2], A: 255}
	}
	return row, pixels, nil
}
