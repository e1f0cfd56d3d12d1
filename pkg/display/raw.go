package display

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// rawMagic opens every raw float image
var rawMagic = [4]byte{'R', 'T', 'F', '1'}

// maxRawDimension bounds headers read from untrusted files
const maxRawDimension = 1 << 15

// ErrBadRawHeader is returned when a raw image does not start with a valid header
var ErrBadRawHeader = errors.New("bad raw image header")

// RawSink writes the tone-mapped float colors as a zstd-compressed stream:
// magic, little-endian uint32 width and height, then float32 RGB per pixel in row order.
type RawSink struct {
	path    string
	dst     io.Writer
	file    *os.File
	enc     *zstd.Encoder
	buf     *bufio.Writer
	err     error
	scratch [12]byte
}

// NewRawSink creates a sink that streams into w; w is not closed
func NewRawSink(w io.Writer) *RawSink {
	return &RawSink{dst: w}
}

// NewRawFileSink creates a sink that writes to path, creating parent directories
func NewRawFileSink(path string) *RawSink {
	return &RawSink{path: path}
}

func (s *RawSink) Begin(width, height int) error {
	dst := s.dst
	if s.path != "" {
		if dir := filepath.Dir(s.path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		file, err := os.Create(s.path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", s.path, err)
		}
		s.file = file
		dst = file
	}

	enc, err := zstd.NewWriter(dst)
	if err != nil {
		s.closeFile()
		return fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	s.enc = enc
	s.buf = bufio.NewWriter(enc)

	var header [12]byte
	copy(header[:4], rawMagic[:])
	binary.LittleEndian.PutUint32(header[4:8], uint32(width))
	binary.LittleEndian.PutUint32(header[8:12], uint32(height))
	_, s.err = s.buf.Write(header[:])
	return s.err
}

func (s *RawSink) SetPixel(row, col int, c core.Vec3) {
	if s.err != nil {
		return
	}
	binary.LittleEndian.PutUint32(s.scratch[0:4], math.Float32bits(float32(c.X)))
	binary.LittleEndian.PutUint32(s.scratch[4:8], math.Float32bits(float32(c.Y)))
	binary.LittleEndian.PutUint32(s.scratch[8:12], math.Float32bits(float32(c.Z)))
	_, s.err = s.buf.Write(s.scratch[:])
}

// Present flushes the stream and closes the encoder, and the file if the sink owns one
func (s *RawSink) Present() error {
	if s.enc == nil {
		return fmt.Errorf("raw sink: Present before Begin")
	}

	firstErr := s.err
	if err := s.buf.Flush(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := s.enc.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := s.closeFile(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

func (s *RawSink) closeFile() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// ReadRaw decodes a raw image written by RawSink
func ReadRaw(r io.Reader) (*renderer.Framebuffer, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	defer dec.Close()

	var header [12]byte
	if _, err := io.ReadFull(dec, header[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRawHeader, err)
	}
	if [4]byte(header[:4]) != rawMagic {
		return nil, fmt.Errorf("%w: magic %q", ErrBadRawHeader, header[:4])
	}
	width := binary.LittleEndian.Uint32(header[4:8])
	height := binary.LittleEndian.Uint32(header[8:12])
	if width == 0 || height == 0 || width > maxRawDimension || height > maxRawDimension {
		return nil, fmt.Errorf("%w: size %dx%d", ErrBadRawHeader, width, height)
	}

	fb := renderer.NewFramebuffer(int(width), int(height))
	var px [12]byte
	for i := range fb.Pixels {
		if _, err := io.ReadFull(dec, px[:]); err != nil {
			return nil, fmt.Errorf("failed to read pixel %d: %w", i, err)
		}
		fb.Pixels[i] = core.NewVec3(
			float64(math.Float32frombits(binary.LittleEndian.Uint32(px[0:4]))),
			float64(math.Float32frombits(binary.LittleEndian.Uint32(px[4:8]))),
			float64(math.Float32frombits(binary.LittleEndian.Uint32(px[8:12]))),
		)
	}
	return fb, nil
}

// ReadRawFile decodes the raw image at path
func ReadRawFile(path string) (*renderer.Framebuffer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadRaw(file)
}
