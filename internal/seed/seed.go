// Package seed derives k-means random seeds so repeated runs over the same
// input can produce the same palette.
package seed

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/jmylchreest/pbn/internal/colour"
)

// Mode determines how the seed is derived.
type Mode string

const (
	// ModeRandom seeds from the clock; results vary between runs.
	ModeRandom Mode = "random"
	// ModeContent hashes the pixel buffer, so identical images share a seed.
	ModeContent Mode = "content"
	// ModePath hashes the absolute file path or URL.
	ModePath Mode = "path"
	// ModeManual uses the seed given by the caller.
	ModeManual Mode = "manual"
)

// ValidModes returns a list of valid seed modes.
func ValidModes() []Mode {
	return []Mode{ModeRandom, ModeContent, ModePath, ModeManual}
}

// ParseMode converts a string to a Mode.
func ParseMode(s string) (Mode, error) {
	mode := Mode(s)
	if slices.Contains(ValidModes(), mode) {
		return mode, nil
	}
	return "", fmt.Errorf("invalid seed mode: %s (valid: %v)", s, ValidModes())
}

// Calculate returns the seed for mode. buf is required for ModeContent and
// path for ModePath; value is only read for ModeManual.
func Calculate(mode Mode, buf *colour.Buffer, path string, value int64) (int64, error) {
	switch mode {
	case ModeRandom:
		return time.Now().UnixNano(), nil
	case ModeContent:
		if buf == nil {
			return 0, fmt.Errorf("a pixel buffer is required for content seeding")
		}
		return Content(buf), nil
	case ModePath:
		if path == "" {
			return 0, fmt.Errorf("a path is required for path seeding")
		}
		return Path(path), nil
	case ModeManual:
		return value, nil
	default:
		return 0, fmt.Errorf("unknown seed mode: %s", mode)
	}
}

// Content hashes the dimensions and every pixel of buf.
func Content(buf *colour.Buffer) int64 {
	hasher := sha256.New()

	dims := make([]byte, 8)
	binary.LittleEndian.PutUint32(dims[0:4], uint32(buf.Width))  // #nosec G115 -- image dimensions fit in uint32
	binary.LittleEndian.PutUint32(dims[4:8], uint32(buf.Height)) // #nosec G115 -- image dimensions fit in uint32
	hasher.Write(dims)
	hasher.Write(buf.Pix)

	return fromHash(hasher.Sum(nil))
}

// Path hashes the absolute form of path. URLs are hashed as given.
func Path(path string) int64 {
	key := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		if abs, err := filepath.Abs(path); err == nil {
			key = abs
		}
	}
	sum := sha256.Sum256([]byte(key))
	return fromHash(sum[:])
}

// fromHash folds a digest into a non-zero seed; zero is reserved for
// "pick one from the clock".
func fromHash(hash []byte) int64 {
	s := int64(binary.LittleEndian.Uint64(hash[:8])) // #nosec G115 -- hash conversion is safe
	if s == 0 {
		return 1
	}
	return s
}
