// Package thumbnail scales project images down for the gallery.
package thumbnail

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	DefaultMaxDimension = 640
	DefaultQuality      = 80
)

// ErrInvalidPath is returned for references escaping the assets directory
var ErrInvalidPath = errors.New("invalid thumbnail path")

// Scaler produces JPEG thumbnails from images under a root directory and
// keeps the results in memory
type Scaler struct {
	root         string
	maxDimension int
	quality      int

	mu    sync.RWMutex
	cache map[string][]byte
}

// NewScaler creates a scaler reading images from root
func NewScaler(root string, maxDimension, quality int) *Scaler {
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	return &Scaler{
		root:         root,
		maxDimension: maxDimension,
		quality:      quality,
		cache:        make(map[string][]byte),
	}
}

// Thumbnail returns the scaled JPEG for ref, a slash separated path below root
func (s *Scaler) Thumbnail(ref string) ([]byte, error) {
	clean, err := cleanRef(ref)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	cached, ok := s.cache[clean]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(clean)))
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %w", clean, err)
	}

	out, err := Compress(data, s.maxDimension, s.quality)
	if err != nil {
		return nil, fmt.Errorf("thumbnail %s: %w", clean, err)
	}

	s.mu.Lock()
	s.cache[clean] = out
	s.mu.Unlock()
	return out, nil
}

// Compress scales an image so its longest edge is at most maxDimension and
// encodes it as JPEG. Smaller images keep their size.
func Compress(data []byte, maxDimension int, quality int) ([]byte, error) {
	// Decode image using generic decoder (works with any registered format)
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	bounds := img.Bounds()
	newWidth, newHeight := fit(bounds.Dx(), bounds.Dy(), maxDimension)

	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// fit keeps the aspect ratio while bounding the longest edge
func fit(width, height, maxDimension int) (int, int) {
	if width > height {
		if width > maxDimension {
			return maxDimension, max(1, int(float64(height)*float64(maxDimension)/float64(width)))
		}
		return width, height
	}
	if height > maxDimension {
		return max(1, int(float64(width)*float64(maxDimension)/float64(height))), maxDimension
	}
	return width, height
}

// OutputName maps a reference to the file name used for exported thumbnails
func OutputName(ref string) string {
	clean, err := cleanRef(ref)
	if err != nil {
		return ""
	}
	return clean
}

func cleanRef(ref string) (string, error) {
	ref = strings.TrimPrefix(strings.ReplaceAll(ref, "\\", "/"), "/")
	if ref == "" {
		return "", ErrInvalidPath
	}
	clean := filepath.ToSlash(filepath.Clean(ref))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", ErrInvalidPath
	}
	return clean, nil
}
