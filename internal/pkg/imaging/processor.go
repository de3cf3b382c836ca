package imaging

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"path"
	"strings"

	"github.com/disintegration/imaging"
)

// Config for hotel image processing. Hotel photos are landscape-oriented,
// so thumbnails crop to 3:2.
type Config struct {
	MaxWidth    int // Max width for the optimized original
	MaxHeight   int // Max height for the optimized original
	ThumbWidths []int
	Quality     int // JPEG quality 1-100
}

// DefaultConfig returns the processing config for hotel gallery images
func DefaultConfig() Config {
	return Config{
		MaxWidth:    1920,
		MaxHeight:   1280,
		ThumbWidths: []int{320, 640, 1024},
		Quality:     85,
	}
}

// Thumbnail is one resized rendition of an original
type Thumbnail struct {
	Key  string
	Data []byte
}

// Result holds the optimized original and its thumbnails
type Result struct {
	Optimized []byte
	Width     int
	Height    int
	Thumbs    []Thumbnail
}

// Processor turns uploaded originals into web-optimized JPEGs plus a set of
// fixed-width 3:2 thumbnails.
type Processor struct {
	config Config
}

// NewProcessor creates an image processor
func NewProcessor(config Config) *Processor {
	return &Processor{config: config}
}

// Process decodes the original, fits it into the configured bounds and
// renders the thumbnail set. originalKey names the thumbnail keys:
// "<base>_thumb<width>.jpg" next to the original.
func (p *Processor) Process(reader io.Reader, originalKey string) (*Result, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	opt := img
	if img.Bounds().Dx() > p.config.MaxWidth || img.Bounds().Dy() > p.config.MaxHeight {
		opt = imaging.Fit(img, p.config.MaxWidth, p.config.MaxHeight, imaging.Lanczos)
	}

	optimized, err := p.encodeJPEG(opt)
	if err != nil {
		return nil, fmt.Errorf("failed to encode optimized original: %w", err)
	}

	result := &Result{
		Optimized: optimized,
		Width:     opt.Bounds().Dx(),
		Height:    opt.Bounds().Dy(),
	}

	base := strings.TrimSuffix(originalKey, path.Ext(originalKey))
	for _, w := range p.config.ThumbWidths {
		thumb := imaging.Fill(opt, w, w*2/3, imaging.Center, imaging.Lanczos)
		encoded, err := p.encodeJPEG(thumb)
		if err != nil {
			return nil, fmt.Errorf("failed to encode thumbnail %d: %w", w, err)
		}
		result.Thumbs = append(result.Thumbs, Thumbnail{
			Key:  fmt.Sprintf("%s_thumb%d.jpg", base, w),
			Data: encoded,
		})
	}

	return result, nil
}

func (p *Processor) encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(p.config.Quality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
