package imageproc

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

const ContentType = "image/webp"

var ErrUnsupportedImage = errors.New("unsupported or corrupt image")

type Options struct {
	MaxWidth  int
	MaxHeight int
	Quality   float32
}

func DefaultOptions() Options {
	return Options{MaxWidth: 1600, MaxHeight: 1600, Quality: 80}
}

// ToWebP decodes a JPEG, PNG, GIF or WebP image, shrinks it to fit within the
// configured box (never enlarging) and re-encodes it as lossy WebP.
func ToWebP(r io.Reader, opt Options) ([]byte, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	if opt.MaxWidth > 0 && opt.MaxHeight > 0 {
		b := img.Bounds()
		if b.Dx() > opt.MaxWidth || b.Dy() > opt.MaxHeight {
			img = imaging.Fit(img, opt.MaxWidth, opt.MaxHeight, imaging.Lanczos)
		}
	}

	quality := opt.Quality
	if quality <= 0 || quality > 100 {
		quality = 80
	}

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode webp: %w", err)
	}
	return buf.Bytes(), nil
}
