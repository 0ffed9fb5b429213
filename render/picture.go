package render

import (
	"errors"
	"fmt"
	"image"
	"math"
	"os"

	// Decoders accepted by Picture.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/nfnt/resize"

	imgInternal "github.com/AlexStarov/labelprinter-GoLang-lib/image"
)

// Picture renders an image file, scaled down to the context height when it
// is taller. Dark pixels are burned.
type Picture struct {
	Path string
}

// NewPicture checks that path exists.
func NewPicture(path string) (*Picture, error) {
	if path == "" {
		return nil, ErrNoContent
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrPictureNotFound, path)
	}
	return &Picture{Path: path}, nil
}

func (p *Picture) Render(ctx Context) (*imgInternal.Bitmap, error) {
	f, err := os.Open(p.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrPictureNotFound, p.Path)
		}
		return nil, fmt.Errorf("open picture %s: %w", p.Path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnidentifiedImage, p.Path, err)
	}
	return pictureBitmap(img, ctx.HeightPx), nil
}

func pictureBitmap(img image.Image, heightPx int) *imgInternal.Bitmap {
	size := img.Bounds().Size()
	if size.Y > heightPx && heightPx > 0 {
		ratio := float64(heightPx) / float64(size.Y)
		w := uint(math.Ceil(float64(size.X) * ratio))
		img = resize.Resize(w, uint(heightPx), img, resize.Lanczos3)
	}
	return imgInternal.DefaultConverter.ToBitmap(img)
}
