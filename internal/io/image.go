package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // YouTube serves most thumbnails as WebP
)

// jpegQuality is used for every JPEG this package encodes.
const jpegQuality = 90

// ImageService prepares video thumbnails for use as embedded cover art.
//
// Example usage:
//
//	svc := NewImageService()
//	cover, err := svc.ResizeImage(ctx, thumbnail, 1000, 1000)
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// ResizeImage scales an image down to fit within maxWidth x maxHeight,
// keeping its aspect ratio, and returns it JPEG-encoded. Images already
// within bounds are only re-encoded.
//
// The Catmull-Rom kernel is used for scaling.
//
//	// A 1280x720 thumbnail with a 1000x1000 bound becomes 1000x562
//	resized, err := svc.ResizeImage(ctx, data, 1000, 1000)
func (s *ImageService) ResizeImage(ctx context.Context, data []byte, maxWidth, maxHeight int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := fitWithin(bounds.Dx(), bounds.Dy(), maxWidth, maxHeight)
	if width == bounds.Dx() && height == bounds.Dy() {
		return encodeJPEG(img)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	return encodeJPEG(dst)
}

// ConvertToJPEG decodes an image in any registered format and re-encodes it
// as JPEG.
func (s *ImageService) ConvertToJPEG(ctx context.Context, data []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	return encodeJPEG(img)
}

// fitWithin returns width x height scaled down to fit the bounds.
func fitWithin(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= maxWidth && height <= maxHeight {
		return width, height
	}

	ratio := float64(width) / float64(height)
	if float64(maxWidth)/float64(maxHeight) > ratio {
		// Height is the limiting factor
		return int(float64(maxHeight) * ratio), maxHeight
	}
	// Width is the limiting factor
	return maxWidth, int(float64(maxWidth) / ratio)
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
