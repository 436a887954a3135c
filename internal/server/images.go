package server

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif" // register decoder
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/nfnt/resize"
)

// ThumbnailHeight is the height of proxied images; width keeps the
// aspect ratio.
const ThumbnailHeight = 500

const maxImageBytes = 20 << 20

type thumbnail struct {
	contentType string
	data        []byte
}

// ImageProxy fetches remote images and returns resized copies.
type ImageProxy struct {
	client *http.Client
	cache  *expirable.LRU[string, thumbnail]
}

// NewImageProxy creates a proxy caching up to size thumbnails for ttl.
func NewImageProxy(size int, ttl time.Duration) *ImageProxy {
	return &ImageProxy{
		client: &http.Client{Timeout: 15 * time.Second},
		cache:  expirable.NewLRU[string, thumbnail](size, nil, ttl),
	}
}

// Thumbnail returns the resized image at url as bytes and a content type.
func (p *ImageProxy) Thumbnail(ctx context.Context, url string) ([]byte, string, error) {
	if t, ok := p.cache.Get(url); ok {
		imagesResized.WithLabelValues("hit").Inc()
		return t.data, t.contentType, nil
	}
	imagesResized.WithLabelValues("miss").Inc()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch image: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch image: status %d", resp.StatusCode)
	}

	data, ctype, err := ResizeImage(io.LimitReader(resp.Body, maxImageBytes), ThumbnailHeight)
	if err != nil {
		return nil, "", err
	}
	p.cache.Add(url, thumbnail{contentType: ctype, data: data})
	return data, ctype, nil
}

// ResizeImage decodes r, scales it to height and re-encodes it. PNG stays
// PNG; everything else becomes JPEG.
func ResizeImage(r io.Reader, height uint) ([]byte, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dy() == 0 {
		return nil, "", fmt.Errorf("decode image: empty image")
	}
	aspectRatio := float64(bounds.Dx()) / float64(bounds.Dy())
	width := uint(float64(height)*aspectRatio + 0.5)
	if width == 0 {
		width = 1
	}

	resized := resize.Resize(width, height, img, resize.Lanczos3)

	var buf bytes.Buffer
	if format == "png" {
		if err := png.Encode(&buf, resized); err != nil {
			return nil, "", fmt.Errorf("encode png: %w", err)
		}
		return buf.Bytes(), "image/png", nil
	}
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 85}); err != nil {
		return nil, "", fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), "image/jpeg", nil
}
