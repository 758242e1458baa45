package utils

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/draw"
	"image/jpeg"
	"regexp"
	"strings"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

var (
	ErrInvalidEncoding = errors.New("invalid base64 image data")
	ErrInvalidImage    = errors.New("decoded payload is not a valid image")
)

// jpegQuality matches the quality the capture clients encode at.
const jpegQuality = 85

var nonBase64 = regexp.MustCompile(`[^A-Za-z0-9+/=]`)

// NormalizeBase64Image repairs a transport-mangled base64 image payload and
// re-encodes it to JPEG, the one format the inference backend is guaranteed
// to receive. Already-canonical input passes through byte-identical, so the
// transform is safe to apply more than once.
func NormalizeBase64Image(payload string) (string, error) {
	// Strip a data-URI prefix ("data:image/png;base64,....").
	if idx := strings.Index(payload, ","); idx >= 0 {
		head := payload[:idx]
		if strings.Contains(head, "base64") || strings.Contains(head, "data:") {
			payload = payload[idx+1:]
		}
	}

	// Drop whitespace and anything else outside the base64 alphabet.
	payload = nonBase64.ReplaceAllString(payload, "")

	// Repair padding to a multiple of 4.
	if rem := len(payload) % 4; rem != 0 {
		payload += strings.Repeat("=", 4-rem)
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", ErrInvalidEncoding
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", ErrInvalidImage
	}

	if format == "jpeg" {
		return payload, nil
	}

	// Flatten alpha/palette onto an opaque canvas before JPEG encoding.
	bounds := img.Bounds()
	flat := image.NewRGBA(bounds)
	draw.Draw(flat, bounds, image.White, image.Point{}, draw.Src)
	draw.Draw(flat, bounds, img, bounds.Min, draw.Over)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flat, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", ErrInvalidImage
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
