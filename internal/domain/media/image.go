package media

import (
	"bytes"
	"image"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
)

const jpegQuality = 85

// downscale shrinks JPEG and PNG images whose longer side exceeds maxSide.
// Other content and images already small enough are returned unchanged.
func downscale(data []byte, contentType string, maxSide int) ([]byte, error) {
	var format imaging.Format
	switch contentType {
	case "image/jpeg":
		format = imaging.JPEG
	case "image/png":
		format = imaging.PNG
	default:
		return data, nil
	}
	if maxSide <= 0 {
		return data, nil
	}

	config, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, ErrUnsupportedType
	}
	if config.Width <= maxSide && config.Height <= maxSide {
		return data, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, ErrUnsupportedType
	}
	resized := imaging.Fit(img, maxSide, maxSide, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// detectContentType trusts the bytes over the declared type.
func detectContentType(data []byte, declared string) string {
	detected := http.DetectContentType(data)
	if detected == "application/octet-stream" && declared != "" {
		return strings.ToLower(strings.TrimSpace(declared))
	}
	if i := strings.Index(detected, ";"); i >= 0 {
		detected = detected[:i]
	}
	return detected
}

func isMedia(contentType string) bool {
	return strings.HasPrefix(contentType, "image/") || strings.HasPrefix(contentType, "video/")
}
