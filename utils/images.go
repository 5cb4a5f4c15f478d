package utils

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const thumbWidth = 400

// SaveBase64Image decodes a base64-encoded image (with or without a
// "data:image/...;base64," prefix), writes the original and a fixed-width
// thumbnail under dir, and returns both paths relative to the static root.
func SaveBase64Image(data, dir string) (string, string, error) {
	if idx := strings.Index(data, ";base64,"); idx >= 0 {
		data = data[idx+len(";base64,"):]
	}
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", "", fmt.Errorf("decode image: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", "", fmt.Errorf("read image: %w", err)
	}

	fullDir := "./static/uploads/" + dir
	if err := os.MkdirAll(fullDir, os.ModePerm); err != nil {
		return "", "", err
	}

	name := uuid.NewString()
	imagePath := fullDir + "/" + name + ".jpg"
	thumbPath := fullDir + "/" + name + "_thumb.jpg"

	if err := imaging.Save(img, imagePath); err != nil {
		return "", "", fmt.Errorf("save image: %w", err)
	}

	thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, thumbPath); err != nil {
		return "", "", fmt.Errorf("save thumbnail: %w", err)
	}

	prefix := "/static/uploads/" + dir + "/"
	return prefix + name + ".jpg", prefix + name + "_thumb.jpg", nil
}
