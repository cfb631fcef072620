package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// ImageService processes uploaded package images and stores them with
// resized variants
type ImageService struct {
	storage StorageService
}

// NewImageService creates a new image service
func NewImageService(storage StorageService) *ImageService {
	return &ImageService{storage: storage}
}

// ImageVariantConfig defines the dimensions of a resized variant
type ImageVariantConfig struct {
	Name   string
	Width  int
	Height int
}

var defaultImageVariants = []ImageVariantConfig{
	{Name: "thumbnail", Width: 150, Height: 150},
	{Name: "medium", Width: 400, Height: 300},
	{Name: "large", Width: 800, Height: 600},
}

const jpegQuality = 85

// ImageVariant is a stored resized copy of an uploaded image
type ImageVariant struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Key    string `json:"key"`
	URL    string `json:"url"`
}

// ImageUploadResult describes the stored original and its variants
type ImageUploadResult struct {
	Key         string         `json:"key"`
	URL         string         `json:"url"`
	ContentType string         `json:"content_type"`
	Width       int            `json:"width"`
	Height      int            `json:"height"`
	Size        int64          `json:"size"`
	UploadedAt  time.Time      `json:"uploaded_at"`
	Variants    []ImageVariant `json:"variants"`
}

// UploadImage decodes, validates and stores an image together with its
// resized variants, returning the public URLs
func (s *ImageService) UploadImage(ctx context.Context, reader io.Reader, filename string) (*ImageUploadResult, error) {
	imageData, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if format != "jpeg" && format != "png" {
		return nil, fmt.Errorf("unsupported image format: %s", format)
	}

	keyPrefix := generateImageKey(filename)
	bounds := img.Bounds()

	originalData, err := encodeImage(img, format)
	if err != nil {
		return nil, fmt.Errorf("failed to encode original image: %w", err)
	}

	originalKey := fmt.Sprintf("%s/original.%s", keyPrefix, formatExtension(format))
	contentType := formatContentType(format)

	originalURL, err := s.storage.Upload(ctx, originalKey, bytes.NewReader(originalData), contentType, int64(len(originalData)))
	if err != nil {
		return nil, fmt.Errorf("failed to upload original image: %w", err)
	}

	result := &ImageUploadResult{
		Key:         originalKey,
		URL:         originalURL,
		ContentType: contentType,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		Size:        int64(len(originalData)),
		UploadedAt:  time.Now(),
	}

	for _, variant := range defaultImageVariants {
		resized := imaging.Fit(img, variant.Width, variant.Height, imaging.Lanczos)

		variantData, err := encodeImage(resized, format)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s variant: %w", variant.Name, err)
		}

		variantKey := fmt.Sprintf("%s/%s.%s", keyPrefix, variant.Name, formatExtension(format))
		variantURL, err := s.storage.Upload(ctx, variantKey, bytes.NewReader(variantData), contentType, int64(len(variantData)))
		if err != nil {
			return nil, fmt.Errorf("failed to upload %s variant: %w", variant.Name, err)
		}

		variantBounds := resized.Bounds()
		result.Variants = append(result.Variants, ImageVariant{
			Name:   variant.Name,
			Width:  variantBounds.Dx(),
			Height: variantBounds.Dy(),
			Key:    variantKey,
			URL:    variantURL,
		})
	}

	return result, nil
}

// DeleteImage removes the original and all known variants
func (s *ImageService) DeleteImage(ctx context.Context, result *ImageUploadResult) error {
	if err := s.storage.Delete(ctx, result.Key); err != nil {
		return err
	}
	for _, variant := range result.Variants {
		if err := s.storage.Delete(ctx, variant.Key); err != nil {
			return err
		}
	}
	return nil
}

func encodeImage(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case "jpeg":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, err
		}
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported image format: %s", format)
	}
	return buf.Bytes(), nil
}

func formatExtension(format string) string {
	if format == "jpeg" {
		return "jpg"
	}
	return format
}

func formatContentType(format string) string {
	switch format {
	case "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	default:
		return "application/octet-stream"
	}
}

func generateImageKey(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = strings.ToLower(strings.ReplaceAll(base, " ", "-"))
	if base == "" {
		base = "image"
	}
	return fmt.Sprintf("images/%s/%s-%s", time.Now().Format("2006/01"), base, uuid.New().String()[:8])
}
