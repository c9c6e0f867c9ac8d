package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/fuelcast/backend/config"
)

// maxImageBytes caps uploaded food photos at 5 MB.
const maxImageBytes = 5 * 1024 * 1024

// ImageService handles food photo storage operations
type ImageService struct {
	s3Config *config.S3Config
}

// NewImageService creates a new ImageService instance
func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{
		s3Config: s3Config,
	}
}

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

// UploadFoodImage stores a food photo in S3 and returns its public URL. The
// content type is sniffed from the data, not trusted from the client.
func (s *ImageService) UploadFoodImage(ctx context.Context, foodID string, imageData []byte) (string, error) {
	if len(imageData) == 0 {
		return "", fmt.Errorf("empty image upload")
	}
	if len(imageData) > maxImageBytes {
		return "", fmt.Errorf("image exceeds %d byte limit", maxImageBytes)
	}

	contentType := http.DetectContentType(imageData)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", fmt.Errorf("unsupported image type %s", contentType)
	}

	fileName := path.Join("food-images", foodID, uuid.New().String()+ext)
	return s.uploadToS3(ctx, imageData, fileName, contentType)
}

// uploadToS3 uploads image data to S3 and returns the public URL
func (s *ImageService) uploadToS3(ctx context.Context, imageData []byte, fileName, contentType string) (string, error) {
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, fileName)
	log.Printf("[ImageService] Successfully uploaded image to S3: %s", publicURL)

	return publicURL, nil
}
