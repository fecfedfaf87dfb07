package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"sync"

	"github.com/autoservice/garage-api/utils"
)

// MockImageService is an in-memory ImageService for testing
type MockImageService struct {
	images map[string]int64 // image key to file size
	mu     sync.RWMutex
}

// NewMockImageService creates a new mock image service
func NewMockImageService() *MockImageService {
	return &MockImageService{images: make(map[string]int64)}
}

// SetAsMockForTesting sets this mock as the global image service instance
func (m *MockImageService) SetAsMockForTesting() {
	SetImageService(m)
}

// UploadImage validates the file and records it under a mock key
func (m *MockImageService) UploadImage(_ context.Context, fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	imageKey := "mock/" + utils.NewImageName(fileHeader.Filename)
	m.mu.Lock()
	m.images[imageKey] = fileHeader.Size
	m.mu.Unlock()

	return imageKey, nil
}

// GetImageURL returns a fake link for recorded images
func (m *MockImageService) GetImageURL(_ context.Context, imageKey string) (string, error) {
	if imageKey == "" {
		return "", nil
	}

	m.mu.RLock()
	_, exists := m.images[imageKey]
	m.mu.RUnlock()
	if !exists {
		return "", fmt.Errorf("image not found in mock storage: %s", imageKey)
	}

	return fmt.Sprintf("https://images.test/%s", imageKey), nil
}

// DeleteImage forgets an image
func (m *MockImageService) DeleteImage(_ context.Context, imageKey string) error {
	m.mu.Lock()
	delete(m.images, imageKey)
	m.mu.Unlock()
	return nil
}

// ImageExists checks if an image is recorded
func (m *MockImageService) ImageExists(imageKey string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.images[imageKey]
	return exists
}

// Count returns the number of recorded images
func (m *MockImageService) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.images)
}
