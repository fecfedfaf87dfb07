package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"

	"github.com/autoservice/garage-api/models"
	"gorm.io/gorm"
)

// CarModels lists car models and manages their pictures
type CarModels struct {
	db     *gorm.DB
	images ImageService
}

// NewCarModels creates the car model service. images may be nil when uploads are disabled.
func NewCarModels(db *gorm.DB, images ImageService) *CarModels {
	return &CarModels{db: db, images: images}
}

// List returns every car model by brand and model, with image links resolved
func (c *CarModels) List(ctx context.Context) ([]models.CarModel, error) {
	carModels := []models.CarModel{}
	if err := c.db.WithContext(ctx).Order("brand ASC").Order("model ASC").Find(&carModels).Error; err != nil {
		return nil, InternalError("Failed to load car models", err)
	}
	for i := range carModels {
		c.resolveImage(ctx, &carModels[i])
	}
	return carModels, nil
}

// SetImage uploads a new picture for the model and removes the previous one
func (c *CarModels) SetImage(ctx context.Context, id uint, fileHeader *multipart.FileHeader) (*models.CarModel, error) {
	if c.images == nil {
		return nil, &AppError{Kind: KindInternal, Code: "IMAGE_STORAGE_UNAVAILABLE", Message: "Image storage is not configured"}
	}

	var carModel models.CarModel
	if err := c.db.WithContext(ctx).First(&carModel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("CAR_MODEL_NOT_FOUND", fmt.Sprintf("Car model %d not found", id))
		}
		return nil, InternalError("Failed to load car model", err)
	}

	key, err := c.images.UploadImage(ctx, fileHeader)
	if err != nil {
		return nil, err
	}

	var previous string
	if carModel.ImageKey != nil {
		previous = *carModel.ImageKey
	}
	if err := c.db.WithContext(ctx).Model(&carModel).Update("image_key", key).Error; err != nil {
		if delErr := c.images.DeleteImage(ctx, key); delErr != nil {
			log.Printf("Failed to clean up image %s: %v", key, delErr)
		}
		return nil, InternalError("Failed to save car model image", err)
	}
	carModel.ImageKey = &key

	if previous != "" && previous != key {
		if err := c.images.DeleteImage(ctx, previous); err != nil {
			log.Printf("Failed to delete previous image %s: %v", previous, err)
		}
	}

	c.resolveImage(ctx, &carModel)
	return &carModel, nil
}

func (c *CarModels) resolveImage(ctx context.Context, carModel *models.CarModel) {
	if c.images == nil || carModel.ImageKey == nil || *carModel.ImageKey == "" {
		return
	}
	url, err := c.images.GetImageURL(ctx, *carModel.ImageKey)
	if err != nil {
		log.Printf("Failed to resolve image for car model %d: %v", carModel.ID, err)
		return
	}
	carModel.ImageURL = &url
}
