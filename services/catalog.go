package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/autoservice/garage-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ServiceInput creates or partially updates a catalog entry
type ServiceInput struct {
	Name        *string          `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
}

// Catalog manages the price list. Cached schedules embed service rows, so
// updates and deletes invalidate them.
type Catalog struct {
	db    *gorm.DB
	cache ScheduleCache
}

// NewCatalog creates a catalog backed by db; cache may be nil
func NewCatalog(db *gorm.DB, cache ScheduleCache) *Catalog {
	return &Catalog{db: db, cache: cache}
}

// List returns every active service sorted by name
func (c *Catalog) List(ctx context.Context) ([]models.Service, error) {
	services := []models.Service{}
	if err := c.db.WithContext(ctx).Order("name ASC").Find(&services).Error; err != nil {
		return nil, InternalError("Failed to load services", err)
	}
	return services, nil
}

// Get returns one service
func (c *Catalog) Get(ctx context.Context, id uint) (*models.Service, error) {
	var svc models.Service
	if err := c.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, serviceLookupError(id, err)
	}
	return &svc, nil
}

// Create adds a service; name and a non-negative price are required
func (c *Catalog) Create(ctx context.Context, in ServiceInput) (*models.Service, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, ValidationError("VALIDATION_ERROR", "name is required")
	}
	if in.Price == nil {
		return nil, ValidationError("VALIDATION_ERROR", "price is required")
	}
	if err := checkPrice(*in.Price); err != nil {
		return nil, err
	}

	svc := models.Service{
		Name:  strings.TrimSpace(*in.Name),
		Price: in.Price.Round(PriceScale),
	}
	if in.Description != nil {
		svc.Description = *in.Description
	}

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkNameFree(tx, svc.Name, 0); err != nil {
			return err
		}
		if err := tx.Create(&svc).Error; err != nil {
			return InternalError("Failed to create service", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

// Update changes the given fields. Existing orders keep their stored price.
func (c *Catalog) Update(ctx context.Context, id uint, in ServiceInput) (*models.Service, error) {
	var svc models.Service
	changed := false
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&svc, id).Error; err != nil {
			return serviceLookupError(id, err)
		}

		updates := map[string]interface{}{}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return ValidationError("VALIDATION_ERROR", "name must not be empty")
			}
			if err := checkNameFree(tx, name, id); err != nil {
				return err
			}
			updates["name"] = name
		}
		if in.Price != nil {
			if err := checkPrice(*in.Price); err != nil {
				return err
			}
			updates["price"] = in.Price.Round(PriceScale)
		}
		if in.Description != nil {
			updates["description"] = *in.Description
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&svc).Updates(updates).Error; err != nil {
			return InternalError("Failed to update service", err)
		}
		changed = true
		return tx.First(&svc, id).Error
	})
	if err != nil {
		return nil, err
	}
	if changed {
		invalidateSchedule(ctx, c.cache)
	}
	return &svc, nil
}

// Delete retires a service. Order lines that reference it stay intact.
func (c *Catalog) Delete(ctx context.Context, id uint) error {
	result := c.db.WithContext(ctx).Delete(&models.Service{}, id)
	if result.Error != nil {
		return InternalError("Failed to delete service", result.Error)
	}
	if result.RowsAffected == 0 {
		return NotFoundError("SERVICE_NOT_FOUND", fmt.Sprintf("Service %d not found", id))
	}
	invalidateSchedule(ctx, c.cache)
	return nil
}

func checkPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return ValidationError("INVALID_PRICE", "price must not be negative")
	}
	return nil
}

func checkNameFree(tx *gorm.DB, name string, exceptID uint) error {
	var count int64
	err := tx.Unscoped().Model(&models.Service{}).
		Where("name = ? AND id <> ?", name, exceptID).
		Count(&count).Error
	if err != nil {
		return InternalError("Failed to check service name", err)
	}
	if count > 0 {
		return ValidationError("DUPLICATE_SERVICE_NAME", fmt.Sprintf("Service %q already exists", name))
	}
	return nil
}

func serviceLookupError(id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFoundError("SERVICE_NOT_FOUND", fmt.Sprintf("Service %d not found", id))
	}
	return InternalError("Failed to load service", err)
}

// BoxInput creates a box
type BoxInput struct {
	BoxNumber   *int `json:"boxNumber"`
	PlaceNumber *int `json:"placeNumber"`
}

// BoxRegistry manages the service bays orders are allocated to
type BoxRegistry struct {
	db *gorm.DB
}

// NewBoxRegistry creates a box registry backed by db
func NewBoxRegistry(db *gorm.DB) *BoxRegistry {
	return &BoxRegistry{db: db}
}

// List returns every box ordered by box then place number
func (r *BoxRegistry) List(ctx context.Context) ([]models.Box, error) {
	boxes := []models.Box{}
	if err := r.db.WithContext(ctx).Order("box_number ASC").Order("place_number ASC").Find(&boxes).Error; err != nil {
		return nil, InternalError("Failed to load boxes", err)
	}
	return boxes, nil
}

// Create adds a box; the (box, place) pair must be new and both numbers positive
func (r *BoxRegistry) Create(ctx context.Context, in BoxInput) (*models.Box, error) {
	if in.BoxNumber == nil || in.PlaceNumber == nil {
		return nil, ValidationError("VALIDATION_ERROR", "boxNumber and placeNumber are required")
	}
	if *in.BoxNumber <= 0 || *in.PlaceNumber <= 0 {
		return nil, ValidationError("VALIDATION_ERROR", "boxNumber and placeNumber must be positive")
	}

	box := models.Box{BoxNumber: *in.BoxNumber, PlaceNumber: *in.PlaceNumber}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Box{}).
			Where("box_number = ? AND place_number = ?", box.BoxNumber, box.PlaceNumber).
			Count(&count).Error; err != nil {
			return InternalError("Failed to check box", err)
		}
		if count > 0 {
			return ValidationError("DUPLICATE_BOX", fmt.Sprintf("Box %d place %d already exists", box.BoxNumber, box.PlaceNumber))
		}
		if err := tx.Create(&box).Error; err != nil {
			return InternalError("Failed to create box", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &box, nil
}
