package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/autoservice/garage-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateOrderInput is the payload of an order creation
type CreateOrderInput struct {
	ClientID     *uint       `json:"clientId"`
	CarID        *uint       `json:"carId"`
	EmployeeID   *uint       `json:"employeeId"`
	CreateDate   *time.Time  `json:"createDate"`
	CompleteDate *time.Time  `json:"completeDate"`
	BoxNumber    SlotNumber  `json:"boxNumber"`
	PlaceNumber  SlotNumber  `json:"placeNumber"`
	Status       string      `json:"status"`
	Services     []LineInput `json:"services"`
}

// UpdateOrderInput is a partial order update. A nil field is left untouched;
// a non-nil Services replaces the whole line set, even when empty.
type UpdateOrderInput struct {
	Status     *string      `json:"status"`
	EmployeeID *uint        `json:"employeeId"`
	BoxID      *uint        `json:"boxId"`
	Services   *[]LineInput `json:"services"`
}

// OrderManager owns the order aggregate: the order row, its lines and the cached price
type OrderManager struct {
	db    *gorm.DB
	cache ScheduleCache

	// beforeCommit runs inside the transaction after all writes; tests use it to force a rollback
	beforeCommit func(tx *gorm.DB) error
}

// NewOrderManager creates an order manager. cache may be nil.
func NewOrderManager(db *gorm.DB, cache ScheduleCache) *OrderManager {
	return &OrderManager{db: db, cache: cache}
}

// Create validates the input, prices the lines, resolves the box and writes the order
// and its lines in one transaction. Warnings report a requested box that could not be assigned.
func (m *OrderManager) Create(ctx context.Context, in CreateOrderInput) (*models.Order, []string, error) {
	if in.ClientID == nil || *in.ClientID == 0 {
		return nil, nil, ValidationError("VALIDATION_ERROR", "clientId is required")
	}
	if in.CarID == nil || *in.CarID == 0 {
		return nil, nil, ValidationError("VALIDATION_ERROR", "carId is required")
	}
	if len(in.Services) == 0 {
		return nil, nil, ValidationError("VALIDATION_ERROR", "At least one service is required")
	}

	status := in.Status
	if status == "" {
		status = models.StatusWaiting
	}
	if !models.IsValidStatus(status) {
		return nil, nil, invalidStatus(status)
	}

	createDate := time.Now().UTC()
	if in.CreateDate != nil {
		createDate = in.CreateDate.UTC()
	}
	var completeDate *time.Time
	if in.CompleteDate != nil {
		cd := in.CompleteDate.UTC()
		if cd.Before(createDate) {
			return nil, nil, ValidationError("INVALID_DATE_RANGE", "completeDate must not be before createDate")
		}
		completeDate = &cd
	}

	var order models.Order
	var warnings []string

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkClientAndCar(tx, *in.ClientID, *in.CarID); err != nil {
			return err
		}
		if in.EmployeeID != nil {
			if err := checkExists(tx, &models.Employee{}, *in.EmployeeID, "EMPLOYEE_NOT_FOUND", "Employee"); err != nil {
				return err
			}
		}

		priced, err := PriceLines(tx, in.Services)
		if err != nil {
			return err
		}

		alloc, err := AllocateBox(tx, in.BoxNumber, in.PlaceNumber)
		if err != nil {
			return err
		}
		if alloc.Warning != "" {
			warnings = append(warnings, alloc.Warning)
		}

		order = models.Order{
			CreateDate:   createDate,
			CompleteDate: completeDate,
			Status:       status,
			Price:        priced.Total,
			ClientID:     in.ClientID,
			CarID:        in.CarID,
			EmployeeID:   in.EmployeeID,
			BoxID:        alloc.BoxID,
		}
		if err := tx.Omit(clause.Associations).Create(&order).Error; err != nil {
			return InternalError("Failed to create order", err)
		}

		if err := insertLines(tx, order.ID, priced.Lines); err != nil {
			return err
		}

		return m.runBeforeCommit(tx)
	})
	if err != nil {
		log.Printf("Order create rolled back: %v", err)
		return nil, nil, err
	}

	invalidateSchedule(ctx, m.cache)

	created, err := m.Get(ctx, order.ID)
	if err != nil {
		return nil, nil, err
	}
	return created, warnings, nil
}

// Update applies a partial update. Price is recomputed only when the line set is replaced.
// A missing order is reported before any field is validated.
func (m *OrderManager) Update(ctx context.Context, id uint, in UpdateOrderInput) (*models.Order, error) {
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, id).Error; err != nil {
			return orderLookupError(id, err)
		}

		updates := map[string]interface{}{}
		if in.Status != nil {
			if !models.IsValidStatus(*in.Status) {
				return invalidStatus(*in.Status)
			}
			updates["status"] = *in.Status
		}
		if in.EmployeeID != nil {
			if err := checkExists(tx, &models.Employee{}, *in.EmployeeID, "EMPLOYEE_NOT_FOUND", "Employee"); err != nil {
				return err
			}
			updates["employee_id"] = *in.EmployeeID
		}
		if in.BoxID != nil {
			if err := checkExists(tx, &models.Box{}, *in.BoxID, "BOX_NOT_FOUND", "Box"); err != nil {
				return err
			}
			updates["box_id"] = *in.BoxID
		}

		if in.Services != nil {
			priced, err := PriceLines(tx, *in.Services)
			if err != nil {
				return err
			}
			if err := tx.Where("order_id = ?", id).Delete(&models.OrderLine{}).Error; err != nil {
				return InternalError("Failed to remove order services", err)
			}
			if err := insertLines(tx, id, priced.Lines); err != nil {
				return err
			}
			updates["price"] = priced.Total
		}

		if len(updates) > 0 {
			if err := tx.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return InternalError("Failed to update order", err)
			}
		}

		return m.runBeforeCommit(tx)
	})
	if err != nil {
		if !IsKind(err, KindNotFound) {
			log.Printf("Order %d update rolled back: %v", id, err)
		}
		return nil, err
	}

	invalidateSchedule(ctx, m.cache)
	return m.Get(ctx, id)
}

// Delete removes the order and its lines together
func (m *OrderManager) Delete(ctx context.Context, id uint) error {
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, id).Error; err != nil {
			return orderLookupError(id, err)
		}
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderLine{}).Error; err != nil {
			return InternalError("Failed to remove order services", err)
		}
		if err := tx.Delete(&models.Order{}, id).Error; err != nil {
			return InternalError("Failed to delete order", err)
		}
		return m.runBeforeCommit(tx)
	})
	if err != nil {
		return err
	}

	invalidateSchedule(ctx, m.cache)
	return nil
}

// Get loads one order with everything the detail view shows
func (m *OrderManager) Get(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := m.db.WithContext(ctx).
		Preload("Client").
		Preload("Car.CarModel").
		Preload("Car.Engine").
		Preload("Employee.Specializations").
		Preload("Box").
		Preload("Lines", orderLinesByService).
		Preload("Lines.Service", includeDeleted).
		First(&order, id).Error
	if err != nil {
		return nil, orderLookupError(id, err)
	}
	return &order, nil
}

func (m *OrderManager) runBeforeCommit(tx *gorm.DB) error {
	if m.beforeCommit == nil {
		return nil
	}
	return m.beforeCommit(tx)
}

func insertLines(tx *gorm.DB, orderID uint, lines []models.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}
	rows := make([]models.OrderLine, len(lines))
	for i, line := range lines {
		rows[i] = models.OrderLine{OrderID: orderID, ServiceID: line.ServiceID, Count: line.Count}
	}
	if err := tx.Omit(clause.Associations).Create(&rows).Error; err != nil {
		return InternalError("Failed to save order services", err)
	}
	return nil
}

func checkClientAndCar(tx *gorm.DB, clientID, carID uint) error {
	if err := checkExists(tx, &models.Client{}, clientID, "CLIENT_NOT_FOUND", "Client"); err != nil {
		return err
	}

	var car models.ClientCar
	if err := tx.First(&car, carID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFoundError("CAR_NOT_FOUND", fmt.Sprintf("Car %d not found", carID))
		}
		return InternalError("Failed to load car", err)
	}
	if car.ClientID != clientID {
		return ValidationError("CAR_CLIENT_MISMATCH", fmt.Sprintf("Car %d does not belong to client %d", carID, clientID))
	}
	return nil
}

func checkExists(tx *gorm.DB, model interface{}, id uint, code, label string) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return InternalError(fmt.Sprintf("Failed to load %s", label), err)
	}
	if count == 0 {
		return NotFoundError(code, fmt.Sprintf("%s %d not found", label, id))
	}
	return nil
}

func orderLookupError(id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFoundError("ORDER_NOT_FOUND", fmt.Sprintf("Order %d not found", id))
	}
	return InternalError("Failed to load order", err)
}

func invalidStatus(status string) error {
	return ValidationError("INVALID_STATUS", fmt.Sprintf("Status must be one of %v, got %q", models.OrderStatuses, status))
}

func orderLinesByService(db *gorm.DB) *gorm.DB {
	return db.Order("service_id ASC")
}

// includeDeleted keeps lines of retired catalog entries displayable
func includeDeleted(db *gorm.DB) *gorm.DB {
	return db.Unscoped()
}
