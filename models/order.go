package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses
const (
	StatusWaiting    = "waiting"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// OrderStatuses lists every status an order may carry
var OrderStatuses = []string{StatusWaiting, StatusInProgress, StatusCompleted}

// IsValidStatus reports whether s is one of OrderStatuses
func IsValidStatus(s string) bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Order is a service appointment for one client's vehicle.
// Price caches the sum of the order lines as of the last write to the line set.
type Order struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	CreateDate   time.Time       `gorm:"not null;index" json:"createDate"`
	CompleteDate *time.Time      `json:"completeDate"`
	Status       string          `gorm:"type:varchar(20);not null;default:'waiting'" json:"status"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	ClientID     *uint           `gorm:"index" json:"clientId"`
	Client       *Client         `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	CarID        *uint           `gorm:"index" json:"carId"`
	Car          *ClientCar      `gorm:"foreignKey:CarID" json:"car,omitempty"`
	EmployeeID   *uint           `gorm:"index" json:"employeeId"`
	Employee     *Employee       `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	BoxID        *uint           `gorm:"index" json:"boxId"`
	Box          *Box            `gorm:"foreignKey:BoxID" json:"box,omitempty"`
	Lines        []OrderLine     `gorm:"foreignKey:OrderID" json:"services"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "Order"
}

// OrderLine is one (service, count) entry of an order
type OrderLine struct {
	OrderID   uint     `gorm:"primaryKey;autoIncrement:false" json:"-"`
	ServiceID uint     `gorm:"primaryKey;autoIncrement:false" json:"serviceId"`
	Count     int      `gorm:"not null;default:1" json:"count"`
	Service   *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

// TableName specifies the table name for the OrderLine model
func (OrderLine) TableName() string {
	return "Order_Service"
}
