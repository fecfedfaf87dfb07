package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Employee is a master who can be assigned to orders
type Employee struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	PhoneNumber     string           `gorm:"uniqueIndex;not null" json:"phoneNumber"`
	FirstName       string           `gorm:"not null" json:"firstName"`
	LastName        string           `gorm:"not null" json:"lastName"`
	MiddleName      *string          `json:"middleName,omitempty"`
	Salary          decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"salary"`
	Experience      int              `gorm:"not null;default:0" json:"experience"`
	Specializations []Specialization `gorm:"foreignKey:EmployeeID" json:"specializations,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt   `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Employee model
func (Employee) TableName() string {
	return "Employee"
}

// Specialization is a skill of an employee
type Specialization struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"not null" json:"name"`
	EmployeeID uint   `gorm:"not null;index" json:"-"`
}

// TableName specifies the table name for the Specialization model
func (Specialization) TableName() string {
	return "Specialization"
}
