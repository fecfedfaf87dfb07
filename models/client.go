package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Client is a customer of the shop
type Client struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	PhoneNumber string         `gorm:"uniqueIndex;not null" json:"phoneNumber"`
	FirstName   string         `gorm:"not null" json:"firstName"`
	LastName    string         `gorm:"not null" json:"lastName"`
	MiddleName  *string        `json:"middleName,omitempty"`
	Email       *string        `json:"email,omitempty"`
	Cars        []ClientCar    `gorm:"foreignKey:ClientID" json:"cars,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Client model
func (Client) TableName() string {
	return "Client"
}

// ClientCar is a vehicle owned by exactly one client
type ClientCar struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	StateNumber  string         `gorm:"uniqueIndex;not null" json:"stateNumber"`
	VIN          string         `gorm:"column:vin;uniqueIndex;not null" json:"vin"`
	YearRelease  *int           `json:"yearRelease,omitempty"`
	BodyType     string         `gorm:"not null" json:"bodyType"`
	Mileage      int            `gorm:"not null;default:1" json:"mileage"`
	Transmission string         `gorm:"type:varchar(20);not null" json:"transmission"` // automatic, robot, cvt, manual
	ClientID     uint           `gorm:"not null;index" json:"clientId"`
	CarModelID   *uint          `gorm:"index" json:"carModelId"`
	CarModel     *CarModel      `gorm:"foreignKey:CarModelID" json:"carModel,omitempty"`
	EngineNumber *string        `gorm:"index" json:"engineNumber,omitempty"`
	Engine       *Engine        `gorm:"foreignKey:EngineNumber;references:EngineNumber" json:"engine,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the ClientCar model
func (ClientCar) TableName() string {
	return "ClientCar"
}

// CarModel is a brand/model reference entry
type CarModel struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Brand    string  `gorm:"not null;uniqueIndex:idx_brand_model,priority:1" json:"brand"`
	Model    string  `gorm:"not null;uniqueIndex:idx_brand_model,priority:2" json:"model"`
	ImageKey *string `json:"-"`                              // storage key of the uploaded image
	ImageURL *string `gorm:"-" json:"imageUrl,omitempty"` // computed, presigned or local URL
}

// TableName specifies the table name for the CarModel model
func (CarModel) TableName() string {
	return "CarModel"
}

// Engine is an engine reference entry keyed by its serial number
type Engine struct {
	EngineNumber string          `gorm:"primaryKey" json:"engineNumber"`
	Type         string          `gorm:"type:varchar(20);not null" json:"type"` // petrol, diesel, electric
	HorsePower   int             `gorm:"not null" json:"horsePower"`
	Capacity     decimal.Decimal `gorm:"type:decimal(3,1);not null" json:"capacity"`
}

// TableName specifies the table name for the Engine model
func (Engine) TableName() string {
	return "Engine"
}
