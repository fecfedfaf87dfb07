package services

import (
	"context"
	"testing"
	"time"

	"github.com/autoservice/garage-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory database with every table migrated.
// One connection keeps the in-memory database shared across the transaction and reads.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

type fixture struct {
	client      models.Client
	otherClient models.Client
	car         models.ClientCar
	otherCar    models.ClientCar
	employee    models.Employee
	oilChange   models.Service
	brakes      models.Service
	wash        models.Service
	polish      models.Service
	box1        models.Box
	box2        models.Box
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// seed fills the registries an order refers to
func seed(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()

	f := &fixture{
		client:      models.Client{PhoneNumber: "+79990000001", FirstName: "Ivan", LastName: "Petrov"},
		otherClient: models.Client{PhoneNumber: "+79990000002", FirstName: "Anna", LastName: "Smirnova"},
		employee: models.Employee{
			PhoneNumber: "+79990000100",
			FirstName:   "Sergey",
			LastName:    "Volkov",
			Salary:      price("60000.00"),
			Experience:  5,
			Specializations: []models.Specialization{
				{Name: "Diagnostics"},
			},
		},
		oilChange: models.Service{Name: "Oil change", Price: price("1500.50")},
		brakes:    models.Service{Name: "Brake pads", Price: price("4200.00")},
		wash:      models.Service{Name: "Wash", Price: price("0.10")},
		polish:    models.Service{Name: "Polish", Price: price("0.20")},
		box1:      models.Box{BoxNumber: 1, PlaceNumber: 1},
		box2:      models.Box{BoxNumber: 2, PlaceNumber: 1},
	}

	require.NoError(t, db.Create(&f.client).Error)
	require.NoError(t, db.Create(&f.otherClient).Error)
	require.NoError(t, db.Create(&f.employee).Error)
	for _, svc := range []*models.Service{&f.oilChange, &f.brakes, &f.wash, &f.polish} {
		require.NoError(t, db.Create(svc).Error)
	}
	require.NoError(t, db.Create(&f.box1).Error)
	require.NoError(t, db.Create(&f.box2).Error)

	carModel := models.CarModel{Brand: "Toyota", Model: "Camry"}
	require.NoError(t, db.Create(&carModel).Error)

	f.car = models.ClientCar{
		StateNumber:  "A123BC77",
		VIN:          "JTNB11HK103000001",
		BodyType:     "sedan",
		Mileage:      42000,
		Transmission: "automatic",
		ClientID:     f.client.ID,
		CarModelID:   &carModel.ID,
	}
	f.otherCar = models.ClientCar{
		StateNumber:  "B456CD77",
		VIN:          "JTNB11HK103000002",
		BodyType:     "hatchback",
		Mileage:      1000,
		Transmission: "manual",
		ClientID:     f.otherClient.ID,
	}
	require.NoError(t, db.Create(&f.car).Error)
	require.NoError(t, db.Create(&f.otherCar).Error)

	return f
}

func uintPtr(v uint) *uint {
	return &v
}

func strPtr(s string) *string {
	return &s
}

func timePtr(t time.Time) *time.Time {
	return &t
}

// orderInput is a valid creation payload for the fixture's client and car
func (f *fixture) orderInput(lines ...LineInput) CreateOrderInput {
	if len(lines) == 0 {
		lines = []LineInput{{ServiceID: f.oilChange.ID, Count: 1}}
	}
	return CreateOrderInput{
		ClientID:   uintPtr(f.client.ID),
		CarID:      uintPtr(f.car.ID),
		CreateDate: timePtr(time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)),
		Services:   lines,
	}
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func createOrder(t *testing.T, m *OrderManager, in CreateOrderInput) *models.Order {
	t.Helper()
	order, _, err := m.Create(context.Background(), in)
	require.NoError(t, err)
	return order
}
