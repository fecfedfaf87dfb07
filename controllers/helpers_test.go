package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/autoservice/garage-api/config"
	"github.com/autoservice/garage-api/models"
	"github.com/autoservice/garage-api/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB installs a fresh in-memory database as the process database
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))

	config.SetDB(db)
	config.SetConfig(nil)
	services.SetScheduleCache(nil)
	return db
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

type registry struct {
	client   models.Client
	car      models.ClientCar
	employee models.Employee
	oil      models.Service
	filter   models.Service
	box      models.Box
}

func seedRegistry(t *testing.T, db *gorm.DB) *registry {
	t.Helper()

	r := &registry{
		client:   models.Client{PhoneNumber: "+79991112233", FirstName: "Oleg", LastName: "Ivanov"},
		employee: models.Employee{PhoneNumber: "+79994445566", FirstName: "Pavel", LastName: "Orlov", Salary: decimal.RequireFromString("55000")},
		oil:      models.Service{Name: "Oil change", Price: decimal.RequireFromString("1200.00")},
		filter:   models.Service{Name: "Air filter", Price: decimal.RequireFromString("350.50")},
		box:      models.Box{BoxNumber: 1, PlaceNumber: 1},
	}
	require.NoError(t, db.Create(&r.client).Error)
	require.NoError(t, db.Create(&r.employee).Error)
	require.NoError(t, db.Create(&r.oil).Error)
	require.NoError(t, db.Create(&r.filter).Error)
	require.NoError(t, db.Create(&r.box).Error)

	carModel := models.CarModel{Brand: "Lada", Model: "Vesta"}
	require.NoError(t, db.Create(&carModel).Error)
	r.car = models.ClientCar{
		StateNumber:  "E777KX99",
		VIN:          "XTAGFL110LY000001",
		BodyType:     "sedan",
		Mileage:      12000,
		Transmission: "manual",
		ClientID:     r.client.ID,
		CarModelID:   &carModel.ID,
	}
	require.NoError(t, db.Create(&r.car).Error)
	return r
}

// performJSON sends body as JSON and decodes the envelope
func performJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), w.Body.String())
	return w, response
}

func errorCode(response map[string]interface{}) string {
	errData, ok := response["error"].(map[string]interface{})
	if !ok {
		return ""
	}
	code, _ := errData["code"].(string)
	return code
}

func decimalField(t *testing.T, data map[string]interface{}, key string) decimal.Decimal {
	t.Helper()
	s, ok := data[key].(string)
	require.True(t, ok, "%s should be a decimal string, got %v", key, data[key])
	return decimal.RequireFromString(s)
}
