package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/autoservice/garage-api/models"
	"github.com/autoservice/garage-api/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func carModelRouter() *gin.Engine {
	router := setupTestRouter()
	router.GET("/api/car-model", ListCarModels)
	router.PUT("/api/car-model/:id/image", UploadCarModelImage)
	return router
}

func uploadImage(t *testing.T, router *gin.Engine, path, field, filename string, content []byte) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPut, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return w, response
}

func TestUploadCarModelImage(t *testing.T) {
	db := setupTestDB(t)
	images := services.NewMockImageService()
	images.SetAsMockForTesting()
	t.Cleanup(func() { services.SetImageService(nil) })

	carModel := models.CarModel{Brand: "Skoda", Model: "Octavia"}
	require.NoError(t, db.Create(&carModel).Error)
	path := fmt.Sprintf("/api/car-model/%d/image", carModel.ID)
	router := carModelRouter()

	tests := []struct {
		name           string
		path           string
		field          string
		filename       string
		expectedStatus int
		expectedError  string
	}{
		{name: "png upload", path: path, field: "image", filename: "octavia.png", expectedStatus: http.StatusOK},
		{name: "jpeg upload", path: path, field: "image", filename: "octavia.jpeg", expectedStatus: http.StatusOK},
		{name: "wrong format", path: path, field: "image", filename: "octavia.bmp", expectedStatus: http.StatusBadRequest, expectedError: "INVALID_FILE_FORMAT"},
		{name: "wrong field", path: path, field: "file", filename: "octavia.png", expectedStatus: http.StatusBadRequest, expectedError: "NO_FILE"},
		{name: "unknown model", path: "/api/car-model/999/image", field: "image", filename: "octavia.png", expectedStatus: http.StatusNotFound, expectedError: "CAR_MODEL_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, response := uploadImage(t, router, tt.path, tt.field, tt.filename, []byte("image bytes"))
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, errorCode(response))
				return
			}
			data := response["data"].(map[string]interface{})
			assert.Contains(t, data["imageUrl"], "https://images.test/")
			assert.NotContains(t, data, "imageKey")
		})
	}

	assert.Equal(t, 1, images.Count(), "each upload replaced the previous picture")

	w, response := performJSON(t, router, http.MethodGet, "/api/car-model", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := response["data"].([]interface{})
	require.Len(t, list, 1)
	assert.NotEmpty(t, list[0].(map[string]interface{})["imageUrl"])
}

func TestUploadCarModelImage_NoStorage(t *testing.T) {
	db := setupTestDB(t)
	services.SetImageService(nil)

	carModel := models.CarModel{Brand: "Skoda", Model: "Rapid"}
	require.NoError(t, db.Create(&carModel).Error)

	w, response := uploadImage(t, carModelRouter(), fmt.Sprintf("/api/car-model/%d/image", carModel.ID), "image", "rapid.png", []byte("x"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "IMAGE_STORAGE_UNAVAILABLE", errorCode(response))
}
