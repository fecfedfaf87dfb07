package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/autoservice/garage-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadsRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	previous := utils.UploadDir
	utils.UploadDir = dir
	t.Cleanup(func() { utils.UploadDir = previous })

	router := gin.New()
	router.GET("/api/uploads/:filename", GetUploadedImage)
	return router, dir
}

func TestGetUploadedImage_Success(t *testing.T) {
	router, dir := uploadsRouter(t)

	tests := []struct {
		filename    string
		contentType string
	}{
		{filename: "vesta.png", contentType: "image/png"},
		{filename: "vesta.JPG", contentType: "image/jpeg"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			content := []byte("picture of " + tt.filename)
			require.NoError(t, os.WriteFile(filepath.Join(dir, tt.filename), content, 0644))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/uploads/"+tt.filename, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.contentType, w.Header().Get("Content-Type"))
			assert.Equal(t, "public, max-age=86400", w.Header().Get("Cache-Control"))
			assert.Equal(t, content, w.Body.Bytes())
		})
	}
}

func TestGetUploadedImage_Errors(t *testing.T) {
	router, dir := uploadsRouter(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedError  string
	}{
		{name: "missing file", path: "/api/uploads/missing.png", expectedStatus: http.StatusNotFound, expectedError: "FILE_NOT_FOUND"},
		{name: "not an image", path: "/api/uploads/notes.txt", expectedStatus: http.StatusBadRequest, expectedError: "INVALID_FILE_TYPE"},
		{name: "dot dot", path: "/api/uploads/..secret.png", expectedStatus: http.StatusBadRequest, expectedError: "INVALID_FILENAME"},
		{name: "encoded slash", path: "/api/uploads/..%5Csecret.png", expectedStatus: http.StatusBadRequest, expectedError: "INVALID_FILENAME"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedError, errorCode(response))
		})
	}
}
