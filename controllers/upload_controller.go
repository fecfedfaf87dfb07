package controllers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/autoservice/garage-api/services"
	"github.com/autoservice/garage-api/utils"
	"github.com/gin-gonic/gin"
)

// GetUploadedImage handles GET /api/uploads/:filename - serves locally stored car model pictures
func GetUploadedImage(c *gin.Context) {
	filename := c.Param("filename")

	if !utils.IsSafeFileName(filename) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_FILENAME",
				"kind":    services.KindValidation,
				"message": "Invalid filename",
			},
		})
		return
	}

	contentType := utils.ImageContentType(filename)
	if contentType == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_FILE_TYPE",
				"kind":    services.KindValidation,
				"message": "Only PNG and JPEG images are served",
			},
		})
		return
	}

	filePath := filepath.Join(utils.UploadDir, filename)
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_NOT_FOUND",
				"kind":    services.KindNotFound,
				"message": "Image not found",
			},
		})
		return
	}

	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "public, max-age=86400")
	c.File(filePath)
}
