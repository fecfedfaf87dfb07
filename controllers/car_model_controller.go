package controllers

import (
	"net/http"

	"github.com/autoservice/garage-api/config"
	"github.com/autoservice/garage-api/services"
	"github.com/gin-gonic/gin"
)

// ListCarModels handles GET /api/car-model - car models with their picture links
func ListCarModels(c *gin.Context) {
	list, err := services.NewCarModels(config.GetDB(), services.GetImageService()).List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": list})
}

// UploadCarModelImage handles PUT /api/car-model/:id/image - multipart field "image", PNG or JPEG
func UploadCarModelImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NO_FILE",
				"kind":    services.KindValidation,
				"message": "Multipart field \"image\" is required",
			},
		})
		return
	}

	carModel, err := services.NewCarModels(config.GetDB(), services.GetImageService()).SetImage(c.Request.Context(), id, fileHeader)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": carModel})
}
