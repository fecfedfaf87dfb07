package controllers

import (
	"net/http"

	"github.com/autoservice/garage-api/config"
	"github.com/autoservice/garage-api/services"
	"github.com/gin-gonic/gin"
)

// ListServices handles GET /api/service - the price list sorted by name
func ListServices(c *gin.Context) {
	list, err := services.NewCatalog(config.GetDB(), services.GetScheduleCache()).List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": list})
}

// GetService handles GET /api/service/:id
func GetService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	svc, err := services.NewCatalog(config.GetDB(), services.GetScheduleCache()).Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": svc})
}

// CreateService handles POST /api/service
func CreateService(c *gin.Context) {
	var req services.ServiceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	svc, err := services.NewCatalog(config.GetDB(), services.GetScheduleCache()).Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": svc})
}

// UpdateService handles PUT /api/service/:id - partial update; stored order prices do not change
func UpdateService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.ServiceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	svc, err := services.NewCatalog(config.GetDB(), services.GetScheduleCache()).Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": svc})
}

// DeleteService handles DELETE /api/service/:id
func DeleteService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := services.NewCatalog(config.GetDB(), services.GetScheduleCache()).Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Service deleted"})
}

// ListBoxes handles GET /api/box
func ListBoxes(c *gin.Context) {
	boxes, err := services.NewBoxRegistry(config.GetDB()).List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": boxes})
}

// CreateBox handles POST /api/box
func CreateBox(c *gin.Context) {
	var req services.BoxInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	box, err := services.NewBoxRegistry(config.GetDB()).Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": box})
}
