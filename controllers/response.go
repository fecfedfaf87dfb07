package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/autoservice/garage-api/config"
	"github.com/autoservice/garage-api/services"
	"github.com/autoservice/garage-api/utils"
	"github.com/gin-gonic/gin"
)

var statusByKind = map[services.ErrorKind]int{
	services.KindValidation: http.StatusBadRequest,
	services.KindNotFound:   http.StatusNotFound,
	services.KindInternal:   http.StatusInternalServerError,
}

// respondError writes the error envelope for any service error
func respondError(c *gin.Context, err error) {
	var uploadErr *utils.FileUploadError
	if errors.As(err, &uploadErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    uploadErr.Code,
				"kind":    services.KindValidation,
				"message": uploadErr.Message,
			},
		})
		return
	}

	appErr := services.AsAppError(err)
	status, ok := statusByKind[appErr.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	body := gin.H{
		"code":    appErr.Code,
		"kind":    appErr.Kind,
		"message": appErr.Message,
	}
	if appErr.Err != nil {
		body["details"] = appErr.Err.Error()
	}
	if status == http.StatusInternalServerError {
		log.Printf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		_ = c.Error(err)
	}

	c.JSON(status, gin.H{
		"success": false,
		"error":   body,
	})
}

// respondBindError reports a malformed request body
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"kind":    services.KindValidation,
			"message": "Invalid request data",
			"details": err.Error(),
		},
	})
}

// parseID reads a positive numeric path parameter, writing a 400 when it is not one
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"kind":    services.KindValidation,
				"message": "Identifier must be a positive integer",
			},
		})
		return 0, false
	}
	return uint(id), true
}

func orderManager() *services.OrderManager {
	return services.NewOrderManager(config.GetDB(), services.GetScheduleCache())
}

func scheduleService() *services.ScheduleService {
	return services.NewScheduleService(config.GetDB(), services.GetScheduleCache(), config.ScheduleLocation())
}
