package controllers

import (
	"net/http"

	"github.com/autoservice/garage-api/services"
	"github.com/gin-gonic/gin"
)

// CreateOrder handles POST /api/order - creates an order with its services in one transaction
func CreateOrder(c *gin.Context) {
	var req services.CreateOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, warnings, err := orderManager().Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	body := gin.H{
		"success": true,
		"data":    order,
	}
	if len(warnings) > 0 {
		body["warnings"] = warnings
	}
	c.JSON(http.StatusCreated, body)
}

// ListOrders handles GET /api/order?date=YYYY-MM-DD - the day's orders, or all orders without a date
func ListOrders(c *gin.Context) {
	orders, err := scheduleService().ListForDay(c.Request.Context(), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// GetOrder handles GET /api/order/:id
func GetOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	order, err := orderManager().Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateOrder handles PUT /api/order/:id - status, master, box and the service list
func UpdateOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := orderManager().Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// DeleteOrder handles DELETE /api/order/:id
func DeleteOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := orderManager().Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order deleted",
	})
}
