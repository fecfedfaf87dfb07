package controllers

import (
	"net/http"

	"github.com/autoservice/garage-api/planner"
	"github.com/gin-gonic/gin"
)

// GetScheduleBoard handles GET /api/schedule/board?date=YYYY-MM-DD - the laid out planning board
func GetScheduleBoard(c *gin.Context) {
	schedule := scheduleService()

	board, err := schedule.Board(c.Request.Context(), c.Query("date"), planner.DefaultGrid(schedule.Location()))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    board,
	})
}
