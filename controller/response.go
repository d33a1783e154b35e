package controller

import (
	"errors"
	"net/http"
	"strconv"

	"pos/config"
	"pos/service"

	"github.com/gin-gonic/gin"
)

func respondOK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func respondCreated(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func respondBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   msg,
	})
}

// respondError maps service errors onto status codes. Anything that is not a known
// service error is logged and returned as 500.
func respondError(c *gin.Context, funcName string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		config.LogError(config.GetLogger(), "controller", funcName, c.Request.Method+" "+c.FullPath(),
			gin.H{"request_id": c.GetString("request_id")}, err)
	}

	c.JSON(status, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}

func parseID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	if raw == "" {
		respondBadRequest(c, "ID is required")
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		respondBadRequest(c, "Invalid ID format")
		return 0, false
	}
	return uint(id), true
}

func enabledOnly(c *gin.Context) bool {
	v, _ := strconv.ParseBool(c.Query("enabled"))
	return v
}
