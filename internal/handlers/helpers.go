package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
)

// paramID parses a positive numeric path parameter. On failure it has
// already written a 400.
func paramID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_"+name, name+" must be a positive integer.")
		return 0, false
	}
	return uint(v), true
}

// bindJSON decodes the body into req. On failure it has already written a 400.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return false
	}
	return true
}
