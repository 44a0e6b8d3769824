package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/florashop/flora-backend/internal/errors"
)

// parseUintParam reads a numeric path parameter, responding with 400
// itself when the value is not a positive integer.
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(value), true
}
