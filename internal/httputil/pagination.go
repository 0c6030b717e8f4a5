package httputil

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// ParsePagination parses the offset and limit query parameters.
// Defaults are 0 and 50; limit cannot exceed 100.
func ParsePagination(c *gin.Context) (offset, limit int, err error) {
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0, 0, apperrors.Wrap(
			apperrors.ErrInvalidInput,
			"invalid offset parameter: must be a non-negative integer",
		)
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 100 {
		return 0, 0, apperrors.Wrap(
			apperrors.ErrInvalidInput,
			"invalid limit parameter: must be between 1 and 100",
		)
	}

	return offset, limit, nil
}
