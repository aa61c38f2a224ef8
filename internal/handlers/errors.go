package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/huangang/taskflow/internal/services"
	"github.com/huangang/taskflow/pkg/response"
)

// writeError maps service error types onto the response envelope: missing
// entities are 404, rejected input is 400, colliding state is 409, anything
// else is a 500.
func writeError(c *gin.Context, err error) {
	var nf *services.NotFoundError
	var ve *services.ValidationError
	var conflict *services.ConflictError

	switch {
	case errors.As(err, &nf):
		response.NotFound(c, err.Error())
	case errors.As(err, &ve):
		response.BadRequest(c, err.Error())
	case errors.As(err, &conflict):
		response.Error(c, response.NewConflict(err.Error()))
	default:
		response.ServerError(c, err.Error())
	}
}

// parseID reads a numeric :id path parameter.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
