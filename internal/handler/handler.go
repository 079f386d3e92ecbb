// Package handler wires the HTTP surface: one handler type per resource,
// each registering its own routes behind the role middleware.
package handler

import (
	"hosteladmin/internal/apperr"
	"hosteladmin/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// fail maps a service error to the client-facing failure response.
func fail(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	c.JSON(status, response.Error(status, err.Error()))
}

// pathUUID parses a uuid path parameter, failing the request on bad input.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		fail(c, apperr.Validationf("invalid %s", name))
		return uuid.Nil, false
	}
	return id, true
}
