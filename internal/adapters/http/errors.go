package http

import (
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotes-service/internal/adapters/http/dto"
)

// notFound answers unknown operations, including known paths under the wrong method. NOT_FOUND is a
// transport-level code, outside the operation error kinds.
func notFound(c *gin.Context) {
	dto.AbortWithCode(c, dto.ErrorCodeNotFound, "unknown operation: "+c.Request.Method+" "+c.Request.URL.Path)
}
