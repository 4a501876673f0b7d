package httpx

import (
	"github.com/gin-gonic/gin"
)

// Parse extracts request parameters into req (uri + query + body).
// Supports uri/form/json tags; missing tag groups are skipped silently so a
// DTO can declare only the sources it cares about.
func Parse(c *gin.Context, req interface{}) error {
	// uri params (:id)
	_ = c.ShouldBindUri(req)

	// query params (form tag)
	_ = c.ShouldBindQuery(req)

	// body (json tag), only when a body is present
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(req); err != nil {
			return err
		}
	}
	return nil
}
