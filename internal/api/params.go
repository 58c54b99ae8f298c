package api

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pranauww/gym-startup/internal/db"
)

// pageRequest reads page/limit query parameters. Absent or malformed
// values fall back to defaults; the limit ceiling is applied in
// db.NewPageRequest.
func pageRequest(c *gin.Context) db.PageRequest {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(db.DefaultLimit)))
	return db.NewPageRequest(page, limit)
}

// pathID reads a positive integer path parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// listResponse is the shape of every paginated listing.
type listResponse struct {
	Items      interface{}   `json:"items"`
	Pagination db.Pagination `json:"pagination"`
}
