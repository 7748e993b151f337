package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/noreyni/webhook-api/pkg/paging"
)

// bindPaging reads page/size query parameters. Oversized pages are rejected
// here, before any query runs.
func bindPaging(c *gin.Context) (paging.Request, error) {
	var page paging.Request
	if err := c.ShouldBindQuery(&page); err != nil {
		return paging.Request{}, ErrInvalidRequest
	}
	if page.Size > paging.MaxSize {
		return paging.Request{}, errPageSizeTooBig
	}
	return page, nil
}

func queryTrimmed(c *gin.Context, key string) string {
	return strings.TrimSpace(c.Query(key))
}
