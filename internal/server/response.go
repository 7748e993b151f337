package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/noreyni/webhook-api/pkg/paging"
)

// Response is the envelope every endpoint answers with, success or failure.
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    any          `json:"data,omitempty"`
	Meta    *paging.Meta `json:"meta,omitempty"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message})
}

func respondPage(c *gin.Context, data any, meta paging.Meta) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data, Meta: &meta})
}
