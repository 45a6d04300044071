package service

import (
	"github.com/gin-gonic/gin"
	"net/http"
)

const (
	CodeSuccess     = 20000
	CodeBadRequest  = 40001
	CodeUnknownNode = 40004
	CodeNoDatabase  = 50001
	CodeDBFailure   = 50002
)

// NewRouter wires every handler.
func NewRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/ping", HandlePing)
	r.POST("/trace", HandleTrace)
	r.POST("/communications/:batch", HandleStoreCommunications)
	r.GET("/trace/:batch", HandleStoredTrace)
	return r
}

func HandlePing(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to use virus trace service")
}

func fail(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, gin.H{"code": code, "message": message})
}

func succeed(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"code": CodeSuccess, "message": "success", "data": data})
}
