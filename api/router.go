package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const apiVersion = "v1"

// NewRouter wires Controller onto a gin engine, adapted from the
// teacher's router.go.
func NewRouter(controller *Controller) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	group := router.Group("/api/" + apiVersion)
	group.POST("/:sheet_id/:cell_id/subscribe", controller.SubscribeAction)
	group.POST("/:sheet_id/:cell_id", controller.SetCellAction)
	group.GET("/:sheet_id/:cell_id", controller.GetCellAction)
	group.GET("/:sheet_id", controller.GetSheetAction)

	router.GET("/healthcheck", func(c *gin.Context) {
		c.String(http.StatusOK, "health")
	})

	return router
}
