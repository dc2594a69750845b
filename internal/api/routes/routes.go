package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/WadiaaTouhami/EngAccent-detection/internal/api/handlers"
)

type Deps struct {
	Process *handlers.ProcessHandler
	Web     *handlers.WebHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	// REST
	r.POST("/process", d.Process.Process)

	// Web form
	r.GET("/", d.Web.Form)
	r.POST("/analyze", d.Web.Analyze)
}
