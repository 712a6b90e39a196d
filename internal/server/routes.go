package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danmuck/mayactl/internal/bridge"
	"github.com/danmuck/mayactl/internal/tools"
)

func registerRoutes(router *gin.Engine, mgr *bridge.Manager, reg *tools.Registry) {
	started := time.Now()

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "mayactl",
			"uptime":  time.Since(started).String(),
		})
	})

	router.GET("/status", func(c *gin.Context) {
		status := gin.H{
			"bridge_state": string(mgr.State()),
			"bridge_addr":  mgr.Config().Addr(),
			"tool_count":   len(reg.List()),
		}
		if err := mgr.LastError(); err != nil {
			status["last_error"] = err.Error()
		}
		c.JSON(http.StatusOK, status)
	})

	router.GET("/tools", func(c *gin.Context) {
		names := make([]string, 0)
		for _, spec := range reg.List() {
			names = append(names, spec.Name)
		}
		c.JSON(http.StatusOK, gin.H{"tools": names})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
