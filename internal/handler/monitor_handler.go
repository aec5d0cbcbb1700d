package handler

import (
	"math/rand"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SystemMonitor serves the dashboard gauges. The values are simulated;
// real host metrics are deliberately not collected here.
func (h *Handler) SystemMonitor(c *gin.Context) {
	cpuUsage := rand.Float64() * 100
	usedMemory := rand.Intn(8000) + 2000
	totalMemory := 16000
	memRatio := float64(usedMemory) / float64(totalMemory)

	c.JSON(http.StatusOK, gin.H{
		"cpu": gin.H{
			"usage":  cpuUsage,
			"status": usageStatus(cpuUsage/100, 0.5, 0.8),
		},
		"memory": gin.H{
			"used":   usedMemory,
			"total":  totalMemory,
			"usage":  int(memRatio * 100),
			"status": usageStatus(memRatio, 0.7, 0.9),
		},
		"uptime": "up 2 hours, 15 minutes",
		"network": gin.H{
			"status":  "connected",
			"quality": "good",
		},
	})
}

func usageStatus(ratio, medium, high float64) string {
	switch {
	case ratio < medium:
		return "good"
	case ratio < high:
		return "medium"
	default:
		return "high"
	}
}
