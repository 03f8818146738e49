package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/authstack/backend/internal/model"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} model.HealthResponse
// @Failure 500 {object} model.HealthResponse
// @Router /health [get]
func Health(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, model.HealthResponse{
				Status: "error",
				DB:     "disconnected",
			})
			return
		}

		c.JSON(http.StatusOK, model.HealthResponse{
			Status: "ok",
			DB:     "connected",
		})
	}
}
