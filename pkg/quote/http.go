// Copyright (C) 2025, ADXYZ Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package quote

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/luxfi/dutch/core"
	"github.com/luxfi/dutch/pkg/ids"
	"github.com/luxfi/dutch/pkg/resolver"
)

// NewRouter builds the HTTP surface of the quote service
func NewRouter(svc *Service, env string) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(config))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Unix(),
		})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/orders", svc.handleRegister)
		api.GET("/orders", svc.handleList)
		api.GET("/orders/:id", svc.handleGet)
		api.DELETE("/orders/:id", svc.handleRemove)
		api.GET("/orders/:id/quote", svc.handleQuote)
		api.GET("/orders/:id/stream", svc.handleStream)
	}

	return router
}

func (s *Service) handleRegister(c *gin.Context) {
	var order core.DutchOrder
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := s.Register(&order)
	if err != nil {
		if errors.Is(err, ErrDuplicateOrder) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		// Misconfigured orders are rejected outright, never retried.
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order_id": id.String()})
}

func (s *Service) handleList(c *gin.Context) {
	orders := s.List()
	entries := make([]gin.H, len(orders))
	for i, order := range orders {
		entries[i] = gin.H{
			"order_id": order.Hash().String(),
			"order":    order,
		}
	}
	c.JSON(http.StatusOK, gin.H{"orders": entries})
}

func (s *Service) handleGet(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	order, err := s.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *Service) handleRemove(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	if err := s.Remove(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Service) handleQuote(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	resp, err := s.Quote(id)
	if err != nil {
		switch {
		case errors.Is(err, ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, resolver.ErrOrderExpired):
			c.JSON(http.StatusGone, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

func parseOrderID(c *gin.Context) (ids.ID, bool) {
	id, err := ids.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return ids.Empty, false
	}
	return id, true
}
