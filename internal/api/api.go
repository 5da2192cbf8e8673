package api

import (
	"context"
	"net/http"
	"time"

	referralHandler "referral-server/internal/referral/handler"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing service is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

type API struct {
	router          *gin.RouterGroup
	referralHandler referralHandler.Handler
	rateLimit       gin.HandlerFunc
	db              Pinger
}

func New(router *gin.RouterGroup, handler referralHandler.Handler, rateLimit gin.HandlerFunc, db Pinger) API {
	return API{
		router:          router,
		referralHandler: handler,
		rateLimit:       rateLimit,
		db:              db,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()
	v1 := a.router.Group("/api/v1")
	{
		v1.GET("/referrals", a.referralHandler.HandleListReferrals)
		v1.GET("/referrals/:id", a.referralHandler.HandleGetReferral)

		mutations := v1.Group("", a.rateLimit)
		mutations.POST("/referrals", a.referralHandler.HandleCreateReferral)
		mutations.PUT("/referrals/:id", a.referralHandler.HandleUpdateReferral)
		mutations.DELETE("/referrals/:id", a.referralHandler.HandleDeleteReferral)
		mutations.POST("/avatars", a.referralHandler.HandleUploadAvatar)
	}
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	a.router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := a.db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"message": "database unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}
