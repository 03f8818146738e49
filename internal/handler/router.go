package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/authstack/backend/internal/service"
)

const (
	authRatePerMinute = 5
	authRateBurst     = 5
	rateCacheSize     = 4096
	rateEntryTTL      = 10 * time.Minute
)

type RouterDeps struct {
	Auth   *service.AuthService
	Users  *service.UserService
	DB     Pinger
	Cookie CookieConfig
	Logger *zap.Logger
	CORS   []string
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(deps.Logger))
	r.Use(CORSMiddleware(deps.CORS, true))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	authHandler := NewAuthHandler(deps.Auth, deps.Cookie)
	userHandler := NewUserHandler(deps.Users)
	guard := AuthMiddleware(deps.Auth)
	limiter := RateLimitPerIP(authRatePerMinute, authRateBurst, rateCacheSize, rateEntryTTL)

	auth := r.Group("/auth")
	{
		auth.POST("/signup", limiter, authHandler.Signup)
		auth.POST("/login", limiter, authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/me", guard, authHandler.Me)
	}

	users := r.Group("/users")
	{
		users.GET("", userHandler.List)
		users.GET("/:id", guard, userHandler.GetByID)
	}

	r.GET("/health", Health(deps.DB))

	return r
}
