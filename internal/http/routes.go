package http

import (
	"time"

	"dulpton/internal/config"
	"dulpton/internal/http/handlers"
	"dulpton/internal/http/middleware"
	"dulpton/internal/service"
	"dulpton/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes wires the full HTTP surface. db may be nil when running on
// the in-memory store; it is only used by the health endpoints.
func RegisterRoutes(r *gin.Engine, svc *service.Services, db *pgxpool.Pool, cfg *config.Config, version string, hub *ws.Hub) {
	h := handlers.NewHandler(svc)
	healthHandler := handlers.NewHealthHandler(db, version)

	apiRateWindow := time.Duration(cfg.APIRateWindow) * time.Second
	authRateWindow := time.Duration(cfg.AuthRateWindow) * time.Second
	actionRateWindow := time.Duration(cfg.ActionRateWindow) * time.Second

	// Without Redis the fixed-window limiter fails open, so fall back to the
	// in-process limiter for the per-IP windows.
	ipLimiter := middleware.RedisRateLimit
	if cfg.RedisAddr == "" {
		ipLimiter = middleware.SimpleRateLimit
	}

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	// API v1 routes
	v1 := r.Group("/api/v1")
	v1.Use(ipLimiter(cfg.APIRateLimit, apiRateWindow))
	registerAPIRoutes(v1, h, cfg, ipLimiter, authRateWindow, actionRateWindow)

	// Legacy /api routes (same surface, for older clients)
	api := r.Group("/api")
	api.Use(ipLimiter(cfg.APIRateLimit, apiRateWindow))
	api.GET("/health", healthHandler.Health)
	registerAPIRoutes(api, h, cfg, ipLimiter, authRateWindow, actionRateWindow)

	// WebSocket activity feed
	r.GET("/ws/feed", h.Feed(hub))
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler, cfg *config.Config, ipLimiter func(int, time.Duration) gin.HandlerFunc, authRateWindow, actionRateWindow time.Duration) {
	authRL := ipLimiter(cfg.AuthRateLimit, authRateWindow)
	api.POST("/auth/register", authRL, h.Register)
	api.POST("/auth/login", authRL, h.Login)

	// Account
	api.GET("/me", middleware.JWT(), h.Me)
	api.GET("/activities", middleware.JWT(), h.Activities)
	api.GET("/referrals", middleware.JWT(), h.GetReferrals)
	api.GET("/referrals/code/:code", h.LookupReferralCode)

	// Collection and claim endpoints get a per-user limiter on top of the
	// per-IP one.
	actionRL := middleware.ActionRateLimit(cfg.ActionRateLimit, actionRateWindow)

	// Mining
	api.GET("/mining", middleware.JWT(), h.GetMining)
	api.POST("/mining/start", middleware.JWT(), h.StartMining)
	api.POST("/mining/stop", middleware.JWT(), h.StopMining)
	api.POST("/mining/collect", middleware.JWT(), actionRL, h.CollectMining)

	// Staking
	api.GET("/staking/pools", h.GetStakingPools)
	api.GET("/staking/stakes", middleware.JWT(), h.GetStakes)
	api.POST("/staking/stake", middleware.JWT(), h.Stake)
	api.POST("/staking/stakes/:id/collect", middleware.JWT(), actionRL, h.CollectStaking)
	api.POST("/staking/stakes/:id/unstake", middleware.JWT(), h.Unstake)

	// Daily rewards
	api.GET("/daily-rewards", middleware.JWT(), h.DailyStatus)
	api.POST("/daily-rewards/claim", middleware.JWT(), actionRL, h.ClaimDaily)

	// Store
	api.GET("/store/items", h.GetStoreItems)
	api.POST("/store/items/:id/purchase", middleware.JWT(), h.Purchase)
	api.GET("/store/inventory", middleware.JWT(), h.GetInventory)
}
