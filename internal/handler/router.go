package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"gear-ledger/internal/domain/user"
	"gear-ledger/internal/handler/api"
	"gear-ledger/internal/handler/middleware"
	"gear-ledger/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Assets       *api.AssetHandler
	Transactions *api.TransactionHandler
	Presets      *api.PresetHandler
	Users        *api.UserHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// request logging wraps recovery so panics still get a log line with their request id
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.Recovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())

	elevated := authMiddleware.RequireRoleAtLeast(user.RoleOperator)
	admin := authMiddleware.RequireRoleAtLeast(user.RoleAdmin)

	addRoutes(apiGroup.Group("/assets"), []route{
		{Method: http.MethodPost, Path: "", Handler: h.Assets.Create, Mw: []gin.HandlerFunc{elevated}},
		{Method: http.MethodGet, Path: "/:id", Handler: h.Assets.Get},
		{Method: http.MethodGet, Path: "/:id/transactions", Handler: h.Assets.History},
	})

	addRoutes(apiGroup.Group("/transactions"), []route{
		{Method: http.MethodPost, Path: "", Handler: h.Transactions.Process},
		{Method: http.MethodPost, Path: "/batch", Handler: h.Transactions.ProcessBatch},
		{Method: http.MethodPost, Path: "/preflight", Handler: h.Transactions.Preflight},
		{Method: http.MethodGet, Path: "/:id", Handler: h.Transactions.Get},
	})

	addRoutes(apiGroup.Group("/presets"), []route{
		{Method: http.MethodGet, Path: "", Handler: h.Presets.List},
		{Method: http.MethodPost, Path: "", Handler: h.Presets.Create, Mw: []gin.HandlerFunc{elevated}},
		{Method: http.MethodPost, Path: "/detect", Handler: h.Presets.Detect},
		{Method: http.MethodPost, Path: "/:id/substitutions/validate", Handler: h.Presets.ValidateSubstitutions},
	})

	addRoutes(apiGroup.Group("/users"), []route{
		{Method: http.MethodPost, Path: "/:id/transfer", Handler: h.Users.Transfer, Mw: []gin.HandlerFunc{admin}},
		{Method: http.MethodGet, Path: "/:id/checkouts", Handler: h.Users.Checkouts},
	})
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
