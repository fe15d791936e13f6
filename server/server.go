package server

import (
	"inventory-server/auth"
	"inventory-server/cache"
	"inventory-server/confs"
	"inventory-server/db"
	"inventory-server/entities"
	"inventory-server/handlers"
	httpHandler "inventory-server/handlers/http"
	"inventory-server/pkg/metrics"
	"inventory-server/repositories"
	"inventory-server/services"
	"inventory-server/usecases"
	"inventory-server/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Server struct {
	app *gin.Engine
	db  db.Database
	cfg *confs.Config
}

func NewServer(database db.Database, cfg *confs.Config) *Server {
	return &Server{
		app: gin.Default(),
		db:  database,
		cfg: cfg,
	}
}

func (s *Server) Start() error {
	// Setup CORS middleware
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	s.app.Use(cors.New(config))
	s.app.Use(metrics.Middleware())

	// Setup healthcheck and metrics routes
	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})
	s.app.GET("/metrics", metrics.Handler())

	// Initialize record stores and repositories
	userStore := repositories.NewRecordStore[entities.User](s.db)
	drawerStore := repositories.NewRecordStore[entities.Drawer](s.db)
	objectStore := repositories.NewRecordStore[entities.Object](s.db)
	typeStore := repositories.NewRecordStore[entities.ObjectType](s.db)
	actionStore := repositories.NewRecordStore[entities.ActionHistory](s.db)

	userRepo := repositories.NewUserRepository(s.db)
	drawerRepo := repositories.NewDrawerRepository(s.db)
	objectRepo := repositories.NewObjectRepository(s.db)

	// Initialize use cases
	actionUseCase := usecases.NewActionHistoryUseCase(actionStore)
	userUseCase := usecases.NewUserUseCase(userStore, userRepo, actionUseCase)
	drawerUseCase := usecases.NewDrawerUseCase(drawerStore, drawerRepo, actionUseCase)
	objectUseCase := usecases.NewObjectUseCase(objectStore, drawerStore, typeStore, objectRepo, actionUseCase)
	typeUseCase := usecases.NewObjectTypeUseCase(typeStore, actionUseCase)

	// Recommendation bridge and per-drawer cache
	recommender := services.NewRecommender(s.cfg, objectUseCase, drawerUseCase)
	recCache := cache.NewRecommendationCache(s.cfg.RecommendationTTL)

	// WebSocket manager feeds audit entries to connected users
	manager := ws.NewManager()
	actionUseCase.SetNotifier(manager)
	wsHandler := handlers.NewWSHandler(manager)

	// Initialize handlers
	tokens := auth.NewTokenManager(s.cfg.JWTSecret, s.cfg.TokenDuration)
	userHandler := httpHandler.NewUserHandler(userUseCase, tokens)
	drawerHandler := httpHandler.NewDrawerHandler(drawerUseCase)
	objectHandler := httpHandler.NewObjectHandler(objectUseCase, recCache)
	typeHandler := httpHandler.NewObjectTypeHandler(typeUseCase)
	actionHandler := httpHandler.NewActionHistoryHandler(actionUseCase)
	recHandler := httpHandler.NewRecommendationHandler(recommender, drawerUseCase, objectUseCase, recCache)
	cacheHandler := handlers.NewCacheHandler(recCache)

	authRequired := auth.Middleware(tokens)

	// Setup API routes
	api := s.app.Group("/api/v1")
	{
		// Auth routes
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", userHandler.Register)
			authGroup.POST("/login", userHandler.Login)
		}

		// User routes
		users := api.Group("/users", authRequired)
		{
			users.GET("/me", userHandler.Me)
			users.PUT("/me", userHandler.Update)
			users.DELETE("/me", userHandler.Delete)
		}

		// Drawer routes
		drawers := api.Group("/drawers", authRequired)
		{
			drawers.POST("", drawerHandler.Create)
			drawers.GET("", drawerHandler.List)
			drawers.GET("/:id", drawerHandler.Get)
			drawers.PUT("/:id", drawerHandler.Update)
			drawers.DELETE("/:id", drawerHandler.Delete)
			drawers.POST("/:id/objects", objectHandler.Create)
			drawers.GET("/:id/objects", objectHandler.ListByDrawer)
		}

		// Object routes
		objects := api.Group("/objects", authRequired)
		{
			objects.PUT("/:id", objectHandler.Update)
			objects.DELETE("/:id", objectHandler.Delete)
			objects.POST("/:id/move", objectHandler.Move)
		}

		// Object type routes
		types := api.Group("/object-types", authRequired)
		{
			types.POST("", typeHandler.Create)
			types.GET("", typeHandler.List)
			types.GET("/:id", typeHandler.Get)
			types.PUT("/:id", typeHandler.Update)
			types.DELETE("/:id", typeHandler.Delete)
		}

		// Action history routes
		actions := api.Group("/action-history", authRequired)
		{
			actions.GET("", actionHandler.ListMine)
			actions.GET("/type/:action_type", actionHandler.ListByType)
			actions.GET("/:id", actionHandler.Get)
			actions.DELETE("/:id", actionHandler.Delete)
		}

		// AI recommendation routes
		ai := api.Group("/ai", authRequired)
		{
			ai.POST("/drawer-recommendations", recHandler.DrawerRecommendations)
			ai.POST("/apply-recommendations", recHandler.ApplyRecommendations)
		}

		// Cache management endpoints
		cacheGroup := api.Group("/cache", authRequired)
		{
			cacheGroup.GET("/stats", cacheHandler.GetCacheStats)
			cacheGroup.POST("/clear", cacheHandler.ClearCache)
		}

		api.GET("/ws/connected", authRequired, wsHandler.GetConnectedUsers)
	}

	s.app.GET("/ws/audit", authRequired, wsHandler.HandleAuditFeed)

	return s.app.Run(s.cfg.ListenAddr)
}
