package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/greenschool/zerowaste-backend/internal/authz"
	"github.com/greenschool/zerowaste-backend/internal/cache"
	"github.com/greenschool/zerowaste-backend/internal/config"
	"github.com/greenschool/zerowaste-backend/internal/handler"
	appmw "github.com/greenschool/zerowaste-backend/internal/middleware"
	"github.com/greenschool/zerowaste-backend/internal/repository"
	"github.com/greenschool/zerowaste-backend/internal/service"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const catalogCacheTTL = 5 * time.Minute

type Server struct {
	e      *echo.Echo
	logger *zap.Logger
}

func New(db *gorm.DB, cfg *config.Config, logger *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.Logger())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			return strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:"), nil
		},
	}))

	userRepo := repository.NewUserRepository(db)
	typeRepo := repository.NewWasteTypeRepository(db)
	recordRepo := repository.NewWasteRecordRepository(db)
	badgeRepo := repository.NewBadgeRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	sessionTTL := time.Duration(cfg.SessionDays) * 24 * time.Hour

	auditSvc := service.NewAuditService(auditRepo, logger)
	notifSvc := service.NewNotificationService(notifRepo)
	typeSvc := service.NewWasteTypeService(typeRepo, cache.New(catalogCacheTTL, time.Now), auditSvc)
	badgeSvc := service.NewBadgeService(badgeRepo, recordRepo, notifSvc, logger)
	recordSvc := service.NewRecordService(recordRepo, typeSvc, badgeSvc, logger, time.Now)
	leaderboardSvc := service.NewLeaderboardService(recordRepo)
	statsSvc := service.NewStatsService(recordRepo, userRepo, badgeRepo, time.Now)
	userSvc := service.NewUserService(userRepo, recordRepo, badgeRepo, auditSvc)
	authSvc := service.NewAuthService(userRepo, sessionRepo, sessionTTL, time.Now)

	authHandler := handler.NewAuthHandler(authSvc, sessionTTL, cfg.CookieSecure)
	recordHandler := handler.NewRecordHandler(recordSvc)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardSvc)
	badgeHandler := handler.NewBadgeHandler(badgeSvc)
	notifHandler := handler.NewNotificationHandler(notifSvc)
	profileHandler := handler.NewProfileHandler(userSvc)
	statsHandler := handler.NewStatsHandler(statsSvc)
	typeHandler := handler.NewWasteTypeHandler(typeSvc)
	adminUserHandler := handler.NewAdminUserHandler(userSvc)
	adminStatsHandler := handler.NewAdminStatsHandler(statsSvc, auditSvc)

	authMw := appmw.NewAuthMiddleware(authSvc)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"ok": "true"})
	})

	api := e.Group("/api")

	api.POST("/auth/signup", authHandler.SignUp)
	api.POST("/auth/signin", authHandler.SignIn)
	api.POST("/auth/signout", authHandler.SignOut)
	api.GET("/auth/me", authHandler.Me, authMw.RequireAuth)

	api.GET("/waste-types", typeHandler.List, authMw.RequireAuth)

	api.POST("/waste-records", recordHandler.Create, authMw.RequireAuth)
	api.PUT("/waste-records/:id", recordHandler.Update, authMw.RequireAuth)
	api.DELETE("/waste-records/:id", recordHandler.Delete, authMw.RequireAuth)

	api.GET("/leaderboard", leaderboardHandler.Get, authMw.RequireAuth)
	api.GET("/badges", badgeHandler.List, authMw.RequireAuth)
	api.GET("/dashboard", statsHandler.Dashboard, authMw.RequireAuth)
	api.GET("/statistics", statsHandler.Statistics, authMw.RequireAuth)

	api.GET("/notifications", notifHandler.List, authMw.RequireAuth)
	api.PUT("/notifications", notifHandler.MarkRead, authMw.RequireAuth)

	api.GET("/profile", profileHandler.Get, authMw.RequireAuth)
	api.PUT("/profile", profileHandler.Update, authMw.RequireAuth)
	api.PUT("/profile/password", profileHandler.ChangePassword, authMw.RequireAuth)

	admin := api.Group("/admin", authMw.RequireAuth)
	admin.GET("/users", adminUserHandler.List, authMw.RequirePolicy(authz.ActionManageUsers))
	admin.POST("/users", adminUserHandler.Create, authMw.RequirePolicy(authz.ActionManageUsers))
	admin.PUT("/users/:id", adminUserHandler.Update, authMw.RequirePolicy(authz.ActionManageUsers))
	admin.DELETE("/users/:id", adminUserHandler.Delete, authMw.RequirePolicy(authz.ActionManageUsers))

	admin.GET("/waste-types", typeHandler.ListWithStats, authMw.RequirePolicy(authz.ActionManageWasteTypes))
	admin.POST("/waste-types", typeHandler.Create, authMw.RequirePolicy(authz.ActionManageWasteTypes))
	admin.PUT("/waste-types/:id", typeHandler.Update, authMw.RequirePolicy(authz.ActionManageWasteTypes))
	admin.DELETE("/waste-types/:id", typeHandler.Delete, authMw.RequirePolicy(authz.ActionManageWasteTypes))

	admin.GET("/stats", adminStatsHandler.Overview, authMw.RequirePolicy(authz.ActionViewAdminReports))
	admin.GET("/statistics", adminStatsHandler.Statistics, authMw.RequirePolicy(authz.ActionViewAdminReports))
	admin.GET("/export", adminStatsHandler.Export, authMw.RequirePolicy(authz.ActionExportRecords))
	admin.GET("/audit-logs", adminStatsHandler.AuditLogs, authMw.RequirePolicy(authz.ActionViewAuditLogs))

	return &Server{e: e, logger: logger}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}
