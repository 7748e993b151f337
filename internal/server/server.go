package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/noreyni/webhook-api/internal/config"
	invitationdomain "github.com/noreyni/webhook-api/internal/invitation/domain"
	"github.com/noreyni/webhook-api/internal/observability"
	obslogger "github.com/noreyni/webhook-api/internal/observability/logger"
	obsmetrics "github.com/noreyni/webhook-api/internal/observability/metrics"
	obstracing "github.com/noreyni/webhook-api/internal/observability/tracing"
	"github.com/noreyni/webhook-api/internal/principal"
	projectdomain "github.com/noreyni/webhook-api/internal/project/domain"
	"github.com/noreyni/webhook-api/internal/ratelimit"
	userdomain "github.com/noreyni/webhook-api/internal/user/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

// NewEngine assembles the shared middleware chain. The error middleware runs
// innermost so every handler abort renders through the envelope.
func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics, client *mongo.Client) *gin.Engine {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics, client *mongo.Client) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics, client)
}

type Params struct {
	fx.In

	Log         *zap.Logger
	Config      config.Config
	Engine      *gin.Engine
	Resolver    principal.Resolver
	Limiter     *ratelimit.RequestLimiter
	Users       userdomain.Service
	Projects    projectdomain.Service
	Invitations invitationdomain.Service
}

type Server struct {
	log         *zap.Logger
	cfg         config.Config
	users       userdomain.Service
	projects    projectdomain.Service
	invitations invitationdomain.Service
}

func NewServer(p Params) *Server {
	s := &Server{
		log:         p.Log.Named("server"),
		cfg:         p.Config,
		users:       p.Users,
		projects:    p.Projects,
		invitations: p.Invitations,
	}
	s.registerRoutes(p.Engine, p.Resolver, p.Limiter)
	return s
}

func (s *Server) registerRoutes(r *gin.Engine, resolver principal.Resolver, limiter *ratelimit.RequestLimiter) {
	api := r.Group("/api")
	api.Use(principal.GinMiddleware(resolver))

	throttled := RateLimitMiddleware(limiter)

	projects := api.Group("/projects")
	{
		projects.GET("", s.searchProjects)
		projects.POST("", throttled, s.createProject)
		projects.GET("/check-name", s.checkProjectName)
		projects.GET("/accessible", s.listAccessibleProjects)
		projects.GET("/my", s.listMyProjects)
		projects.GET("/my/stats", s.myProjectStats)
		projects.GET("/owner/:ownerId", s.listProjectsByOwner)
		projects.GET("/owner/:ownerId/recent", s.listRecentProjectsByOwner)
		projects.GET("/stats/:ownerId", s.projectStatsByOwner)
		projects.GET("/:id", s.getProject)
		projects.PUT("/:id", throttled, s.updateProject)
		projects.PUT("/:id/status", throttled, s.changeProjectStatus)
		projects.DELETE("/:id", throttled, s.deleteProject)
	}

	users := api.Group("/users")
	{
		users.GET("", s.listUsers)
		users.POST("", throttled, s.createUser)
		users.GET("/check-email", s.checkUserEmail)
		users.GET("/stats", s.userStats)
		users.GET("/:id", s.getUser)
		users.PUT("/:id", throttled, s.updateUser)
		users.DELETE("/:id", throttled, s.deleteUser)
	}

	invitations := api.Group("/invitations")
	{
		invitations.POST("", throttled, s.invite)
		invitations.GET("/my", s.listMyInvitations)
		invitations.GET("/project/:projectId", s.listProjectInvitations)
		invitations.GET("/project/:projectId/stats", s.invitationStats)
		invitations.PUT("/:id/respond", throttled, s.respondInvitation)
		invitations.POST("/sweep-expired", throttled, s.sweepExpiredInvitations)
		invitations.POST("/purge-expired", throttled, s.purgeExpiredInvitations)
	}
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

// actorID returns the resolved caller's id. The principal middleware runs on
// every /api route, so this only fails if a route is registered outside it.
func actorID(c *gin.Context) (string, error) {
	p, ok := principal.FromContext(c.Request.Context())
	if !ok {
		return "", principal.ErrUnresolved
	}
	return p.UserID, nil
}
