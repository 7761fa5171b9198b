// Package web provides the userhub HTTP server: routing, session plumbing,
// CORS, and background job scheduling.
package web

import (
	"context"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"userhub/config"
	"userhub/logger"
	"userhub/util/common"
	"userhub/util/random"
	"userhub/web/cache"
	"userhub/web/controller"
	"userhub/web/job"
	"userhub/web/middleware"
	"userhub/web/service"
)

// Server is the userhub web server with its controllers and scheduled jobs.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	auth  *controller.AuthController
	admin *controller.UserAdminController

	userService service.UserService

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server instance with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

// initRouter initializes gin, registers middleware and controllers and
// returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()
	engine.Use(middleware.RequestId())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	// Credentialed CORS needs an explicit origin allow-list; a wildcard is
	// rejected by browsers when cookies are involved.
	if origins := config.GetCORSAllowedOrigins(); len(origins) > 0 {
		engine.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-Id"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	secret := config.GetSessionSecret()
	if secret == "" {
		if !config.IsDebug() {
			return nil, common.NewError("USERHUB_SECRET must be set outside debug mode")
		}
		secret = random.Seq(32)
		logger.Warning("USERHUB_SECRET not set, using a transient secret; sessions will not survive restarts")
	}

	store := cache.NewRedisStore(cache.GetClient(), []byte(secret))
	store.Options(sessions.Options{
		Path:     config.GetBasePath(),
		MaxAge:   config.GetSessionMaxAge(),
		Secure:   config.GetSessionCookieSecure(),
		HttpOnly: true,
		SameSite: config.GetSessionCookieSameSite(),
	})
	engine.Use(sessions.Sessions(config.GetSessionCookieName(), store))
	engine.Use(middleware.SessionAuth(&s.userService))

	basePath := config.GetBasePath()
	api := engine.Group(basePath + "api")
	s.auth = controller.NewAuthController(api)
	s.admin = controller.NewUserAdminController(api)

	api.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "version": config.GetVersion()})
	})

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// startTask schedules the background jobs.
func (s *Server) startTask() {
	s.cron.AddJob("@daily", job.NewAuditCleanupJob())
}

// Start initializes redis, the router and the cron scheduler, then begins
// serving.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	if err = cache.InitRedis(config.GetRedisAddr()); err != nil {
		return err
	}

	s.cron = cron.New()
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(config.GetListen(), strconv.Itoa(config.GetPort()))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("Web server running on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{Handler: engine}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	s.startTask()
	return nil
}

// Stop gracefully shuts down the server, the cron scheduler and redis.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2 error
	if s.httpServer != nil {
		err1 = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	return common.Combine(err1, err2, cache.Close())
}

// GetCtx returns the server's context.
func (s *Server) GetCtx() context.Context { return s.ctx }
