package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/verilens/verilens/internal/analysis"
	"github.com/verilens/verilens/internal/auth"
	"github.com/verilens/verilens/internal/config"
	"github.com/verilens/verilens/internal/gcp"
	"github.com/verilens/verilens/internal/notify"
	"github.com/verilens/verilens/internal/store"
)

const userIDKey = "userID"

// Server wires the analysis pipeline, stores and auth into a gin router.
type Server struct {
	cfg        *config.Config
	log        *zap.Logger
	users      *store.UserStore
	analyses   *store.AnalysisStore
	analyzer   *analysis.Analyzer
	mediaStore *gcp.MediaStore
	notifier   *notify.Notifier
	tokens     *auth.TokenIssuer
	fetcher    *http.Client
	router     *gin.Engine
}

// New assembles a Server from its collaborators and registers all routes.
func New(
	cfg *config.Config,
	log *zap.Logger,
	users *store.UserStore,
	analyses *store.AnalysisStore,
	analyzer *analysis.Analyzer,
	mediaStore *gcp.MediaStore,
	notifier *notify.Notifier,
) *Server {
	s := &Server{
		cfg:        cfg,
		log:        log,
		users:      users,
		analyses:   analyses,
		analyzer:   analyzer,
		mediaStore: mediaStore,
		notifier:   notifier,
		tokens:     auth.NewTokenIssuer(cfg.JWTSecret),
		fetcher:    &http.Client{Timeout: 30 * time.Second},
	}
	s.router = s.buildRouter()
	return s
}

// Router exposes the configured gin engine.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) buildRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())

	corsConfig := cors.DefaultConfig()
	if len(s.cfg.CORSOrigins) == 1 && s.cfg.CORSOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = s.cfg.CORSOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	api := r.Group("/api")
	{
		api.GET("/", s.handleRoot)
		api.GET("/health", s.handleHealth)

		api.POST("/auth/register", s.handleRegister)
		api.POST("/auth/login", s.handleLogin)

		api.GET("/shared/:shareID", s.handleGetShared)

		authed := api.Group("", s.requireAuth())
		{
			authed.GET("/auth/me", s.handleMe)
			authed.PUT("/auth/language", s.handleUpdateLanguage)

			authed.POST("/analysis/upload", s.handleUpload)
			authed.POST("/analysis/url", s.handleAnalyzeURL)
			authed.GET("/analysis/history", s.handleHistory)
			authed.GET("/analysis/stats", s.handleStats)
			authed.POST("/analysis/compare", s.handleCompare)
			authed.GET("/analysis/:id", s.handleGetAnalysis)
			authed.DELETE("/analysis/:id", s.handleDeleteAnalysis)
			authed.GET("/analysis/:id/report", s.handleReport)
			authed.POST("/analysis/:id/share", s.handleCreateShare)
		}
	}

	return r
}

// requireAuth verifies the bearer token and stores the user ID in the
// request context.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		userID, err := s.tokens.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// requestLogger emits one structured log line per request.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Verilens Media Authenticity API"})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// currentUserID returns the authenticated user ID set by requireAuth.
func currentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
