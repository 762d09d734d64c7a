package bootstrap

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	httpapi "github.com/shift-agent/shift-agent/internal/api/http"
	apimw "github.com/shift-agent/shift-agent/internal/api/http/middleware"
	authhttp "github.com/shift-agent/shift-agent/internal/auth/http"
	authmw "github.com/shift-agent/shift-agent/internal/auth/middleware"
	"github.com/shift-agent/shift-agent/internal/gemini"
	schedhttp "github.com/shift-agent/shift-agent/internal/scheduling/http"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterDeps struct {
	ServiceName    string
	Version        string
	Logger         *zap.Logger
	AllowedOrigins []string
	AuthRateLimit  int
	AuthRateBurst  int

	DB       Pinger
	Redis    *redis.Client
	Registry *prometheus.Registry

	Verifier   authmw.TokenVerifier
	Resolver   authmw.PrincipalResolver
	Auth       *authhttp.Handler
	Scheduling *schedhttp.Handler
	Gemini     *gemini.Handler
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(apimw.RequestID(dep.Logger))
	if dep.Registry != nil {
		m := apimw.NewMetrics(dep.Registry)
		r.Use(m.Middleware())
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}
	r.Use(cors.New(corsConfig(dep.AllowedOrigins)))

	var rdb redis.UniversalClient
	if dep.Redis != nil {
		rdb = dep.Redis
	}
	var db httpapi.Pinger
	if dep.DB != nil {
		db = dep.DB
	}
	httpapi.NewHealthHandler(dep.ServiceName, dep.Version, db, rdb).RegisterRoutes(r)

	limiter := apimw.NewRateLimiter(dep.AuthRateLimit, dep.AuthRateBurst)
	public := r.Group("/", limiter.Middleware())
	dep.Auth.RegisterPublic(public)

	protected := r.Group("/", authmw.FirebaseAuthMiddleware(dep.Verifier, dep.Resolver))
	dep.Auth.Register(protected)
	dep.Scheduling.Register(protected)
	if dep.Gemini != nil {
		gemini.RegisterRoutes(protected, dep.Gemini)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", apimw.RequestIDHeader},
		ExposeHeaders: []string{apimw.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	// the id_token cookie needs credentialed requests
	cfg.AllowCredentials = true
	return cfg
}
