package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/agentkit/agentkit/internal/config"
	"github.com/agentkit/agentkit/internal/handler"
	apikeyhandler "github.com/agentkit/agentkit/internal/handler/apikey"
	authhandler "github.com/agentkit/agentkit/internal/handler/auth"
	chathandler "github.com/agentkit/agentkit/internal/handler/chat"
	personahandler "github.com/agentkit/agentkit/internal/handler/persona"
	providerhandler "github.com/agentkit/agentkit/internal/handler/provider"
	userhandler "github.com/agentkit/agentkit/internal/handler/user"
	"github.com/agentkit/agentkit/internal/middleware"
	"github.com/agentkit/agentkit/internal/realtime"
	"github.com/agentkit/agentkit/internal/svc"
)

// ServerOptions holds optional dependencies for the server
type ServerOptions struct {
	SvcCtx *svc.ServiceContext // Pre-initialized service context
	Quiet  bool                // Suppress startup messages for clean CLI output
}

// Run starts the server with the given configuration. It blocks until the
// context is cancelled or startup fails.
func Run(ctx context.Context, c config.Config, opts ...ServerOptions) error {
	var o ServerOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	return run(ctx, c, o)
}

func run(ctx context.Context, c config.Config, opts ServerOptions) error {
	serverPort := c.Port

	if err := checkPortAvailable(serverPort); err != nil {
		return fmt.Errorf("port %d is already in use", serverPort)
	}

	svcCtx := opts.SvcCtx
	if svcCtx == nil {
		var err error
		svcCtx, err = svc.NewServiceContext(c)
		if err != nil {
			return fmt.Errorf("failed to initialize services: %w", err)
		}
		defer svcCtx.Close()
	}

	r := chi.NewRouter()

	if !opts.Quiet {
		r.Use(chimw.Logger)
	}
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(corsMiddleware(c))

	// Health check at root
	r.Get("/health", handler.HealthCheckHandler(svcCtx))

	authLimiter := middleware.NewRateLimiter(limiterConfig(
		c.Security.AuthRateLimitRequests, c.Security.AuthRateLimitInterval, middleware.AuthRateLimitConfig()))
	apiLimiter := middleware.NewRateLimiter(limiterConfig(
		c.Security.RateLimitRequests, c.Security.RateLimitInterval, middleware.APIRateLimitConfig()))

	r.Route("/api/v1", func(r chi.Router) {
		if c.IsSecurityHeadersEnabled() {
			r.Use(securityHeadersMiddleware())
		}
		if c.IsRateLimitEnabled() {
			r.Use(apiLimiter.Middleware())
		}

		// Auth routes with stricter rate limiting
		r.Group(func(r chi.Router) {
			if c.IsRateLimitEnabled() {
				r.Use(authLimiter.Middleware())
			}
			r.Post("/auth/register", authhandler.RegisterHandler(svcCtx))
			r.Post("/auth/login", authhandler.LoginHandler(svcCtx))
			r.Post("/auth/refresh", authhandler.RefreshTokenHandler(svcCtx))
		})

		// Public routes
		r.Get("/models", providerhandler.ListModelsHandler(svcCtx))

		// Protected routes (JWT required)
		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTMiddleware(svcCtx.Config.Auth.AccessSecret))
			registerProtectedRoutes(r, svcCtx)
		})
	})

	// Realtime activity feed
	if svcCtx.Hub != nil {
		go svcCtx.Hub.Run(ctx)
		r.Get("/ws", realtime.ServeWS(svcCtx.Hub, c.Auth.AccessSecret))
	}

	// Note: ReadTimeout/WriteTimeout are omitted because they set deadlines on
	// the underlying net.Conn, which breaks hijacked WebSocket connections.
	// Keepalive there is handled via ping/pong.
	httpServer := &http.Server{
		Addr:        fmt.Sprintf(":%d", serverPort),
		Handler:     r,
		IdleTimeout: 120 * time.Second,
	}

	if !opts.Quiet {
		fmt.Printf("Server ready at http://localhost:%d\n", serverPort)
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("HTTP server error: %v\n", err)
		}
	}()

	<-ctx.Done()

	if !opts.Quiet {
		fmt.Println("\nShutting down server gracefully...")
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	httpServer.Shutdown(shutdownCtx)
	return nil
}

// limiterConfig scales the configured requests-per-interval into the
// per-minute rate the limiter expects, falling back to defaults when unset.
func limiterConfig(requests, intervalSeconds int, fallback middleware.RateLimitConfig) middleware.RateLimitConfig {
	if requests <= 0 || intervalSeconds <= 0 {
		return fallback
	}
	perMinute := requests * 60 / intervalSeconds
	if perMinute < 1 {
		perMinute = 1
	}
	burst := requests
	if burst < 1 {
		burst = 1
	}
	return middleware.RateLimitConfig{RequestsPerMinute: perMinute, Burst: burst}
}

// registerProtectedRoutes registers routes that require JWT authentication
func registerProtectedRoutes(r chi.Router, svcCtx *svc.ServiceContext) {
	// Session
	r.Post("/auth/logout", authhandler.LogoutHandler(svcCtx))

	// Personas
	r.Get("/personas", personahandler.ListPersonasHandler(svcCtx))
	r.Get("/personas/categories", personahandler.CategoriesHandler(svcCtx))
	r.Post("/personas", personahandler.CreatePersonaHandler(svcCtx))
	r.Get("/personas/{name}", personahandler.GetPersonaHandler(svcCtx))
	r.Put("/personas/{name}", personahandler.UpdatePersonaHandler(svcCtx))
	r.Delete("/personas/{name}", personahandler.DeletePersonaHandler(svcCtx))
	r.Get("/personas/{name}/prompt", personahandler.PromptHandler(svcCtx))

	// Chat
	r.Post("/chat/message", chathandler.SendMessageHandler(svcCtx))
	r.Get("/chat/history", chathandler.GetHistoryHandler(svcCtx))
	r.Delete("/chat/history", chathandler.ClearHistoryHandler(svcCtx))

	// API keys
	r.Get("/keys", apikeyhandler.ListAPIKeysHandler(svcCtx))
	r.Put("/keys/{provider}", apikeyhandler.SetAPIKeyHandler(svcCtx))
	r.Delete("/keys/{provider}", apikeyhandler.DeleteAPIKeyHandler(svcCtx))
	r.Post("/keys/{provider}/validate", apikeyhandler.ValidateAPIKeyHandler(svcCtx))

	// Providers
	r.Get("/providers", providerhandler.ListProvidersHandler(svcCtx))

	// User
	r.Get("/user/me", userhandler.GetCurrentUserHandler(svcCtx))
	r.Get("/user/me/preferences", userhandler.GetPreferencesHandler(svcCtx))
	r.Put("/user/me/preferences", userhandler.UpdatePreferencesHandler(svcCtx))
}

// securityHeadersMiddleware adds security headers to API responses
func securityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			w.Header().Set("Cache-Control", "no-store")
			next.ServeHTTP(w, r)
		})
	}
}

// corsMiddleware handles CORS for browser clients
func corsMiddleware(c config.Config) func(http.Handler) http.Handler {
	allowed := c.Security.AllowedOrigins
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if origin != "" && originAllowed(origin, allowed) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// originAllowed matches an Origin header against the configured allowlist.
// An empty allowlist permits localhost only; "*" permits everything.
func originAllowed(origin, allowed string) bool {
	if allowed == "*" {
		return true
	}
	if allowed == "" {
		return isLocalhostOrigin(origin)
	}
	for _, candidate := range strings.Split(allowed, ",") {
		if strings.TrimSpace(candidate) == origin {
			return true
		}
	}
	return false
}

func isLocalhostOrigin(origin string) bool {
	for _, prefix := range []string{"http://localhost", "https://localhost", "http://127.0.0.1", "https://127.0.0.1"} {
		if strings.HasPrefix(origin, prefix) {
			return true
		}
	}
	return false
}

// checkPortAvailable checks if a port is available for binding
func checkPortAvailable(port int) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return err
	}
	ln.Close()
	return nil
}
