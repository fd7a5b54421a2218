package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Tazdar-Rahim/artmuse-server/internal/auth"
	"github.com/Tazdar-Rahim/artmuse-server/internal/domain"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/health"
	"github.com/Tazdar-Rahim/artmuse-server/pkg/middleware"
)

const serviceName = "artmuse-server"

// RouterConfig bundles everything the router needs.
type RouterConfig struct {
	Artworks      *ArtworkHandler
	Cart          *CartHandler
	Wishlist      *WishlistHandler
	Commissions   *CommissionHandler
	Consultations *ConsultationHandler
	Orders        *OrderHandler
	Auth          *AuthHandler
	Media         *MediaHandler
	Emails        *EmailHandler
	Contact       *ContactHandler

	JWT     *auth.JWTManager
	Health  *health.Handler
	Logger  *slog.Logger
	CORS    middleware.CORSConfig
	MediaFS http.Handler

	PprofEnabled      bool
	PprofAllowedCIDRs []string
}

// publicCacheMaxAge is the Cache-Control max-age, in seconds, for the public
// catalog reads. Long enough to absorb browse traffic, short enough that a
// sold artwork disappears quickly.
const publicCacheMaxAge = 60

// NewRouter assembles the full HTTP surface.
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimiddleware.Compress(5))
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.CORS(cfg.CORS))

	validate := tokenValidator(cfg.JWT)

	r.Get("/healthz", cfg.Health.LivenessHandler())
	r.Get("/readyz", cfg.Health.ReadinessHandler())
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	if cfg.PprofEnabled {
		middleware.RegisterPprof(r, cfg.PprofAllowedCIDRs, cfg.Logger)
	}

	if cfg.MediaFS != nil {
		r.Mount("/media/files", http.StripPrefix("/media/files", cfg.MediaFS))
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Public storefront. Optional auth lets signed-in customers attach
		// orders, commissions, and bookings to their account.
		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalAuth(validate))

			r.With(middleware.CacheControl(publicCacheMaxAge)).
				Route("/artwork", cfg.Artworks.PublicRoutes)
			r.Route("/cart", cfg.Cart.Routes)
			r.With(middleware.CacheControl(publicCacheMaxAge)).
				Route("/commissions", cfg.Commissions.PublicRoutes)
			r.Route("/consultations", cfg.Consultations.PublicRoutes)
			r.Route("/orders", cfg.Orders.PublicRoutes)
			r.Route("/media", cfg.Media.PublicRoutes)
			r.Route("/auth", cfg.Auth.PublicRoutes)
			r.Route("/contact", cfg.Contact.PublicRoutes)
		})

		// Signed-in customers.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(validate))

			r.Route("/account", func(r chi.Router) {
				cfg.Auth.UserRoutes(r)
				r.Route("/orders", cfg.Orders.UserRoutes)
				r.Route("/wishlist", cfg.Wishlist.Routes)
			})
		})

		// Admin.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(validate))
			r.Use(middleware.RequireRole(domain.RoleAdmin))

			r.Route("/admin", func(r chi.Router) {
				r.Route("/artwork", cfg.Artworks.AdminRoutes)
				r.Route("/commissions", cfg.Commissions.AdminRoutes)
				r.Route("/consultations", cfg.Consultations.AdminRoutes)
				r.Route("/orders", cfg.Orders.AdminRoutes)
				r.Route("/media", cfg.Media.AdminRoutes)
				r.Route("/emails", cfg.Emails.AdminRoutes)
			})
		})
	})

	return r
}

// tokenValidator adapts the JWT manager to the auth middleware contract.
func tokenValidator(jwt *auth.JWTManager) middleware.TokenValidator {
	return func(token string) (*middleware.Claims, error) {
		claims, err := jwt.ValidateAccessToken(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		}, nil
	}
}
