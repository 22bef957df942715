// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	adsfeature "github.com/gauravhaldar/sosign-admin/internal/app/features/ads"
	blogsfeature "github.com/gauravhaldar/sosign-admin/internal/app/features/blogs"
	categoriesfeature "github.com/gauravhaldar/sosign-admin/internal/app/features/categories"
	commentsfeature "github.com/gauravhaldar/sosign-admin/internal/app/features/comments"
	dashboardfeature "github.com/gauravhaldar/sosign-admin/internal/app/features/dashboard"
	downloadrequestsfeature "github.com/gauravhaldar/sosign-admin/internal/app/features/downloadrequests"
	errorsfeature "github.com/gauravhaldar/sosign-admin/internal/app/features/errors"
	healthfeature "github.com/gauravhaldar/sosign-admin/internal/app/features/health"
	hiderequestsfeature "github.com/gauravhaldar/sosign-admin/internal/app/features/hiderequests"
	loginfeature "github.com/gauravhaldar/sosign-admin/internal/app/features/login"
	logoutfeature "github.com/gauravhaldar/sosign-admin/internal/app/features/logout"
	petitionsfeature "github.com/gauravhaldar/sosign-admin/internal/app/features/petitions"
	proxyfeature "github.com/gauravhaldar/sosign-admin/internal/app/features/proxy"
	successfulfeature "github.com/gauravhaldar/sosign-admin/internal/app/features/successful"
	usersfeature "github.com/gauravhaldar/sosign-admin/internal/app/features/users"
	walletrequestsfeature "github.com/gauravhaldar/sosign-admin/internal/app/features/walletrequests"
	walletsfeature "github.com/gauravhaldar/sosign-admin/internal/app/features/wallets"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// mounter is a feature that registers its pages on the /dashboard router.
type mounter interface {
	MountRoutes(r chi.Router)
}

// BuildHandler constructs the root router.
//
// Public: /login, /health, /metrics. Everything under /dashboard sits
// behind the session guard, which verifies the admin against the backend
// on each request. /api/* is the JSON pass-through used by the browser;
// it sits outside CSRF and is guarded by the session token only.
// Multipart bodies are capped before the CSRF check reads the form.
func BuildHandler(cfg AppConfig, deps Deps, logger *zap.Logger) (http.Handler, error) {
	sm := deps.Sessions
	client := deps.Client

	errLog := errorsfeature.NewErrorLogger(logger)
	errorsHandler := errorsfeature.NewHandler()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(deps.Metrics.Middleware(logger))

	r.NotFound(errorsHandler.NotFound)

	// Operational endpoints stay outside CSRF and the session guard.
	healthHandler := healthfeature.NewHandler(deps.Probe, client.BaseURL(), logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	r.Handle("/metrics", deps.Metrics.Handler())

	// JSON pass-through. The token check answers 401 before anything else
	// runs; the session cookie is SameSite=Lax, so cross-site scripts
	// cannot send it with a DELETE.
	proxyfeature.NewHandler(client, logger).MountRoutes(r, sm.RequireToken)

	r.Group(func(r chi.Router) {
		r.Use(capUploads(cfg.MaxUploadBytes, sm, logger))
		r.Use(csrfProtect(cfg, logger))

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		})

		// Authentication
		loginHandler := loginfeature.NewHandler(client, sm, deps.Limiter, errLog, logger)
		r.Mount(auth.LoginPath, loginfeature.Routes(loginHandler))

		logoutHandler := logoutfeature.NewHandler(client, sm, logger)
		r.Mount("/logout", logoutfeature.Routes(logoutHandler))

		// Error pages
		r.Get("/forbidden", errorsHandler.Forbidden)
		r.Get("/unauthorized", errorsHandler.Unauthorized)

		// Admin pages
		blogs := blogsfeature.NewHandler(client, sm, logger)
		blogs.MaxBytes = cfg.MaxUploadBytes
		ads := adsfeature.NewHandler(client, sm, logger)
		ads.MaxBytes = cfg.MaxUploadBytes

		features := []mounter{
			dashboardfeature.NewHandler(client, logger),
			petitionsfeature.NewHandler(client, sm, logger),
			commentsfeature.NewHandler(client, sm, logger),
			successfulfeature.NewHandler(client, sm, logger),
			blogs,
			ads,
			categoriesfeature.NewHandler(client, sm, logger),
			usersfeature.NewHandler(client, logger),
			walletsfeature.NewHandler(client, cfg.WalletRate, logger),
			hiderequestsfeature.NewHandler(client, sm, logger),
			downloadrequestsfeature.NewHandler(client, sm, logger),
			walletrequestsfeature.NewHandler(client, sm, logger),
		}

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(sm.RequireAdmin(client))

			for _, f := range features {
				f.MountRoutes(r)
			}
		})
	})

	return r, nil
}
