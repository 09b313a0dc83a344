package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/inklet/inklet/internal/blog/service"
	"github.com/inklet/inklet/internal/blog/store"
	"github.com/inklet/inklet/pkg/httpx"
	"github.com/inklet/inklet/pkg/jwtx"
	"github.com/inklet/inklet/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	UserService        *service.UserService
	TokenService       *service.TokenService
	PostService        *service.PostService
	Visibility         *service.Visibility
	RestrictionService *service.RestrictionService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Default middleware chain applied to every route.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerPosts()
	r.registerSystem()
}

func (r *Router) registerAuth() {
	registerHandler := &RegisterHandler{UserService: r.UserService}
	loginHandler := &LoginHandler{
		UserService:  r.UserService,
		TokenService: r.TokenService,
	}

	// Credential endpoints get the strict limit, keyed by IP + submitted
	// username to slow down brute force.
	r.Mux.Handle("POST /register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIPAndBodyField(httpx.StrictLimit, "username"),
		),
	)
}

func (r *Router) registerPosts() {
	posts := &PostsHandler{
		PostService: r.PostService,
		Visibility:  r.Visibility,
	}
	restrict := &RestrictHandler{RestrictionService: r.RestrictionService}

	// Listing takes an optional token: authenticated readers get the
	// visibility filter applied, anonymous readers see everything.
	r.Mux.Handle("GET /posts",
		httpx.Chain(http.HandlerFunc(posts.HandleList),
			httpx.OptionalAuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /posts/{id}",
		httpx.Chain(http.HandlerFunc(posts.HandleGet),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	r.Mux.Handle("POST /posts",
		httpx.Chain(http.HandlerFunc(posts.HandleCreate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("PATCH /posts/{id}",
		httpx.Chain(http.HandlerFunc(posts.HandleUpdate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /posts/{id}",
		httpx.Chain(http.HandlerFunc(posts.HandleDelete),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /posts/{id}/restrict",
		httpx.Chain(restrict,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
