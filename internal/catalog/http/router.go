package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/reelworks/filmstack/internal/catalog/domain"
	"github.com/reelworks/filmstack/internal/catalog/service"
	"github.com/reelworks/filmstack/internal/catalog/store"
	"github.com/reelworks/filmstack/pkg/httpx"
	"github.com/reelworks/filmstack/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	AuthService *service.AuthService
	UserService *service.UserService
	FilmService *service.FilmService
	RateService *service.RateService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerUsers()
	r.registerFilms()
	r.registerRates()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured wraps h with token authentication plus this route's scope set.
func (r *Router) secured(h http.Handler, scopes ...string) http.Handler {
	return httpx.Chain(h,
		AuthnMiddleware(r.AuthService, scopes...),
		RequireScopes(scopes...),
	)
}

func (r *Router) registerUsers() {
	r.Mux.Handle("POST /users/login", &LoginHandler{AuthService: r.AuthService})
	r.Mux.Handle("POST /users/register", &RegisterHandler{UserService: r.UserService})

	me := &MeHandler{UserService: r.UserService, RateService: r.RateService}
	r.Mux.Handle("GET /users/me", r.secured(http.HandlerFunc(me.HandleGet), domain.ScopeMe))
	r.Mux.Handle("PUT /users/me", r.secured(http.HandlerFunc(me.HandleEdit), domain.ScopeMe))
	r.Mux.Handle("GET /users/me/rates", r.secured(http.HandlerFunc(me.HandleRates), domain.ScopeMe, domain.ScopeRates))

	// Status only needs a resolvable token; a disabled account may still ask.
	r.Mux.Handle("GET /users/status", httpx.Chain(StatusHandler(), AuthnMiddleware(r.AuthService)))

	del := &DeleteUserHandler{UserService: r.UserService}
	r.Mux.Handle("DELETE /users/delete/{id}", r.secured(del, domain.ScopeMe, domain.ScopeAdmin))
}

func (r *Router) registerFilms() {
	h := &FilmsHandler{FilmService: r.FilmService}
	r.Mux.Handle("GET /films/{$}", http.HandlerFunc(h.HandleList))
	r.Mux.Handle("GET /films/name/{name}", http.HandlerFunc(h.HandleSearch))
	r.Mux.Handle("GET /films/id/{id}", http.HandlerFunc(h.HandleGet))
	r.Mux.Handle("GET /films/top/{limit}", http.HandlerFunc(h.HandleTop))

	rate := &RateFilmHandler{RateService: r.RateService}
	r.Mux.Handle("POST /films/id/{id}", r.secured(http.HandlerFunc(rate.HandleCreate), domain.ScopeMe, domain.ScopeRates))
	r.Mux.Handle("PUT /films/id/{id}", r.secured(http.HandlerFunc(rate.HandleUpdate), domain.ScopeMe, domain.ScopeRates))
}

func (r *Router) registerRates() {
	h := &RatesHandler{RateService: r.RateService}
	r.Mux.Handle("GET /rates/rate/{id}", r.secured(h, domain.ScopeMe, domain.ScopeRates))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
