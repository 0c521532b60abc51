package handler

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
)

// Target is a deployment shape for the route table.
type Target string

const (
	// TargetHTTP serves every route from one gin engine.
	TargetHTTP Target = "http"
	// TargetFunction serves each route from its own handler, one per
	// deployed function.
	TargetFunction Target = "function"
)

type Route struct {
	Name    string
	Method  string
	Path    string
	Targets []Target
	Handler gin.HandlerFunc
}

// Routes is the table of account endpoints. Health is served outside it.
func Routes(h *AccountHandler) []Route {
	both := []Target{TargetHTTP, TargetFunction}
	return []Route{
		{Name: "create_account", Method: http.MethodPost, Path: "/accounts/create", Targets: both, Handler: h.CreateAccount},
		{Name: "get_account", Method: http.MethodGet, Path: "/accounts/get", Targets: both, Handler: h.GetAccount},
		{Name: "get_account_by_id", Method: http.MethodGet, Path: "/accounts/:account_id", Targets: []Target{TargetHTTP}, Handler: h.GetAccount},
		{Name: "update_account_status", Method: http.MethodPatch, Path: "/accounts/update_status", Targets: both, Handler: h.UpdateStatus},
	}
}

// Register adds every route deployed on target to r.
func Register(r gin.IRoutes, routes []Route, target Target) {
	for _, route := range routes {
		if slices.Contains(route.Targets, target) {
			r.Handle(route.Method, route.Path, route.Handler)
		}
	}
}

// NewFunctionHandlers builds one standalone handler per function route,
// keyed by route name. Each handler only answers its own method and path.
func NewFunctionHandlers(routes []Route, middlewares ...gin.HandlerFunc) map[string]http.Handler {
	handlers := make(map[string]http.Handler)
	for _, route := range routes {
		if !slices.Contains(route.Targets, TargetFunction) {
			continue
		}
		engine := gin.New()
		engine.HandleMethodNotAllowed = true
		engine.Use(gin.Recovery())
		engine.Use(middlewares...)
		engine.Handle(route.Method, route.Path, route.Handler)
		handlers[route.Name] = engine
	}
	return handlers
}

// FunctionMux mounts each function handler under /<name>, the way a
// function platform exposes one URL per deployed function.
func FunctionMux(handlers map[string]http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	for name, h := range handlers {
		prefix := "/" + name
		mux.Handle(prefix+"/", http.StripPrefix(prefix, h))
	}
	return mux
}
