// Package inspect serves read-only views of a running container over HTTP.
//
//	GET /healthz                        liveness and container id
//	GET /container/bindings             every registration, filtered by the
//	                                    optional lifetime, strategy and
//	                                    resolved query parameters and cut
//	                                    to the optional limit
//	GET /container/bindings/{contract}  one registration by contract name
//	GET /metrics                        prometheus metrics
package inspect

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/km-arc/go-fluentdoc/framework/container"
	gohttp "github.com/km-arc/go-fluentdoc/framework/http"
	"github.com/km-arc/go-fluentdoc/framework/http/validation"
	"github.com/km-arc/go-fluentdoc/framework/metrics"
	"github.com/km-arc/go-fluentdoc/framework/routing"
)

// Handler serves the inspection endpoints of one container.
type Handler struct {
	container *container.Container
	metrics   *metrics.Collector
}

// NewHandler returns a Handler for c exposing m on /metrics.
func NewHandler(c *container.Container, m *metrics.Collector) *Handler {
	return &Handler{container: c, metrics: m}
}

// Routes mounts the endpoints on r. Every response is marked uncacheable.
func (h *Handler) Routes(r *routing.Router) {
	r.Group(func(r *routing.Router) {
		r.Middleware(NoStore)
		r.Get("/healthz", h.Health)
		r.Prefix("/container", func(r *routing.Router) {
			r.Get("/bindings", h.Bindings)
			r.Get("/bindings/{contract}", h.Binding)
		})
		r.Handle("/metrics", h.metrics.Handler())
	})
}

// NoStore sets Cache-Control: no-store.
func NoStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	gohttp.NewResponse(w).Success(map[string]any{
		"status":    "ok",
		"container": h.container.ID(),
	})
}

var bindingFilters = validation.Rules{
	"lifetime": "sometimes|in:transient,singleton",
	"strategy": "sometimes|in:constructor,factory,instance",
	"resolved": "sometimes|boolean",
	"limit":    "sometimes|integer|gte:0",
}

var contractRules = validation.Rules{
	"contract": "required|max:256",
}

// Bindings lists the registrations matching the query filters.
func (h *Handler) Bindings(w http.ResponseWriter, r *http.Request) {
	req, res := gohttp.NewRequest(r), gohttp.NewResponse(w)

	v := validation.Make(req.Queries(), bindingFilters)
	if v.Fails() {
		res.ValidationError(v.Errors())
		return
	}

	lifetime, strategy := req.Query("lifetime"), req.Query("strategy")
	resolved, filterResolved := false, req.Has("resolved")
	if filterResolved {
		resolved, _ = validation.ParseBool(req.Query("resolved"))
	}

	limit := -1
	if req.Has("limit") {
		limit, _ = strconv.Atoi(req.Query("limit"))
	}

	out := make([]container.Binding, 0)
	for _, b := range h.container.Bindings() {
		switch {
		case lifetime != "" && b.Lifetime != lifetime:
		case strategy != "" && b.Strategy != strategy:
		case filterResolved && b.Resolved != resolved:
		case limit >= 0 && len(out) == limit:
		default:
			out = append(out, b)
		}
	}
	res.Success(out)
}

// Binding returns the registration whose contract name matches the
// {contract} path parameter.
func (h *Handler) Binding(w http.ResponseWriter, r *http.Request) {
	req, res := gohttp.NewRequest(r), gohttp.NewResponse(w)
	name, err := url.PathUnescape(req.RouteParam("contract"))
	if err != nil {
		res.Error(http.StatusBadRequest, "Malformed contract name.")
		return
	}
	if v := validation.Make(map[string]string{"contract": name}, contractRules); v.Fails() {
		res.ValidationError(v.Errors())
		return
	}
	for _, b := range h.container.Bindings() {
		if b.Contract == name {
			res.Success(b)
			return
		}
	}
	res.NotFound("No binding for " + name + ".")
}
