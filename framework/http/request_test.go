package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	gohttp "github.com/km-arc/go-fluentdoc/framework/http"
)

func TestRequest_Query(t *testing.T) {
	req := gohttp.NewRequest(httptest.NewRequest(http.MethodGet, "/bindings?lifetime=singleton&empty=", nil))

	assert.Equal(t, "singleton", req.Query("lifetime"))
	assert.Equal(t, "transient", req.Query("missing", "transient"))
	assert.Equal(t, "fallback", req.Query("empty", "fallback"))
	assert.True(t, req.Has("lifetime"))
	assert.False(t, req.Has("empty"))
}

func TestRequest_Queries(t *testing.T) {
	req := gohttp.NewRequest(httptest.NewRequest(http.MethodGet, "/bindings?a=1&a=2&b=x", nil))

	assert.Equal(t, map[string]string{"a": "1", "b": "x"}, req.Queries())
}

func TestRequest_RouteParam(t *testing.T) {
	r := chi.NewRouter()
	var got string
	r.Get("/bindings/{contract}", func(w http.ResponseWriter, raw *http.Request) {
		got = gohttp.NewRequest(raw).RouteParam("contract")
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bindings/codec.Codec", nil))

	assert.Equal(t, "codec.Codec", got)
}
