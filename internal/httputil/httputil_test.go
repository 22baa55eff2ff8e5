package httputil

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

type parseTarget struct {
	Name     string  `path:"name"`
	Category string  `form:"category"`
	Limit    int     `form:"limit"`
	Message  string  `json:"message"`
	Temp     float64 `json:"temp"`
}

func newChiRequest(method, target, body string, params map[string]string) *http.Request {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestParsePathAndQuery(t *testing.T) {
	r := newChiRequest(http.MethodGet, "/personas/Startup%20Strategist?category=Business&limit=5", "", map[string]string{
		"name": "Startup Strategist",
	})

	var req parseTarget
	require.NoError(t, Parse(r, &req))
	require.Equal(t, "Startup Strategist", req.Name)
	require.Equal(t, "Business", req.Category)
	require.Equal(t, 5, req.Limit)
}

func TestParseJSONBody(t *testing.T) {
	r := newChiRequest(http.MethodPost, "/chat/message", `{"message":"hello","temp":0.9}`, nil)

	var req parseTarget
	require.NoError(t, Parse(r, &req))
	require.Equal(t, "hello", req.Message)
	require.InDelta(t, 0.9, req.Temp, 1e-9)
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	r := newChiRequest(http.MethodPost, "/chat/message", `{"message":`, nil)

	var req parseTarget
	require.Error(t, Parse(r, &req))
}

func TestErrorWithCode(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorWithCode(w, http.StatusConflict, "already exists")

	require.Equal(t, http.StatusConflict, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, http.StatusConflict, resp.Code)
	require.Equal(t, "already exists", resp.Message)
}

func TestOkJSON(t *testing.T) {
	w := httptest.NewRecorder()
	OkJSON(w, map[string]string{"status": "ok"})

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "application/json")
	require.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestQueryInt(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/chat/history?limit=7", nil)
	require.Equal(t, 7, QueryInt(r, "limit", 50))
	require.Equal(t, 50, QueryInt(r, "missing", 50))

	r = httptest.NewRequest(http.MethodGet, "/chat/history?limit=abc", nil)
	require.Equal(t, 50, QueryInt(r, "limit", 50))
}
