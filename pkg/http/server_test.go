package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lookupRequest struct {
	Ticker string `param:"ticker" validate:"required"`
	Name   string `query:"name" validate:"required"`
	Limit  int    `query:"limit" default:"10" validate:"max=50"`
}

type stubHandler struct{}

func (stubHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/lookup/:ticker", func(c echo.Context) error {
		req := &lookupRequest{}
		if errs := ReadAndValidateRequest(c, req); errs != nil {
			return BadRequestResponse(c, ValidationMessage(errs))
		}
		return SuccessResponse(c, req)
	})
	e.GET("/fail", func(c echo.Context) error {
		return AppErrorResponse(c, InternalError("upstream unavailable"))
	})
	e.GET("/panic", func(c echo.Context) error {
		panic("boom")
	})
}

func serve(t *testing.T, s *Server, target string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var body map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func newTestServer() *Server {
	return NewServer(stubHandler{}, WithMetrics("", 0))
}

func TestValidRequestBindsParamsAndDefaults(t *testing.T) {
	rec, body := serve(t, newTestServer(), "/lookup/AAPL?name=Apple")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "AAPL", body["Ticker"])
	assert.Equal(t, "Apple", body["Name"])
	assert.EqualValues(t, 10, body["Limit"])
}

func TestValidationFailureIs400(t *testing.T) {
	rec, body := serve(t, newTestServer(), "/lookup/AAPL?name=%20%20&limit=99")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "name is required")
	assert.Contains(t, body["error"], "limit must be at most 50")
}

func TestAppErrorKeepsStatus(t *testing.T) {
	rec, body := serve(t, newTestServer(), "/fail")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "upstream unavailable", body["error"])
}

func TestUnknownRouteUsesErrorShape(t *testing.T) {
	rec, body := serve(t, newTestServer(), "/nope")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not Found", body["error"])
}

func TestPanicIsRecovered(t *testing.T) {
	rec, body := serve(t, newTestServer(), "/panic")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal Server Error", body["error"])
}

func TestCORSHeaders(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/fail", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:5173")
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestCORSDisabled(t *testing.T) {
	s := NewServer(stubHandler{}, WithMetrics("", 0), WithCORS(false))
	req := httptest.NewRequest(http.MethodGet, "/fail", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:5173")
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}
