package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"FinScope/internal/service/fmp"
	"FinScope/internal/service/gnews"
	"FinScope/internal/usecase"
	xhttp "FinScope/pkg/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// upstream fakes FMP and GNews on one server. Paths in fail answer 500.
type upstream struct {
	mu   sync.Mutex
	hits []string
	fail map[string]bool
	srv  *httptest.Server
}

func newUpstream(t *testing.T, fail ...string) *upstream {
	u := &upstream{fail: map[string]bool{}}
	for _, p := range fail {
		u.fail[p] = true
	}
	u.srv = httptest.NewServer(http.HandlerFunc(u.serve))
	t.Cleanup(u.srv.Close)
	return u
}

func (u *upstream) serve(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	u.hits = append(u.hits, r.URL.Path)
	u.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if u.fail[r.URL.Path] {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"boom"}`))
		return
	}

	switch r.URL.Path {
	case "/search":
		_, _ = w.Write([]byte(`{"totalArticles":2,"articles":[
			{"title":"Apple firma acuerdo récord","url":"https://n/1","publishedAt":"2024-05-01T00:00:00Z","source":{"name":"A"}},
			{"title":"Temor por regulación en Europa","url":"https://n/2","publishedAt":"2024-05-02T00:00:00Z","source":{"name":"B"}}
		]}`))
	case "/api/v3/historical-price-full/AAPL":
		_, _ = w.Write([]byte(`{"symbol":"AAPL","historical":[{"close":100},{"close":99},{"close":98},{"close":97},{"close":96},{"close":95},{"close":90}]}`))
	case "/api/v3/analyst-stock-recommendations/AAPL":
		_, _ = w.Write([]byte(`[{"analystRatingsStrongBuy":1,"analystRatingsbuy":2,"analystRatingsHold":3,"analystRatingsSell":4,"analystRatingsStrongSell":5}]`))
	case "/api/v3/profile/AAPL":
		_, _ = w.Write([]byte(`[{"symbol":"AAPL","companyName":"Apple Inc.","description":"Apple designs premium devices around an iconic brand and ecosystem.","price":200,"mktCap":2000}]`))
	default:
		_, _ = w.Write([]byte(`[]`))
	}
}

func (u *upstream) count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.hits)
}

func newTestServer(u *upstream, fmpKey, newsKey string) *xhttp.Server {
	fmpClient := fmp.New(
		fmp.WithBaseURLs(u.srv.URL+"/api/v3", u.srv.URL+"/api/v4"),
		fmp.WithAPIKey(fmpKey),
		fmp.WithTimeout(2*time.Second),
	)
	newsClient := gnews.New(gnews.WithBaseURL(u.srv.URL), gnews.WithAPIKey(newsKey))

	h := NewAggregatorEchoHandler(nil,
		usecase.NewProfileUseCase(fmpClient, 4, nil, nil),
		usecase.NewSentimentUseCase(fmpClient, newsClient, 10, 250, nil, nil),
		usecase.NewMoatUseCase(fmpClient, nil, nil),
	)
	return xhttp.NewServer(h, xhttp.WithMetrics("", 0))
}

func get(t *testing.T, s *xhttp.Server, target string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return rec, body
}

func TestProfileRequiresKey(t *testing.T) {
	u := newUpstream(t)
	rec, body := get(t, newTestServer(u, "", ""), "/fmp/AAPL")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]interface{}{"error": "API key required"}, body)
	assert.Zero(t, u.count())
}

func TestProfileIsolatesEndpointFailures(t *testing.T) {
	u := newUpstream(t, "/api/v3/quote/AAPL")
	rec, body := get(t, newTestServer(u, "", ""), "/fmp/AAPL?apiKey=k")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "AAPL", body["ticker"])
	data := body["data"].(map[string]interface{})
	general := data["general"].(map[string]interface{})

	failed := general["/quote/AAPL"].(map[string]interface{})
	assert.Equal(t, true, failed["error"])
	assert.Equal(t, "Request failed with status code 500", failed["message"])
	assert.EqualValues(t, 500, failed["status"])
	assert.Equal(t, "ERR_BAD_RESPONSE", failed["code"])
	assert.Equal(t, map[string]interface{}{"message": "boom"}, failed["data"])
	assert.Equal(t, "/quote/AAPL", failed["endpoint"])

	profile := general["/profile/AAPL"].([]interface{})
	assert.Len(t, profile, 1)
	assert.Contains(t, data["calendar"], "/economic_calendar")
	assert.Equal(t, len(usecase.ProfileEndpoints), u.count())
}

func TestSentimentEndpoint(t *testing.T) {
	for _, target := range []string{
		"/sentiment-data?ticker=AAPL",
		"/sentiment-data?empresa=Apple",
		"/sentiment-data?ticker=%20&empresa=Apple",
		"/sentiment-data",
	} {
		t.Run("missing params "+target, func(t *testing.T) {
			u := newUpstream(t)
			rec, body := get(t, newTestServer(u, "f", "g"), target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "ticker y empresa son requeridos", body["error"])
			assert.Zero(t, u.count())
		})
	}

	t.Run("keys not configured", func(t *testing.T) {
		u := newUpstream(t)
		rec, body := get(t, newTestServer(u, "f", ""), "/sentiment-data?ticker=AAPL&empresa=Apple")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotEmpty(t, body["error"])
		assert.Zero(t, u.count())
	})

	t.Run("report", func(t *testing.T) {
		u := newUpstream(t)
		rec, body := get(t, newTestServer(u, "f", "g"), "/sentiment-data?ticker=AAPL&empresa=Apple")
		require.Equal(t, http.StatusOK, rec.Code)

		for _, key := range []string{"empresa", "ticker", "noticias", "analistas", "tecnica", "redes"} {
			assert.Contains(t, body, key)
		}
		noticias := body["noticias"].(map[string]interface{})
		assert.EqualValues(t, 1, noticias["positivas"])
		assert.EqualValues(t, 1, noticias["negativas"])
		assert.EqualValues(t, 0, noticias["neutrales"])

		analistas := body["analistas"].(map[string]interface{})
		assert.EqualValues(t, 3, analistas["compra"])
		assert.EqualValues(t, 9, analistas["venta"])
		assert.Nil(t, analistas["nota"])

		tecnica := body["tecnica"].(map[string]interface{})
		assert.EqualValues(t, 11.11, tecnica["cambio_7d"])
		assert.Nil(t, tecnica["cambio_30d"])
	})

	t.Run("news failure", func(t *testing.T) {
		u := newUpstream(t, "/search")
		rec, body := get(t, newTestServer(u, "f", "g"), "/sentiment-data?ticker=AAPL&empresa=Apple")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, map[string]interface{}{"error": "Error al obtener datos de sentimiento"}, body)
	})
}

func TestMoatEndpoint(t *testing.T) {
	t.Run("missing ticker", func(t *testing.T) {
		u := newUpstream(t)
		rec, body := get(t, newTestServer(u, "f", ""), "/moat-check")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, body["error"], "ticker")
	})

	t.Run("report", func(t *testing.T) {
		u := newUpstream(t)
		rec, body := get(t, newTestServer(u, "f", ""), "/moat-check?ticker=AAPL")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Apple Inc.", body["company"])
		assert.Equal(t, "high", body["pricing_power"])
		assert.Equal(t, "strong", body["brand_strength"])
		assert.Equal(t, "data not available", body["passive_ownership_pct"])
		assert.Equal(t, 5, u.count())
	})

	t.Run("one failure fails all", func(t *testing.T) {
		u := newUpstream(t, "/api/v4/esg-environmental-social-governance-data")
		rec := httptest.NewRecorder()
		newTestServer(u, "f", "").Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/moat-check?ticker=AAPL", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"Error al obtener datos de moat check"}`, rec.Body.String())
		assert.False(t, strings.Contains(rec.Body.String(), "Apple"))
	})
}
