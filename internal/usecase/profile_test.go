package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"FinScope/internal/domain/models"
	"FinScope/internal/service/fmp"
	xhttp "FinScope/pkg/http"
	applogger "FinScope/pkg/logger"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileEndpointsTable(t *testing.T) {
	categories := map[string]int{}
	for _, ep := range ProfileEndpoints {
		categories[ep.Category]++
		if ep.RequiresTicker {
			assert.Contains(t, ep.Path, models.TickerPlaceholder, ep.Path)
		}
	}
	assert.Equal(t, map[string]int{
		"general":              2,
		"financial_statements": 4,
		"ratios":               2,
		"valuation":            4,
		"ownership":            3,
		"insights":             4,
		"calendar":             1,
	}, categories)
}

func TestProfileMissingKeyMakesNoCalls(t *testing.T) {
	f := &fakeFMP{key: false}
	uc := NewProfileUseCase(f, 4, nil, nil)

	for _, key := range []string{"", "   "} {
		_, err := uc.Execute(context.Background(), "AAPL", key)
		var appErr *xhttp.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Status)
		assert.Equal(t, "API key required", appErr.Message)
	}
	assert.Zero(t, f.callCount())
}

func TestProfileMissingTicker(t *testing.T) {
	f := &fakeFMP{key: true}
	_, err := NewProfileUseCase(f, 4, nil, nil).Execute(context.Background(), "", "k")

	var appErr *xhttp.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Zero(t, f.callCount())
}

func TestProfileIsolatesFailures(t *testing.T) {
	f := &fakeFMP{
		key: true,
		fetch: func(ep models.Endpoint, apiKey string) (json.RawMessage, error) {
			switch ep.Path {
			case "/quote/TSLA":
				return nil, &models.UpstreamError{
					Provider: "fmp",
					Endpoint: ep.Path,
					Message:  "Request failed with status code 403",
					Code:     "ERR_BAD_REQUEST",
					Status:   403,
					Body:     map[string]interface{}{"Error Message": "Limit Reach"},
				}
			case "/strategic-risks/TSLA":
				if ep.Version != models.APIv4 {
					return nil, errUpstream
				}
			}
			return json.RawMessage(`[{"path":"` + ep.Path + `"}]`), nil
		},
	}
	uc := NewProfileUseCase(f, 3, nil, nil)

	report, err := uc.Execute(context.Background(), "TSLA", "")
	require.NoError(t, err)
	assert.Equal(t, "TSLA", report.Ticker)
	assert.Equal(t, len(ProfileEndpoints), f.callCount())

	failed, ok := report.Data["general"]["/quote/TSLA"].(models.ErrorRecord)
	require.True(t, ok)
	assert.True(t, failed.Error)
	assert.Equal(t, "Request failed with status code 403", failed.Message)
	require.NotNil(t, failed.Status)
	assert.Equal(t, 403, *failed.Status)
	assert.Equal(t, "/quote/TSLA", failed.Endpoint)

	assert.JSONEq(t, `[{"path":"/profile/TSLA"}]`, string(report.Data["general"]["/profile/TSLA"].(json.RawMessage)))
	assert.JSONEq(t, `[{"path":"/economic_calendar"}]`, string(report.Data["calendar"]["/economic_calendar"].(json.RawMessage)))
	_, isRaw := report.Data["insights"]["/strategic-risks/TSLA"].(json.RawMessage)
	assert.True(t, isRaw)

	first, err := json.Marshal(report)
	require.NoError(t, err)
	again, err := uc.Execute(context.Background(), "TSLA", "")
	require.NoError(t, err)
	second, err := json.Marshal(again)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestProfileRequestKeyForwarded(t *testing.T) {
	f := &fakeFMP{
		key: false,
		fetch: func(ep models.Endpoint, apiKey string) (json.RawMessage, error) {
			if apiKey != "req-key" {
				return nil, errUpstream
			}
			return json.RawMessage(`{}`), nil
		},
	}
	report, err := NewProfileUseCase(f, 2, nil, nil).Execute(context.Background(), "AAPL", "req-key")
	require.NoError(t, err)

	for category, endpoints := range report.Data {
		for path, v := range endpoints {
			_, failed := v.(models.ErrorRecord)
			assert.False(t, failed, "%s %s", category, path)
		}
	}
}

func TestProfileErrorRecordShape(t *testing.T) {
	f := &fakeFMP{
		key: true,
		fetch: func(ep models.Endpoint, _ string) (json.RawMessage, error) {
			return nil, errUpstream
		},
	}
	report, err := NewProfileUseCase(f, 4, nil, nil).Execute(context.Background(), "X", "")
	require.NoError(t, err)

	out, err := json.Marshal(report.Data["calendar"])
	require.NoError(t, err)
	assert.JSONEq(t, `{"/economic_calendar":{"error":true,"message":"upstream down","code":null,"status":null,"data":null,"endpoint":"/economic_calendar"}}`, string(out))
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestProfileNetworkFailureKeepsConfiguredKeyPrivate(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	logs := &lockedBuffer{}
	log := applogger.NewWriter(logs, zerolog.DebugLevel)
	client := fmp.New(
		fmp.WithBaseURLs(base+"/api/v3", base+"/api/v4"),
		fmp.WithAPIKey("SERVER-SECRET"),
		fmp.WithTimeout(2*time.Second),
		fmp.WithLogger(log),
	)

	report, err := NewProfileUseCase(client, 4, log, nil).Execute(context.Background(), "AAPL", "")
	require.NoError(t, err)

	out, err := json.Marshal(report)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "SERVER-SECRET")
	assert.NotContains(t, logs.String(), "SERVER-SECRET")

	slot, ok := report.Data["general"]["/profile/AAPL"].(models.ErrorRecord)
	require.True(t, ok, "expected an error record, got %T", report.Data["general"]["/profile/AAPL"])
	require.NotNil(t, slot.Code)
	assert.Equal(t, "ERR_NETWORK", *slot.Code)
	assert.Contains(t, slot.Message, "/profile/AAPL")
}
