package companyregistry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/bank_demo_app/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNIP = "8461627563"

var lookupDate = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

func newRegistryServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search/nip/"+testNIP, r.URL.Path)
		assert.Equal(t, "2026-10-19", r.URL.Query().Get("date"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_VerifyCompany(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantActive bool
		wantErr    Category
	}{
		{
			name:       "active VAT payer",
			status:     http.StatusOK,
			body:       `{"result":{"subject":{"name":"ACME","nip":"8461627563","statusVat":"Czynny"},"requestId":"abc"}}`,
			wantActive: true,
		},
		{
			name:   "exempt VAT payer",
			status: http.StatusOK,
			body:   `{"result":{"subject":{"name":"ACME","nip":"8461627563","statusVat":"Zwolniony"}}}`,
		},
		{
			name:   "no subject",
			status: http.StatusOK,
			body:   `{"result":{"subject":null,"requestId":"abc"}}`,
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `{"code":"WL-100"}`,
			wantErr: CategoryBadStatus,
		},
		{
			name:    "bad request",
			status:  http.StatusBadRequest,
			body:    `{"code":"WL-113","message":"Pole 'NIP' ma nieprawidłową długość."}`,
			wantErr: CategoryBadStatus,
		},
		{
			name:    "malformed body",
			status:  http.StatusOK,
			body:    `{"result":`,
			wantErr: CategoryParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newRegistryServer(t, tt.status, tt.body)
			client := NewClient(srv.URL+"/", time.Second)

			active, err := client.VerifyCompany(context.Background(), testNIP, lookupDate)

			assert.Equal(t, tt.wantActive, active)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, CategoryOf(err))
		})
	}
}

func TestClient_BadStatusCarriesCode(t *testing.T) {
	srv := newRegistryServer(t, http.StatusServiceUnavailable, "")
	client := NewClient(srv.URL, time.Second)

	_, err := client.Lookup(context.Background(), testNIP, lookupDate)

	var le *LookupError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, http.StatusServiceUnavailable, le.StatusCode)
	assert.Equal(t, testNIP, le.TaxNumber)
	assert.Contains(t, le.Error(), "status 503")
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	client := NewClient(srv.URL, 50*time.Millisecond)
	active, err := client.VerifyCompany(context.Background(), testNIP, lookupDate)

	assert.False(t, active)
	assert.Equal(t, CategoryTimeout, CategoryOf(err))
}

func TestClient_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	client := NewClient(baseURL, time.Second)
	_, err := client.VerifyCompany(context.Background(), testNIP, lookupDate)

	assert.Equal(t, CategoryNetwork, CategoryOf(err))
}

func TestClient_RecordsMetrics(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	ok := newRegistryServer(t, http.StatusOK, `{"result":{"subject":{"statusVat":"Czynny"}}}`)
	broken := newRegistryServer(t, http.StatusBadGateway, "")

	_, _ = NewClient(ok.URL, time.Second, WithMetrics(m)).VerifyCompany(context.Background(), testNIP, lookupDate)
	_, _ = NewClient(broken.URL, time.Second, WithMetrics(m)).VerifyCompany(context.Background(), testNIP, lookupDate)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RegistryLookups.WithLabelValues("active")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RegistryLookups.WithLabelValues(string(CategoryBadStatus))))
}

func TestCategoryOf_ForeignError(t *testing.T) {
	assert.Equal(t, Category(""), CategoryOf(errors.New("boom")))
}

func TestStatic(t *testing.T) {
	active, err := Static{Active: true}.VerifyCompany(context.Background(), testNIP, lookupDate)
	assert.NoError(t, err)
	assert.True(t, active)
}
