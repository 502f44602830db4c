package httpapi_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/elliottking-cpu/beast-app-sub003/internal/domain"
	httpapi "github.com/elliottking-cpu/beast-app-sub003/internal/http"
	"github.com/elliottking-cpu/beast-app-sub003/internal/models"
	"github.com/elliottking-cpu/beast-app-sub003/internal/repository"
)

type fakeViewLoader struct {
	views map[string]*models.ClientView
	err   error
}

func (f *fakeViewLoader) Load(_ context.Context, accountID string) (*models.ClientView, error) {
	if f.err != nil {
		return nil, f.err
	}
	view, ok := f.views[accountID]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", accountID, repository.ErrNotFound)
	}
	return view, nil
}

func newClientRouter(loader *fakeViewLoader) *httpapi.Router {
	logger := zap.NewNop()
	router := httpapi.NewRouter(logger)
	router.RegisterClientRoutes(httpapi.NewClientHandler(loader, logger))
	return router
}

func sampleClientView() *models.ClientView {
	return &models.ClientView{
		Account: domain.Account{ID: "acct-1", AccountType: domain.AccountTypeCommercial, BillingLine1: "1 Mill Lane"},
		Properties: []models.PropertyView{
			{
				Property: domain.Property{ID: "prop-a", AddressLine1: "2 High St", City: "York", Postcode: "YO1 1AA"},
				Tanks: []models.TankView{
					{Tank: domain.Tank{ID: "tank-1", PropertyID: "prop-a", Name: "Main", CapacityLitres: 2800}},
				},
			},
		},
		PropertyCount: 1,
		TankCount:     1,
	}
}

func TestGetClient(t *testing.T) {
	loader := &fakeViewLoader{views: map[string]*models.ClientView{"acct-1": sampleClientView()}}
	router := newClientRouter(loader)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/clients/acct-1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	result := decodeResult[models.ClientView](t, rec)
	assert.Equal(t, httpapi.ResultSuccess, result.Code)
	assert.Equal(t, "acct-1", result.Result.Account.ID)
	assert.Equal(t, 1, result.Result.TankCount)
}

func TestGetClient_NotFound(t *testing.T) {
	router := newClientRouter(&fakeViewLoader{views: map[string]*models.ClientView{}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/clients/acct-missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	result := decodeResult[any](t, rec)
	assert.Equal(t, httpapi.ResultError, result.Code)
}

func TestGetClient_StoreFailureIs500(t *testing.T) {
	router := newClientRouter(&fakeViewLoader{err: errors.New("store down")})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/clients/acct-1", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestExportClient(t *testing.T) {
	loader := &fakeViewLoader{views: map[string]*models.ClientView{"acct-1": sampleClientView()}}
	router := newClientRouter(loader)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/clients/acct-1/export", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "client-acct-1.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Client Detail")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Main", rows[1][3])
}

func TestExportClient_NotFound(t *testing.T) {
	router := newClientRouter(&fakeViewLoader{views: map[string]*models.ClientView{}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/clients/acct-missing/export", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClientRoutes_BadPaths(t *testing.T) {
	router := newClientRouter(&fakeViewLoader{views: map[string]*models.ClientView{}})

	for _, path := range []string{"/api/v1/clients/", "/api/v1/clients/a/b", "/api/v1/clients/a/b/export"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}
