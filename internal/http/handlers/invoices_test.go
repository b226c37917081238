package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/invoice-dashboard/internal/cache"
	"github.com/hongminglow/invoice-dashboard/internal/http/respond"
	"github.com/hongminglow/invoice-dashboard/internal/invoices"
	"github.com/hongminglow/invoice-dashboard/internal/models"
)

type invoiceFixture struct {
	store *memInvoices
	mux   *http.ServeMux
	redis *miniredis.Miniredis
	views *cache.Views
}

func newInvoiceFixture(t *testing.T) invoiceFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	views := cache.NewViews(rdb, time.Minute)

	store := newMemInvoices()
	svc := invoices.NewService(store, views, nil)
	mux := http.NewServeMux()
	NewInvoiceHandler(svc, store, views).Register(mux)
	return invoiceFixture{store: store, mux: mux, redis: mr, views: views}
}

func (f invoiceFixture) do(t *testing.T, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

type pageEnvelope struct {
	Code int                `json:"code"`
	Data models.InvoicePage `json:"data"`
}

func decodePage(t *testing.T, rec *httptest.ResponseRecorder) models.InvoicePage {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code)
	var env pageEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env.Data
}

func TestCreateInvoiceRedirectsToList(t *testing.T) {
	f := newInvoiceFixture(t)

	rec := f.do(t, http.MethodPost, "/dashboard/invoices", url.Values{
		"customerId": {"c1"}, "amount": {"50.00"}, "status": {"pending"},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard/invoices", rec.Header().Get("Location"))
	require.Len(t, f.store.invoices, 1)
	for _, inv := range f.store.invoices {
		assert.Equal(t, int64(5000), inv.Amount)
		assert.Equal(t, time.Now().UTC().Format(models.DateLayout), inv.Date.Format(models.DateLayout))
	}
}

func TestCreateInvoiceValidationError(t *testing.T) {
	f := newInvoiceFixture(t)

	rec := f.do(t, http.MethodPost, "/dashboard/invoices", url.Values{
		"customerId": {"c1"}, "amount": {"not-a-number"}, "status": {"pending"},
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var env struct {
		respond.Envelope
		Data struct {
			Errors map[string][]string `json:"errors"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	assert.Equal(t, "Missing Fields. Failed to Create Invoice.", env.Message)
	assert.Contains(t, env.Data.Errors, "amount")
	assert.Empty(t, f.store.invoices)
}

func TestCreateInvoiceStoreError(t *testing.T) {
	f := newInvoiceFixture(t)
	f.store.err = errBoom

	rec := f.do(t, http.MethodPost, "/dashboard/invoices", url.Values{
		"customerId": {"c1"}, "amount": {"5"}, "status": {"paid"},
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestListIsCachedAndInvalidatedByMutations(t *testing.T) {
	f := newInvoiceFixture(t)
	id := f.store.put(1000, models.StatusPending)

	first := decodePage(t, f.do(t, http.MethodGet, "/dashboard/invoices", nil))
	require.Len(t, first.Invoices, 1)
	assert.Equal(t, 1, f.store.reads)

	decodePage(t, f.do(t, http.MethodGet, "/dashboard/invoices?page=1", nil))
	assert.Equal(t, 1, f.store.reads, "second read should be served from cache")

	rec := f.do(t, http.MethodPost, "/dashboard/invoices/"+id+"/edit", url.Values{
		"customerId": {"c1"}, "amount": {"25"}, "status": {"paid"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	for _, k := range f.redis.Keys() {
		assert.False(t, strings.HasPrefix(k, "view:"), "cached view %s survived invalidation", k)
	}

	after := decodePage(t, f.do(t, http.MethodGet, "/dashboard/invoices", nil))
	require.Len(t, after.Invoices, 1)
	assert.Equal(t, int64(2500), after.Invoices[0].Amount)
	assert.Equal(t, models.StatusPaid, after.Invoices[0].Status)
	assert.Equal(t, 2, f.store.reads)

	rec = f.do(t, http.MethodPost, "/dashboard/invoices", url.Values{
		"customerId": {"c2"}, "amount": {"3"}, "status": {"pending"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	created := decodePage(t, f.do(t, http.MethodGet, "/dashboard/invoices", nil))
	assert.Len(t, created.Invoices, 2)
}

func TestListPaginates(t *testing.T) {
	f := newInvoiceFixture(t)
	for i := range 8 {
		f.store.put(int64(100+i), models.StatusPaid)
	}

	first := decodePage(t, f.do(t, http.MethodGet, "/dashboard/invoices?page=1", nil))
	assert.Len(t, first.Invoices, 6)
	assert.Equal(t, 2, first.TotalPages)

	second := decodePage(t, f.do(t, http.MethodGet, "/dashboard/invoices?page=2", nil))
	assert.Len(t, second.Invoices, 2)
	assert.Equal(t, 2, second.Page)

	bad := decodePage(t, f.do(t, http.MethodGet, "/dashboard/invoices?page=-4", nil))
	assert.Equal(t, 1, bad.Page)
}

func TestListStoreError(t *testing.T) {
	f := newInvoiceFixture(t)
	f.store.err = errBoom
	rec := f.do(t, http.MethodGet, "/dashboard/invoices", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetInvoice(t *testing.T) {
	f := newInvoiceFixture(t)
	id := f.store.put(1999, models.StatusPending)

	rec := f.do(t, http.MethodGet, "/dashboard/invoices/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var env struct {
		Data models.InvoiceForm `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	assert.Equal(t, 19.99, env.Data.Amount)

	rec = f.do(t, http.MethodGet, "/dashboard/invoices/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateInvoiceRejectsUnknownStatus(t *testing.T) {
	f := newInvoiceFixture(t)
	id := f.store.put(1000, models.StatusPending)

	rec := f.do(t, http.MethodPost, "/dashboard/invoices/"+id+"/edit", url.Values{
		"customerId": {"c1"}, "amount": {"10"}, "status": {"overdue"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, models.StatusPending, f.store.invoices[id].Status)
}

func TestDeleteInvoice(t *testing.T) {
	f := newInvoiceFixture(t)
	id := f.store.put(1000, models.StatusPending)
	keep := f.store.put(2000, models.StatusPaid)

	rec := f.do(t, http.MethodPost, "/dashboard/invoices/"+id+"/delete", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("Location"))
	assert.NotContains(t, f.store.invoices, id)

	rec = f.do(t, http.MethodPost, "/dashboard/invoices/"+uuid.NewString()+"/delete", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Len(t, f.store.invoices, 1)
	assert.Contains(t, f.store.invoices, keep)
}

func TestInvoiceRoutesRejectWrongMethod(t *testing.T) {
	f := newInvoiceFixture(t)
	rec := f.do(t, http.MethodGet, "/dashboard/invoices/"+uuid.NewString()+"/delete", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestListDoesNotCacheResultOverlappingMutation(t *testing.T) {
	f := newInvoiceFixture(t)
	f.store.put(1000, models.StatusPending)
	f.store.onFilter = func() {
		f.store.onFilter = nil
		require.NoError(t, f.views.Invalidate(context.Background(), invoices.ListPath))
	}

	decodePage(t, f.do(t, http.MethodGet, "/dashboard/invoices", nil))
	decodePage(t, f.do(t, http.MethodGet, "/dashboard/invoices", nil))

	assert.Equal(t, 2, f.store.reads, "a read overlapping an invalidation must not populate the cache")
}
