package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"

	"price-recon/internal/config"
)

const (
	supplierCSV = "name,article,price\nWidget,A1,12\nPower Bank (XM123),,15\nFree sample,A9,0\n"
	baseCSV     = "name,article,price\nWidget,A1,10\nPowerbank (XM123) black,B8,14\n"
)

func testConfig() config.Config {
	return config.Config{MaxUploadMB: 8, Threshold: 0.33, ChangePercent: 5, DefaultProfile: "auto"}
}

func newUpload(t *testing.T, files map[string][2]string, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for field, f := range files {
		fw, err := mw.CreateFormFile(field, f[0])
		require.NoError(t, err)
		_, err = fw.Write([]byte(f[1]))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/reconcile", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	Reconcile(testConfig(), zerolog.Nop()).ServeHTTP(rec, req)
	return rec
}

func TestReconcileJSON(t *testing.T) {
	req := newUpload(t, map[string][2]string{
		"supplier": {"supplier.csv", supplierCSV},
		"base":     {"base.csv", baseCSV},
	}, nil)
	rec := serve(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "default", resp.Opts.Profile)
	assert.Equal(t, 2, resp.SupplierTotal)
	require.Len(t, resp.Matches, 1)
	assert.InDelta(t, 20.0, resp.Matches[0].PriceChangePercent, 1e-9)
	assert.Len(t, resp.PriceChanges, 1)
	require.Len(t, resp.BracketMatches, 1)
	assert.Equal(t, "XM123", resp.BracketMatches[0].Key)
	assert.Empty(t, resp.NewItems)
	assert.Equal(t, 1, resp.Preprocess.ByPrice)
}

func TestReconcileLegacyFieldNames(t *testing.T) {
	req := newUpload(t, map[string][2]string{
		"fileA": {"supplier.csv", supplierCSV},
		"fileB": {"base.csv", baseCSV},
	}, map[string]string{"enable_codes": "false", "enable_fuzzy": "0"})
	rec := serve(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.BracketMatches)
	assert.Len(t, resp.NewItems, 1)
}

func TestReconcileXLSX(t *testing.T) {
	req := newUpload(t, map[string][2]string{
		"supplier": {"supplier.csv", supplierCSV},
		"base":     {"base.csv", baseCSV},
	}, map[string]string{"format": "xlsx"})
	rec := serve(req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "recon_default_")

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()
	assert.Len(t, f.GetSheetList(), 7)
}

func TestReconcileMisconfigured(t *testing.T) {
	req := newUpload(t, map[string][2]string{
		"supplier": {"supplier.csv", supplierCSV},
		"base":     {"base.csv", baseCSV},
	}, map[string]string{"profile": "vitya"})
	rec := serve(req)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "article_vitya")
}

func TestReconcileBadRequests(t *testing.T) {
	rec := serve(newUpload(t, map[string][2]string{"supplier": {"supplier.csv", supplierCSV}}, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(newUpload(t, map[string][2]string{
		"supplier": {"supplier.csv", supplierCSV},
		"base":     {"base.csv", baseCSV},
	}, map[string]string{"profile": "nobody"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(newUpload(t, map[string][2]string{
		"supplier": {"supplier.pdf", "x"},
		"base":     {"base.csv", baseCSV},
	}, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfiles(t *testing.T) {
	rec := httptest.NewRecorder()
	Profiles(rec, httptest.NewRequest(http.MethodGet, "/profiles", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 3)
	assert.Equal(t, "default", out[0]["name"])
}

func TestFormHelpers(t *testing.T) {
	assert.Equal(t, 3, atoi("3", 1))
	assert.Equal(t, 1, atoi("x", 1))
	assert.True(t, toBool("", true))
	assert.False(t, toBool("off", true))
	assert.Equal(t, 0.5, toFloat("0,5", 0.33))
	assert.Equal(t, 0.33, toFloat("NaN", 0.33))
}
