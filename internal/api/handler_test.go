package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/upi-statement-parser/internal/extractor"
	"github.com/insightdelivered/upi-statement-parser/internal/metrics"
	"github.com/insightdelivered/upi-statement-parser/internal/models"
	"github.com/insightdelivered/upi-statement-parser/internal/parser"
)

const testPassword = "s3cret"

var statementPages = []string{
	"Date Details Ref No Debit Credit Balance\n" +
		"05 JAN 2024 UPI/DR/123456/JOHN DOE\n" +
		"TRANSFER TO 9876543210 - 450.00\n" +
		"10 FEB 2024 UPI/CR/998877/ACME CORP\n" +
		"TRANSFER FROM 1234567890 - - 2000.00",
}

// fakeOpen accepts testPassword and any empty-password upload, and rejects
// everything else the way the real extractor does.
func fakeOpen(data []byte, password string) ([]string, error) {
	if password != testPassword && password != "" {
		return nil, fmt.Errorf("%w: %v", extractor.ErrInvalidPDF, "incorrect password")
	}
	if string(data) == "boom" {
		panic("pdf library exploded")
	}
	return statementPages, nil
}

func setupTestApp(t *testing.T) (*fiber.App, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	h := &Handler{
		Parser:     parser.New(nil, parser.DefaultOptions()),
		Open:       fakeOpen,
		DateLayout: models.DateLayoutShort,
		Metrics:    metrics.New(reg),
		Version:    "test",
	}
	return NewApp(h, Options{Logger: zerolog.Nop(), Gatherer: reg}), reg
}

func uploadRequest(t *testing.T, fields map[string]string, file []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	if file != nil {
		fw, err := mw.CreateFormFile("file", "statement.pdf")
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func errorMessage(t *testing.T, body []byte) string {
	t.Helper()
	var e map[string]string
	require.NoError(t, json.Unmarshal(body, &e))
	return e["error"]
}

func TestHealthEndpoint(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var result HealthResponse
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, "test", result.Version)
}

func TestUpload(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, body := doRequest(t, app, uploadRequest(t, map[string]string{"password": testPassword}, []byte("%PDF")))

	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	var result models.Response
	require.NoError(t, json.Unmarshal(body, &result))

	require.Equal(t, 2, result.Count)
	assert.Equal(t, 450.0, result.TotalDebit)
	assert.Equal(t, 2000.0, result.TotalCredit)

	debit := result.Transactions[0]
	require.NotNil(t, debit.Date)
	assert.Equal(t, "05-Jan-2024", *debit.Date)
	assert.Equal(t, 450.0, debit.Amount)
	assert.Equal(t, "DEBIT", debit.Type)
	assert.Equal(t, "JOHN DOE", debit.Description)
	require.NotNil(t, debit.UTR)
	assert.Equal(t, "123456", *debit.UTR)

	credit := result.Transactions[1]
	assert.Equal(t, "CREDIT", credit.Type)
	assert.Equal(t, models.CategoryIncome, credit.Category)
}

func TestUpload_EmptyPasswordIsAccepted(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, _ := doRequest(t, app, uploadRequest(t, map[string]string{"password": ""}, []byte("%PDF")))

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestUpload_BadRequests(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
		file   []byte
		want   string
	}{
		{"missing file", map[string]string{"password": testPassword}, nil, "No file uploaded"},
		{"missing password", map[string]string{}, []byte("%PDF"), "password"},
		{"unknown format", map[string]string{"password": testPassword, "format": "pdf"}, []byte("%PDF"), "unsupported output format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := setupTestApp(t)

			resp, body := doRequest(t, app, uploadRequest(t, tt.fields, tt.file))

			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, errorMessage(t, body), tt.want)
		})
	}
}

func TestUpload_NotMultipart(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(`{"password":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := doRequest(t, app, req)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUpload_InvalidPDFOrPassword(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, body := doRequest(t, app, uploadRequest(t, map[string]string{"password": "wrong"}, []byte("%PDF")))

	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "Invalid PDF or password: incorrect password", errorMessage(t, body))
}

func TestUpload_CSVDownload(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, body := doRequest(t, app, uploadRequest(t, map[string]string{"password": testPassword, "format": "csv"}, []byte("%PDF")))

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename="statement.csv"`)

	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "05-Jan-2024,JOHN DOE,Other Expense,DEBIT,450.00,123456", lines[1])
}

func TestUpload_PanicIsRecovered(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, body := doRequest(t, app, uploadRequest(t, map[string]string{"password": testPassword}, []byte("boom")))

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Internal server error", errorMessage(t, body))
}

func TestErrorHandler_LogsServerErrorsWithRequestID(t *testing.T) {
	var logs bytes.Buffer
	h := &Handler{
		Parser:     parser.New(nil, parser.DefaultOptions()),
		Open:       fakeOpen,
		DateLayout: models.DateLayoutShort,
		Metrics:    metrics.New(prometheus.NewRegistry()),
	}
	app := NewApp(h, Options{Logger: zerolog.New(&logs), Gatherer: prometheus.NewRegistry()})

	req := uploadRequest(t, map[string]string{"password": testPassword}, []byte("boom"))
	req.Header.Set(RequestIDHeader, "req-500")
	resp, _ := doRequest(t, app, req)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var found bool
	for _, line := range strings.Split(strings.TrimSpace(logs.String()), "\n") {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		if entry["message"] == "request failed" {
			found = true
			assert.Equal(t, "error", entry["level"])
			assert.Equal(t, "req-500", entry["request_id"])
			assert.Contains(t, entry["error"], "pdf library exploded")
		}
	}
	assert.True(t, found, "no request failed entry in %s", logs.String())
}

func TestRequestID(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, _ := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, _ = doRequest(t, app, req)
	assert.Equal(t, "abc-123", resp.Header.Get(RequestIDHeader))
}

func TestCORSPreflight(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/upload", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, _ := doRequest(t, app, req)

	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	app, _ := setupTestApp(t)

	doRequest(t, app, uploadRequest(t, map[string]string{"password": testPassword}, []byte("%PDF")))
	doRequest(t, app, uploadRequest(t, map[string]string{"password": "wrong"}, []byte("%PDF")))

	resp, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	text := string(body)
	assert.Contains(t, text, `statement_uploads_total{outcome="ok"} 1`)
	assert.Contains(t, text, `statement_uploads_total{outcome="invalid_pdf"} 1`)
	assert.Contains(t, text, `statement_transactions_parsed_total{direction="DEBIT"} 1`)
}

func TestCause(t *testing.T) {
	assert.Equal(t, "bad xref", cause(fmt.Errorf("%w: bad xref", extractor.ErrInvalidPDF)))
	assert.Equal(t, extractor.ErrInvalidPDF.Error(), cause(extractor.ErrInvalidPDF))
	assert.Equal(t, "other", cause(errors.New("other")))
}

func TestDownloadName(t *testing.T) {
	assert.Equal(t, "jan.csv", downloadName("jan.pdf", "csv"))
	assert.Equal(t, "jan.xlsx", downloadName("/tmp/uploads/jan.PDF", "xlsx"))
	assert.Equal(t, "transactions.csv", downloadName("", "csv"))
}
