package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/mortgage-calc/pkg/constants"
	"github.com/iwvelando/mortgage-calc/pkg/output"
	"github.com/iwvelando/mortgage-calc/pkg/purchase"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var fixedNow = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func newTestHandler(t *testing.T, cache Cache) http.Handler {
	t.Helper()
	h := newHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "test", cache)
	h.now = func() time.Time { return fixedNow }
	return h.routes()
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), dst); err != nil {
		t.Fatalf("failed to decode response: %v (%s)", err, rr.Body.String())
	}
}

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestHandlePaymentSuccess(t *testing.T) {
	handler := newTestHandler(t, nil)

	rr := postJSON(t, handler, "/api/payment",
		`{"homeValue":250000,"downPaymentPct":20,"annualRatePct":3.25,"termYears":30,"monthlyCosts":{"homeInsurance":25,"lifeInsurance":30,"propertyTax":45}}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected JSON content type, got %q", ct)
	}

	var resp paymentResponse
	decodeBody(t, rr, &resp)

	if !closeTo(resp.Principal, 200000) {
		t.Fatalf("expected principal 200000, got %v", resp.Principal)
	}
	if resp.Periods != 360 {
		t.Fatalf("expected 360 periods, got %d", resp.Periods)
	}
	if !closeTo(resp.Payment, 870.41) {
		t.Fatalf("expected payment 870.41, got %v", resp.Payment)
	}
	if !closeTo(resp.TotalMonthly, 970.41) {
		t.Fatalf("expected total monthly 970.41, got %v", resp.TotalMonthly)
	}
	if len(resp.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", resp.Warnings)
	}
}

func TestHandlePaymentWarnings(t *testing.T) {
	handler := newTestHandler(t, nil)

	rr := postJSON(t, handler, "/api/payment", `{"homeValue":250000,"downPaymentPct":100,"annualRatePct":3,"termYears":30}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp paymentResponse
	decodeBody(t, rr, &resp)
	if resp.Payment != 0 {
		t.Fatalf("expected zero payment for a fully paid home, got %v", resp.Payment)
	}
	if len(resp.Warnings) == 0 {
		t.Fatal("expected a down payment warning")
	}
}

func TestRequestErrors(t *testing.T) {
	small := newHandler(zap.NewNop(), 64, "test", nil).routes()
	handler := newTestHandler(t, nil)

	tests := []struct {
		name     string
		handler  http.Handler
		method   string
		path     string
		body     string
		expected int
	}{
		{name: "Wrong method", handler: handler, method: http.MethodGet, path: "/api/payment", expected: http.StatusMethodNotAllowed},
		{name: "Wrong method on regions", handler: handler, method: http.MethodPost, path: "/api/regions", expected: http.StatusMethodNotAllowed},
		{name: "Wrong method on report", handler: handler, method: http.MethodGet, path: "/api/report", expected: http.StatusMethodNotAllowed},
		{name: "Malformed JSON", handler: handler, method: http.MethodPost, path: "/api/schedule", body: `{"principal":`, expected: http.StatusBadRequest},
		{name: "Unknown field", handler: handler, method: http.MethodPost, path: "/api/affordability", body: `{"salary":2500}`, expected: http.StatusBadRequest},
		{name: "Empty body", handler: handler, method: http.MethodPost, path: "/api/costs", body: ``, expected: http.StatusBadRequest},
		{name: "Invalid start date", handler: handler, method: http.MethodPost, path: "/api/schedule", body: `{"principal":1200,"termYears":1,"startDate":"01/2025"}`, expected: http.StatusBadRequest},
		{name: "Zero term", handler: handler, method: http.MethodPost, path: "/api/payment", body: `{"principal":100000,"annualRatePct":3,"termYears":0}`, expected: http.StatusBadRequest},
		{name: "Negative term", handler: handler, method: http.MethodPost, path: "/api/schedule", body: `{"principal":100000,"termYears":-3}`, expected: http.StatusBadRequest},
		{name: "Overflowing term", handler: handler, method: http.MethodPost, path: "/api/payment", body: `{"principal":100000,"annualRatePct":3,"termYears":768614336404564651}`, expected: http.StatusBadRequest},
		{name: "Term beyond maximum", handler: handler, method: http.MethodPost, path: "/api/schedule", body: `{"principal":100000,"annualRatePct":3,"termYears":20000}`, expected: http.StatusBadRequest},
		{name: "Affordability term beyond maximum", handler: handler, method: http.MethodPost, path: "/api/affordability", body: `{"income":2500,"effortRatioPct":35,"termYears":51}`, expected: http.StatusBadRequest},
		{name: "Unknown region", handler: handler, method: http.MethodPost, path: "/api/costs", body: `{"price":200000,"region":"Atlantis"}`, expected: http.StatusNotFound},
		{name: "Oversized body", handler: small, method: http.MethodPost, path: "/api/payment", body: `{"homeValue":250000,"downPaymentPct":20,"annualRatePct":3.25,"termYears":30}`, expected: http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			tt.handler.ServeHTTP(rr, req)

			if rr.Code != tt.expected {
				t.Fatalf("expected status %d, got %d: %s", tt.expected, rr.Code, rr.Body.String())
			}

			var resp map[string]string
			decodeBody(t, rr, &resp)
			if resp["error"] == "" {
				t.Fatalf("expected error message in response, got %s", rr.Body.String())
			}
		})
	}
}

func TestTermLimitAccepted(t *testing.T) {
	cache := NewMemoryCache(time.Minute, 0)
	handler := newTestHandler(t, cache)

	rr := postJSON(t, handler, "/api/schedule", `{"principal":100000,"annualRatePct":3,"termYears":50,"startDate":"2025-01-01"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200 at the term limit, got %d: %s", rr.Code, rr.Body.String())
	}
	var view output.ReportView
	decodeBody(t, rr, &view)
	if view.Loan == nil || len(view.Loan.Schedule) != 600 {
		t.Fatalf("expected a 600 period schedule, got %+v", view.Loan)
	}

	rr = postJSON(t, handler, "/api/schedule", `{"principal":100000,"annualRatePct":3,"termYears":51,"startDate":"2025-01-01"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 above the term limit, got %d", rr.Code)
	}
	var resp map[string]string
	decodeBody(t, rr, &resp)
	if !strings.Contains(resp["error"], "loan.termYears") {
		t.Fatalf("expected error to name loan.termYears, got %q", resp["error"])
	}
	if cache.Len() != 1 {
		t.Fatalf("expected only the accepted schedule to be cached, got %d", cache.Len())
	}
}

func TestHandleScheduleSuccess(t *testing.T) {
	handler := newTestHandler(t, nil)

	rr := postJSON(t, handler, "/api/schedule", `{"principal":1200,"annualRatePct":0,"termYears":1,"startDate":"2025-01-15"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp output.ReportView
	decodeBody(t, rr, &resp)

	if resp.Loan == nil {
		t.Fatal("expected loan section in response")
	}
	if len(resp.Loan.Schedule) != 12 {
		t.Fatalf("expected 12 periods, got %d", len(resp.Loan.Schedule))
	}
	first := resp.Loan.Schedule[0]
	if first.Date != "2025-01-01" || first.Amortization != 100 || first.Interest != 0 {
		t.Fatalf("unexpected first period %+v", first)
	}
	if last := resp.Loan.Schedule[11]; last.Balance != 0 || last.Date != "2025-12-01" {
		t.Fatalf("unexpected last period %+v", last)
	}
	if resp.Loan.Summary.TotalPaid != 1200 {
		t.Fatalf("expected total paid 1200, got %v", resp.Loan.Summary.TotalPaid)
	}
}

func TestHandleScheduleDefaultsToToday(t *testing.T) {
	handler := newTestHandler(t, nil)

	rr := postJSON(t, handler, "/api/schedule", `{"principal":1200,"termYears":1}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp output.ReportView
	decodeBody(t, rr, &resp)
	if resp.Loan.Summary.FirstDate != "2026-10-01" {
		t.Fatalf("expected schedule to start this month, got %s", resp.Loan.Summary.FirstDate)
	}
}

func TestHandleAffordabilitySuccess(t *testing.T) {
	handler := newTestHandler(t, nil)

	rr := postJSON(t, handler, "/api/affordability",
		`{"income":2500,"fixedCosts":600,"monthlyDebts":200,"effortRatioPct":35,"annualRatePct":3.25,"termYears":30,"downPaymentPct":20,"stressTest":true,"sensitivity":true}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp output.ReportView
	decodeBody(t, rr, &resp)

	a := resp.Affordability
	if a == nil {
		t.Fatal("expected affordability section in response")
	}
	if a.MaxPaymentByRatio != 875 || a.AvailablePayment != 675 || a.SuggestedPayment != 525 {
		t.Fatalf("unexpected payments %+v", a)
	}
	if !closeTo(a.SuggestedPrincipal, 120632.44) {
		t.Fatalf("expected suggested principal 120632.44, got %v", a.SuggestedPrincipal)
	}
	if a.StressedPayment == nil || !closeTo(*a.StressedPayment, 666.14) {
		t.Fatalf("expected default stressed payment 666.14, got %v", a.StressedPayment)
	}
	if len(a.Sensitivity) != constants.SensitivitySteps {
		t.Fatalf("expected %d sensitivity points, got %d", constants.SensitivitySteps, len(a.Sensitivity))
	}
	if resp.Loan != nil || resp.Purchase != nil {
		t.Fatal("expected only the affordability section")
	}
}

func TestHandleCostsSuccess(t *testing.T) {
	handler := newTestHandler(t, nil)

	tests := []struct {
		name   string
		body   string
		region string
		total  float64
	}{
		{
			name:   "Resale in Madrid",
			body:   `{"price":250000,"region":"madrid","fees":{"notary":800,"registry":400,"agency":350,"appraisal":350}}`,
			region: "Madrid",
			total:  16900,
		},
		{
			name:   "New build in Madrid",
			body:   `{"price":200000,"newBuild":true,"vatPct":10,"region":"Madrid"}`,
			region: "Madrid",
			total:  21500,
		},
		{
			name:   "Custom region table",
			body:   `{"price":100000,"region":"Testland","regions":[{"name":"Testland","transferTaxPct":5,"stampDutyPct":1}]}`,
			region: "Testland",
			total:  5000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postJSON(t, handler, "/api/costs", tt.body)
			if rr.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
			}

			var resp output.ReportView
			decodeBody(t, rr, &resp)
			if resp.Purchase == nil {
				t.Fatal("expected purchase section in response")
			}
			if resp.Purchase.Region != tt.region {
				t.Fatalf("expected region %s, got %s", tt.region, resp.Purchase.Region)
			}
			if !closeTo(resp.Purchase.Total, tt.total) {
				t.Fatalf("expected total %v, got %v", tt.total, resp.Purchase.Total)
			}
		})
	}
}

func uploadConfig(t *testing.T, handler http.Handler, path string, data []byte) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "config.yaml")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("failed to write form data: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func readFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "config", "testdata", "config.yaml"))
	if err != nil {
		t.Fatalf("failed to read test config: %v", err)
	}
	return data
}

func TestHandleReportSuccess(t *testing.T) {
	handler := newTestHandler(t, nil)

	rr := uploadConfig(t, handler, "/api/report?schedule=true&sensitivity=true", readFixture(t))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp output.ReportView
	decodeBody(t, rr, &resp)

	if resp.Loan == nil || resp.Affordability == nil || resp.Purchase == nil {
		t.Fatalf("expected every section in response, got %s", rr.Body.String())
	}
	if len(resp.Loan.Schedule) != 360 {
		t.Fatalf("expected 360 periods, got %d", len(resp.Loan.Schedule))
	}
	if len(resp.Affordability.Sensitivity) == 0 {
		t.Fatal("expected sensitivity curve")
	}
	if resp.Purchase.Region != "Madrid" {
		t.Fatalf("expected Madrid, got %s", resp.Purchase.Region)
	}
}

func TestHandleReportRegionOverride(t *testing.T) {
	handler := newTestHandler(t, nil)

	rr := uploadConfig(t, handler, "/api/report?region=Catalu%C3%B1a", readFixture(t))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp output.ReportView
	decodeBody(t, rr, &resp)
	if resp.Purchase == nil || resp.Purchase.Region != "Cataluña" {
		t.Fatalf("expected Cataluña purchase costs, got %+v", resp.Purchase)
	}
	if len(resp.Loan.Schedule) != 0 {
		t.Fatal("expected schedule to be omitted by default")
	}

	rr = uploadConfig(t, handler, "/api/report?region=Atlantis", readFixture(t))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestHandleReportErrors(t *testing.T) {
	handler := newTestHandler(t, nil)

	tests := []struct {
		name     string
		data     string
		expected int
	}{
		{name: "Invalid YAML", data: "loan: [unterminated", expected: http.StatusBadRequest},
		{name: "Nothing to report", data: "logging:\n  level: info\n", expected: http.StatusBadRequest},
		{name: "Invalid start date", data: "loan:\n  principal: 1000\n  termYears: 1\n  startDate: soon\n", expected: http.StatusBadRequest},
		{name: "Term beyond maximum", data: "loan:\n  principal: 1000\n  termYears: 20000\n", expected: http.StatusBadRequest},
		{name: "Missing term", data: "loan:\n  principal: 1000\n", expected: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := uploadConfig(t, handler, "/api/report", []byte(tt.data))
			if rr.Code != tt.expected {
				t.Fatalf("expected status %d, got %d: %s", tt.expected, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestHandleReportMissingFile(t *testing.T) {
	handler := newTestHandler(t, nil)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("other", "value"); err != nil {
		t.Fatalf("failed to write field: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/report", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleReportTooLarge(t *testing.T) {
	handler := newHandler(zap.NewNop(), 128, "test", nil).routes()

	rr := uploadConfig(t, handler, "/api/report", bytes.Repeat([]byte("# padding\n"), 64))
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestHandleRegions(t *testing.T) {
	handler := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/regions", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var regions []purchase.Region
	decodeBody(t, rr, &regions)
	if len(regions) != len(purchase.DefaultRegions()) {
		t.Fatalf("expected %d regions, got %d", len(purchase.DefaultRegions()), len(regions))
	}
}

func TestHandleVersion(t *testing.T) {
	handler := NewHandler(zap.NewNop(), constants.DefaultMaxUploadSizeBytes, "  ", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp map[string]string
	decodeBody(t, rr, &resp)
	if resp["version"] != "dev" {
		t.Fatalf("expected blank version to default to dev, got %q", resp["version"])
	}
}

func TestRequestID(t *testing.T) {
	handler := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	generated := rr.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(generated); err != nil {
		t.Fatalf("expected generated request ID to be a UUID, got %q", generated)
	}

	incoming := uuid.NewString()
	req = httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set(RequestIDHeader, incoming)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if got := rr.Header().Get(RequestIDHeader); got != incoming {
		t.Fatalf("expected incoming request ID %s to be echoed, got %s", incoming, got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if got := rr.Header().Get(RequestIDHeader); got == "not-a-uuid" {
		t.Fatal("expected malformed request ID to be replaced")
	}
}

func TestRequestIDIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	handler := NewHandler(zap.New(core), constants.DefaultMaxUploadSizeBytes, "test", nil)

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodPost, "/api/payment", strings.NewReader(`{"principal":1000,"termYears":1}`))
	req.Header.Set(RequestIDHeader, incoming)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	entries := logs.FilterField(zap.String("requestId", incoming)).FilterMessage("request served").All()
	if len(entries) != 1 {
		t.Fatalf("expected one request log line with the request ID, got %d", len(entries))
	}
}

func TestResponseCaching(t *testing.T) {
	cache := NewMemoryCache(time.Minute, 0)
	handler := newTestHandler(t, cache)
	body := `{"homeValue":250000,"downPaymentPct":20,"annualRatePct":3.25,"termYears":30}`

	first := postJSON(t, handler, "/api/payment", body)
	if first.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", first.Code)
	}
	if got := first.Header().Get(CacheHeader); got != "MISS" {
		t.Fatalf("expected cache miss, got %q", got)
	}

	second := postJSON(t, handler, "/api/payment", body)
	if got := second.Header().Get(CacheHeader); got != "HIT" {
		t.Fatalf("expected cache hit, got %q", got)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("expected identical bodies, got %s and %s", first.Body.String(), second.Body.String())
	}

	// Same request on another endpoint is a separate entry.
	third := postJSON(t, handler, "/api/schedule", body)
	if got := third.Header().Get(CacheHeader); got != "MISS" {
		t.Fatalf("expected cache miss on another endpoint, got %q", got)
	}
	if cache.Len() != 2 {
		t.Fatalf("expected 2 cached responses, got %d", cache.Len())
	}
}

func TestErrorsAreNotCached(t *testing.T) {
	cache := NewMemoryCache(time.Minute, 0)
	handler := newTestHandler(t, cache)

	rr := postJSON(t, handler, "/api/costs", `{"price":200000,"region":"Atlantis"}`)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
	if cache.Len() != 0 {
		t.Fatalf("expected no cached responses, got %d", cache.Len())
	}
}

func TestResponseCacheStaysBounded(t *testing.T) {
	cache := NewMemoryCache(time.Minute, 100)
	handler := newTestHandler(t, cache)

	for i := 1; i <= 300; i++ {
		rr := postJSON(t, handler, "/api/payment", fmt.Sprintf(`{"principal":%d,"termYears":1}`, i*1000))
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d: expected status 200, got %d", i, rr.Code)
		}
	}
	if cache.Len() != 100 {
		t.Fatalf("expected cache to hold at most 100 responses, got %d", cache.Len())
	}

	// The most recent request is still cached.
	rr := postJSON(t, handler, "/api/payment", `{"principal":300000,"termYears":1}`)
	if got := rr.Header().Get(CacheHeader); got != "HIT" {
		t.Fatalf("expected cache hit for the newest entry, got %q", got)
	}
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("cache down")
}

func (failingCache) Set(context.Context, string, []byte) error {
	return errors.New("cache down")
}

func TestCacheFailuresAreIgnored(t *testing.T) {
	handler := newTestHandler(t, failingCache{})

	rr := postJSON(t, handler, "/api/payment", `{"principal":1000,"termYears":1}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200 despite cache failures, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp paymentResponse
	decodeBody(t, rr, &resp)
	if !closeTo(resp.Payment, 83.33) {
		t.Fatalf("expected payment 83.33, got %v", resp.Payment)
	}
}
