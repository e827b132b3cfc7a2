package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/mortgage-calc/internal/config"
	"github.com/iwvelando/mortgage-calc/internal/report"
	"github.com/iwvelando/mortgage-calc/pkg/constants"
	"github.com/iwvelando/mortgage-calc/pkg/datetime"
	"github.com/iwvelando/mortgage-calc/pkg/mathutil"
	"github.com/iwvelando/mortgage-calc/pkg/output"
	"github.com/iwvelando/mortgage-calc/pkg/purchase"
	"github.com/iwvelando/mortgage-calc/pkg/validation"
	"go.uber.org/zap"
)

const (
	// RequestIDHeader carries the request identifier in both directions.
	RequestIDHeader = "X-Request-ID"
	// CacheHeader reports whether a response was served from the cache.
	CacheHeader = "X-Cache"
)

type requestIDKey struct{}

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	cache         Cache
	now           func() time.Time
}

// NewHandler constructs the HTTP handler that serves the mortgage API. A nil
// cache disables response caching.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string, cache Cache) http.Handler {
	return newHandler(logger, maxUploadSize, version, cache).routes()
}

func newHandler(logger *zap.Logger, maxUploadSize int64, version string, cache Cache) *handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	return &handler{
		logger:        logger,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
		cache:         cache,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (h *handler) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/payment", h.handlePayment)
	mux.HandleFunc("/api/schedule", h.handleSchedule)
	mux.HandleFunc("/api/affordability", h.handleAffordability)
	mux.HandleFunc("/api/costs", h.handleCosts)

	// Report endpoint (YAML configuration upload)
	mux.HandleFunc("/api/report", h.handleReport)

	mux.HandleFunc("/api/regions", h.handleRegions)
	mux.HandleFunc("/api/version", h.handleVersion)

	return h.withRequestID(mux)
}

// RequestID returns the identifier assigned to the request carried by ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// withRequestID keeps a well-formed incoming request ID and assigns a new one
// otherwise. The ID is echoed in the response and attached to log lines.
func (h *handler) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func (h *handler) requestLogger(r *http.Request) *zap.Logger {
	return h.logger.With(zap.String("requestId", RequestID(r.Context())))
}

type paymentResponse struct {
	Principal    float64  `json:"principal"`
	PeriodicRate float64  `json:"periodicRate"`
	Periods      int      `json:"periods"`
	Payment      float64  `json:"payment"`
	MonthlyCosts float64  `json:"monthlyCosts"`
	TotalMonthly float64  `json:"totalMonthly"`
	Warnings     []string `json:"warnings,omitempty"`
}

type affordabilityRequest struct {
	config.AffordabilityConfig
	Sensitivity bool `json:"sensitivity,omitempty"`
}

type costsRequest struct {
	config.PurchaseConfig
	Regions []config.RegionConfig `json:"regions,omitempty"`
}

// requestError carries the status code of a failed computation.
type requestError struct {
	status int
	err    error
}

func (e *requestError) Error() string { return e.err.Error() }

func (e *requestError) Unwrap() error { return e.err }

func badRequest(err error) error {
	return &requestError{status: http.StatusBadRequest, err: err}
}

func (h *handler) handlePayment(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlePayment"
	var req config.LoanConfig
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	if !h.checkTerms(w, r, &config.Configuration{Loan: &req}, op) {
		return
	}

	h.serveCached(w, r, "payment", &req, op, func() (interface{}, error) {
		terms := req.Terms()
		payment := terms.Payment()
		monthlyCosts := req.MonthlyCosts.Total()
		return paymentResponse{
			Principal:    mathutil.Round(terms.Principal),
			PeriodicRate: terms.Rate,
			Periods:      terms.Periods,
			Payment:      mathutil.Round(payment),
			MonthlyCosts: mathutil.Round(monthlyCosts),
			TotalMonthly: mathutil.Round(payment + monthlyCosts),
			Warnings:     (&config.Configuration{Loan: &req}).ValidateConfiguration(),
		}, nil
	})
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSchedule"
	var req config.LoanConfig
	if !h.decodeJSON(w, r, &req, op) {
		return
	}
	if !h.checkTerms(w, r, &config.Configuration{Loan: &req}, op) {
		return
	}
	// Pin the start date so cached schedules do not outlive the day.
	if req.StartDate == "" {
		req.StartDate = datetime.Format(h.now())
	}

	h.serveCached(w, r, "schedule", &req, op, func() (interface{}, error) {
		loanReport, err := report.BuildLoan(h.requestLogger(r), &req, h.now())
		if err != nil {
			return nil, badRequest(err)
		}
		result := &report.Report{
			Loan:     loanReport,
			Warnings: (&config.Configuration{Loan: &req}).ValidateConfiguration(),
		}
		return output.NewReportView(result, true), nil
	})
}

func (h *handler) handleAffordability(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleAffordability"
	var req affordabilityRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}
	if !h.checkTerms(w, r, &config.Configuration{Affordability: &req.AffordabilityConfig}, op) {
		return
	}
	req.ApplyDefaults()

	h.serveCached(w, r, "affordability", &req, op, func() (interface{}, error) {
		result := &report.Report{
			Affordability: report.BuildAffordability(h.requestLogger(r), &req.AffordabilityConfig, req.Sensitivity),
			Warnings:      (&config.Configuration{Affordability: &req.AffordabilityConfig}).ValidateConfiguration(),
		}
		return output.NewReportView(result, false), nil
	})
}

func (h *handler) handleCosts(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCosts"
	var req costsRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	h.serveCached(w, r, "costs", &req, op, func() (interface{}, error) {
		conf := &config.Configuration{Purchase: &req.PurchaseConfig, Regions: req.Regions}
		costs, err := report.BuildPurchase(h.requestLogger(r), conf, "")
		if err != nil {
			return nil, err
		}
		return output.NewReportView(&report.Report{Purchase: costs}, false), nil
	})
}

func (h *handler) handleReport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleReport"
	if r.Method != http.MethodPost {
		h.respondErrorWithOp(w, r, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed), op)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, "missing configuration file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.requestLogger(r).Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), op)
		return
	}

	query := r.URL.Query()
	withSchedule := queryBool(query.Get("schedule"))
	opts := report.Options{
		FixedTime:   h.now(),
		Sensitivity: queryBool(query.Get("sensitivity")),
		Region:      query.Get("region"),
	}

	key := struct {
		Config   string         `json:"config"`
		Schedule bool           `json:"schedule"`
		Options  report.Options `json:"options"`
		Date     string         `json:"date"`
	}{
		Config:   buf.String(),
		Schedule: withSchedule,
		Options:  opts,
		Date:     datetime.Format(opts.FixedTime),
	}
	key.Options.FixedTime = time.Time{}

	h.serveCached(w, r, "report", &key, op, func() (interface{}, error) {
		conf, err := config.LoadConfigurationFromReader(bytes.NewReader(buf.Bytes()))
		if err != nil {
			return nil, badRequest(err)
		}
		if err := conf.CheckTerms(); err != nil {
			return nil, badRequest(err)
		}
		result, err := report.Generate(h.requestLogger(r), conf, opts)
		if err != nil {
			if errors.Is(err, purchase.ErrUnknownRegion) {
				return nil, err
			}
			return nil, badRequest(err)
		}
		return output.NewReportView(result, withSchedule), nil
	})
}

func (h *handler) handleRegions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.respondErrorWithOp(w, r, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed), "server.handleRegions")
		return
	}

	h.writeJSON(w, http.StatusOK, purchase.DefaultRegions())
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.respondErrorWithOp(w, r, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed), "server.handleVersion")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// checkTerms rejects loan terms outside the accepted range with 400 before
// any schedule is built.
func (h *handler) checkTerms(w http.ResponseWriter, r *http.Request, conf *config.Configuration, op string) bool {
	if err := conf.CheckTerms(); err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return false
	}
	return true
}

// decodeJSON enforces POST, limits the body size and decodes it into dst. It
// writes the error response and returns false on failure.
func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	if r.Method != http.MethodPost {
		h.respondErrorWithOp(w, r, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed), op)
		return false
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			h.respondErrorWithOp(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
		case errors.Is(err, io.EOF):
			h.respondErrorWithOp(w, r, http.StatusBadRequest, "empty request body", op)
		default:
			h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		}
		return false
	}
	return true
}

// serveCached answers from the cache when the canonical request was seen
// before, and otherwise computes, stores and writes the response. Cache
// failures are logged and never fail the request.
func (h *handler) serveCached(w http.ResponseWriter, r *http.Request, endpoint string, req interface{}, op string, compute func() (interface{}, error)) {
	start := time.Now()
	logger := h.requestLogger(r)

	var key string
	if h.cache != nil {
		canonical, err := json.Marshal(req)
		if err != nil {
			logger.Warn("failed to encode cache key", zap.String("op", op), zap.Error(err))
		} else {
			key = CacheKey(endpoint, canonical)
		}
	}

	if key != "" {
		cached, found, err := h.cache.Get(r.Context(), key)
		if err != nil {
			logger.Warn("cache lookup failed", zap.String("op", op), zap.Error(err))
		} else if found {
			w.Header().Set(CacheHeader, "HIT")
			h.writeRaw(w, http.StatusOK, cached)
			logger.Info("request served",
				zap.String("op", op),
				zap.Bool("cached", true),
				zap.Duration("duration", time.Since(start)),
			)
			return
		}
	}

	response, err := compute()
	if err != nil {
		h.respondErrorWithOp(w, r, statusForError(err), err.Error(), op)
		return
	}

	body, err := json.Marshal(response)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to encode response: %v", err), op)
		return
	}

	if key != "" {
		if err := h.cache.Set(r.Context(), key, body); err != nil {
			logger.Warn("cache store failed", zap.String("op", op), zap.Error(err))
		}
		w.Header().Set(CacheHeader, "MISS")
	}

	h.writeRaw(w, http.StatusOK, body)
	logger.Info("request served",
		zap.String("op", op),
		zap.Bool("cached", false),
		zap.Duration("duration", time.Since(start)),
	)
}

func statusForError(err error) int {
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr):
		return reqErr.status
	case errors.Is(err, purchase.ErrUnknownRegion):
		return http.StatusNotFound
	case errors.Is(err, report.ErrNothingToReport), errors.Is(err, config.ErrMissingSection),
		errors.Is(err, validation.ErrTermOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func queryBool(value string) bool {
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	return err == nil && parsed
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	h.requestLogger(r).Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func (h *handler) writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		h.logger.Error("failed to write response", zap.Error(err))
		return
	}
	_, _ = io.WriteString(w, "\n")
}
