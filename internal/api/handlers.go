package api

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/raulgutierrezyuno/ZenithPay/internal/analytics"
	"github.com/raulgutierrezyuno/ZenithPay/internal/ingestion"
	"github.com/raulgutierrezyuno/ZenithPay/internal/repository"
)

// Handlers groups all HTTP handler methods and their dependencies.
type Handlers struct {
	txnRepo      *repository.TransactionRepo
	ingestionSvc *ingestion.Service
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[api] encode error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, err = time.Parse("2006-01-02", s)
		if err != nil {
			return nil
		}
	}
	return &t
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return def
	}
	return v
}

// parseFilter maps query parameters to a repository filter. Filtering is
// applied in SQL; the analytics pipeline only ever sees the filtered set.
func parseFilter(q url.Values) repository.TransactionFilter {
	return repository.TransactionFilter{
		Country:       q.Get("country"),
		PaymentMethod: q.Get("payment_method"),
		Processor:     q.Get("processor"),
		Status:        q.Get("status"),
		From:          parseTime(q.Get("from")),
		To:            parseTime(q.Get("to")),
		Page:          parseIntDefault(q.Get("page"), 1),
		Limit:         parseIntDefault(q.Get("limit"), 50),
	}
}

// --- GetMetrics ---

func (h *Handlers) GetMetrics(w http.ResponseWriter, r *http.Request) {
	records, err := h.txnRepo.GetFiltered(parseFilter(r.URL.Query()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, analytics.ComputeAll(records))
}

// --- GetInsights ---

func (h *Handlers) GetInsights(w http.ResponseWriter, r *http.Request) {
	records, err := h.txnRepo.GetFiltered(parseFilter(r.URL.Query()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result := analytics.Run(records)
	writeJSON(w, http.StatusOK, map[string]any{
		"insights":        result.Insights,
		"recommendations": result.Recommendations,
	})
}

// --- ListTransactions ---

func (h *Handlers) ListTransactions(w http.ResponseWriter, r *http.Request) {
	filter := parseFilter(r.URL.Query())

	txns, total, err := h.txnRepo.List(filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	totalPages := total / filter.Limit
	if total%filter.Limit != 0 {
		totalPages++
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":        txns,
		"total":       total,
		"page":        filter.Page,
		"limit":       filter.Limit,
		"total_pages": totalPages,
	})
}

// --- ImportFeed ---

func (h *Handlers) ImportFeed(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	format := r.FormValue("format")
	if format == "" {
		writeError(w, http.StatusBadRequest, "format is required")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required: "+err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "read file: "+err.Error())
		return
	}

	result, err := h.ingestionSvc.ImportFeed(data, format)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}
