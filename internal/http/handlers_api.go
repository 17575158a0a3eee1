package http

import (
	"net/http"
	"time"

	"spendlog/internal/analytics"
	"spendlog/internal/core"
	applog "spendlog/internal/log"
)

type apiRecord struct {
	ID          int         `json:"id"`
	DateTime    time.Time   `json:"datetime"`
	Category    string      `json:"category"`
	Product     string      `json:"product"`
	GameItem    string      `json:"game_item,omitempty"`
	PaymentMode string      `json:"payment_mode"`
	Amount      core.Amount `json:"amount"`
	Description string      `json:"description"`
}

type apiExpenses struct {
	Filter  string      `json:"filter,omitempty"`
	Count   int         `json:"count"`
	Total   core.Amount `json:"total"`
	Records []apiRecord `json:"records"`
}

type apiSummary struct {
	Count           int                `json:"count"`
	Total           core.Amount        `json:"total"`
	Today           core.Amount        `json:"today"`
	Gaming          core.Amount        `json:"gaming"`
	AveragePerMonth core.Amount        `json:"average_per_month"`
	Monthly         []apiSeriesPoint   `json:"monthly"`
	Categories      []apiCategoryShare `json:"categories"`
	GameItems       []apiSeriesPoint   `json:"game_items,omitempty"`
}

type apiSeriesPoint struct {
	Label  string      `json:"label"`
	Amount core.Amount `json:"amount"`
}

type apiCategoryShare struct {
	Category string      `json:"category"`
	Amount   core.Amount `json:"amount"`
	Share    float64     `json:"share"`
}

type apiCatalog struct {
	Categories        []core.Category     `json:"categories"`
	PaymentModes      []core.PaymentMode  `json:"payment_modes"`
	SuggestedProducts map[string][]string `json:"suggested_products"`
	GameCurrencies    []string            `json:"game_currencies"`
	CustomProduct     string              `json:"custom_product"`
}

type apiMetrics struct {
	Requests           int64   `json:"requests"`
	AvgResponseMs      float64 `json:"avg_response_ms"`
	RateLimited        int64   `json:"rate_limited"`
	RateLimitClients   int64   `json:"rate_limit_clients"`
	SuspiciousRequests int64   `json:"suspicious_requests"`
}

func toAPIRecord(r core.Record) apiRecord {
	return apiRecord{
		ID:          r.ID,
		DateTime:    r.Timestamp,
		Category:    string(r.Category),
		Product:     r.Product,
		GameItem:    r.GameItem,
		PaymentMode: string(r.PaymentMode),
		Amount:      r.Amount,
		Description: r.Description,
	}
}

func toAPISummary(s analytics.Summary) apiSummary {
	out := apiSummary{
		Count:           s.Count,
		Total:           s.Total,
		Today:           s.Today,
		Gaming:          s.Gaming,
		AveragePerMonth: s.AveragePerMonth,
		Monthly:         make([]apiSeriesPoint, 0, len(s.Monthly)),
		Categories:      make([]apiCategoryShare, 0, len(s.Categories)),
	}
	for _, m := range s.Monthly {
		out.Monthly = append(out.Monthly, apiSeriesPoint{Label: m.Month.String(), Amount: m.Amount})
	}
	for _, c := range s.Categories {
		out.Categories = append(out.Categories, apiCategoryShare{Category: string(c.Category), Amount: c.Amount, Share: c.Share})
	}
	for _, g := range s.GameItems {
		out.GameItems = append(out.GameItems, apiSeriesPoint{Label: g.GameItem, Amount: g.Amount})
	}
	return out
}

func (s *Server) handleAPIListExpenses(w http.ResponseWriter, r *http.Request) {
	filter := FilterParam(r.URL.Query())
	seq, err := s.svc.Ledger().Query(r.Context(), filter)
	if err != nil {
		slogError(r, "Query failed", err)
		writeJSONError(w, r, http.StatusInternalServerError, "query failed")
		return
	}

	out := apiExpenses{Filter: filter, Records: []apiRecord{}}
	var total core.Amount
	for rec := range seq {
		out.Records = append(out.Records, toAPIRecord(rec))
		total = total.Add(rec.Amount)
	}
	out.Count = len(out.Records)
	out.Total = total
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleAPICreateExpense(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		writeJSONError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := ParseCandidate(p, s.loc, s.now())
	if err == nil {
		var rec core.Record
		rec, err = s.svc.RecordExpense(r.Context(), c)
		if err == nil {
			applog.NewStructuredLogger(applog.FromContext(r.Context())).LogRecordAppended(r.Context(), rec)
			writeJSON(w, r, http.StatusCreated, toAPIRecord(rec))
			return
		}
	}

	if msg, ok := validationMessage(err); ok {
		writeJSONError(w, r, http.StatusUnprocessableEntity, msg)
		return
	}
	slogError(r, "Failed to record expense", err)
	writeJSONError(w, r, http.StatusInternalServerError, "could not save the expense")
}

func (s *Server) handleAPISummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.summary(r.Context())
	if err != nil {
		slogError(r, "Summary failed", err)
		writeJSONError(w, r, http.StatusInternalServerError, "summary failed")
		return
	}
	writeJSON(w, r, http.StatusOK, toAPISummary(sum))
}

func (s *Server) handleAPICatalog(w http.ResponseWriter, r *http.Request) {
	cats := core.Categories()
	suggested := make(map[string][]string, len(cats))
	for _, c := range cats {
		suggested[string(c)] = core.SuggestedProducts(c)
	}
	writeJSON(w, r, http.StatusOK, apiCatalog{
		Categories:        cats,
		PaymentModes:      core.PaymentModes(),
		SuggestedProducts: suggested,
		GameCurrencies:    core.GameCurrencies(),
		CustomProduct:     core.CustomProduct,
	})
}

func (s *Server) handleAPIMetrics(w http.ResponseWriter, r *http.Request) {
	traced := s.tracer.GetMetrics()
	limited := s.limiter.GetMetrics()
	writeJSON(w, r, http.StatusOK, apiMetrics{
		Requests:           traced.TotalRequests,
		AvgResponseMs:      float64(traced.AverageResponseTime().Microseconds()) / 1000,
		RateLimited:        limited.TotalHits,
		RateLimitClients:   limited.ClientCount,
		SuspiciousRequests: s.detector.GetMetrics().SuspiciousRequests,
	})
}
