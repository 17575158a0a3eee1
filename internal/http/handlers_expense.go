package http

import (
	"net/http"
	"slices"

	"spendlog/internal/analytics"
	"spendlog/internal/core"
	applog "spendlog/internal/log"
)

type indexData struct {
	Date           string
	Time           string
	Categories     []core.Category
	PaymentModes   []core.PaymentMode
	Products       []string
	GameCurrencies []string
	CustomProduct  string
	SheetsEnabled  bool
}

type historyData struct {
	Filter  string
	Records []core.Record
	Total   core.Amount
	Count   int
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	now := s.today()
	categories := core.Categories()
	s.render(w, r, "index.html", indexData{
		Date:           now.Format(dateLayout),
		Time:           now.Format(timeLayout),
		Categories:     categories,
		PaymentModes:   core.PaymentModes(),
		Products:       core.SuggestedProducts(categories[0]),
		GameCurrencies: core.GameCurrencies(),
		CustomProduct:  core.CustomProduct,
		SheetsEnabled:  s.sheets != nil,
	})
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		applog.FromContext(r.Context()).WarnContext(r.Context(), "Parse form error", "error", err)
		BadRequestError("Invalid request format").Write(w)
		return
	}

	c, err := ParseCandidate(r.PostForm, s.loc, s.now())
	if err != nil {
		s.writeCreateError(w, r, err)
		return
	}

	rec, err := s.svc.RecordExpense(r.Context(), c)
	if err != nil {
		s.writeCreateError(w, r, err)
		return
	}
	applog.NewStructuredLogger(applog.FromContext(r.Context())).LogRecordAppended(r.Context(), rec)

	SuccessResponse(createdMessage(rec)).
		TriggerExpenseCreated(rec.ID).
		TriggerFormReset().
		Write(w)
}

func (s *Server) writeCreateError(w http.ResponseWriter, r *http.Request, err error) {
	if msg, ok := validationMessage(err); ok {
		applog.FromContext(r.Context()).InfoContext(r.Context(), "Expense rejected",
			applog.FieldError, err, applog.FieldOperation, applog.OpValidate)
		UnprocessableEntityError(msg).Write(w)
		return
	}
	applog.NewStructuredLogger(applog.FromContext(r.Context())).
		LogError(r.Context(), "Failed to record expense", err, applog.ComponentLedger, applog.OpAppend, applog.NewFields())
	InternalServerError("Could not save the expense").Write(w)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	filter := FilterParam(r.URL.Query())
	seq, err := s.svc.Ledger().Query(r.Context(), filter)
	if err != nil {
		slogError(r, "History query failed", err)
		InternalServerError("Could not load expenses").Write(w)
		return
	}
	records := slices.Collect(seq)

	s.render(w, r, "history.html", historyData{
		Filter:  filter,
		Records: records,
		Total:   analytics.TotalSpent(records),
		Count:   len(records),
	})
}

func slogError(r *http.Request, msg string, err error) {
	applog.FromContext(r.Context()).ErrorContext(r.Context(), msg, applog.FieldError, err, applog.FieldPath, r.URL.Path)
}
