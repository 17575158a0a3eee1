package http

import (
	"context"
	"fmt"
	"net/http"

	"spendlog/internal/analytics"
	"spendlog/internal/core"
	applog "spendlog/internal/log"
)

type barRow struct {
	Label   string
	Amount  core.Amount
	Percent float64 // of the largest bar, for widths
}

type dashboardData struct {
	Summary   analytics.Summary
	Monthly   []barRow
	GameItems []barRow
}

// summary returns the analytics for the current ledger. Entries are keyed by
// ledger length and calendar day: the ledger only grows, so a length names a
// single state, and the day moves the "today" metric.
func (s *Server) summary(ctx context.Context) (analytics.Summary, error) {
	snap, err := s.svc.Ledger().Snapshot(ctx)
	if err != nil {
		return analytics.Summary{}, err
	}
	today := s.today()
	key := fmt.Sprintf("%d|%s", snap.Len(), today.Format(dateLayout))

	if sum, ok := s.summaries.Get(key); ok {
		return sum, nil
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		sum := analytics.Summarize(snap.Records(), today)
		s.summaries.Set(key, sum)
		applog.FromContext(ctx).DebugContext(ctx, "Summary computed",
			applog.FieldCount, sum.Count, applog.FieldOperation, applog.OpSummary)
		return sum, nil
	})
	if err != nil {
		return analytics.Summary{}, err
	}
	return v.(analytics.Summary), nil
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sum, err := s.summary(r.Context())
	if err != nil {
		slogError(r, "Summary failed", err)
		InternalServerError("Could not load the dashboard").Write(w)
		return
	}
	s.render(w, r, "dashboard.html", newDashboardData(sum))
}

func newDashboardData(sum analytics.Summary) dashboardData {
	data := dashboardData{Summary: sum}

	monthly := make([]barRow, 0, len(sum.Monthly))
	for _, m := range sum.Monthly {
		monthly = append(monthly, barRow{Label: m.Month.Label(), Amount: m.Amount})
	}
	data.Monthly = scaleBars(monthly)

	games := make([]barRow, 0, len(sum.GameItems))
	for _, g := range sum.GameItems {
		games = append(games, barRow{Label: g.GameItem, Amount: g.Amount})
	}
	data.GameItems = scaleBars(games)
	return data
}

func scaleBars(rows []barRow) []barRow {
	var largest core.Amount
	for _, r := range rows {
		if r.Amount.Cmp(largest) > 0 {
			largest = r.Amount
		}
	}
	for i := range rows {
		rows[i].Percent = rows[i].Amount.Share(largest)
	}
	return rows
}
