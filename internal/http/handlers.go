package http

import (
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tally/internal/core"
	"tally/internal/export"
	"tally/internal/log"
	"tally/internal/query"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		s.logger.ErrorContext(r.Context(), "Templates not loaded", log.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	data := struct {
		Today      string
		Year       int
		Month      int
		Categories []string
	}{
		Today:      now.Format("2006-01-02"),
		Year:       now.Year(),
		Month:      int(now.Month()),
		Categories: query.Categories(s.ledger.Transactions()),
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger.ErrorContext(r.Context(), "Index template execution failed", log.FieldError, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.logger.ErrorContext(r.Context(), "Parse form error", log.FieldError, err)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Malformed request</div>`))
		return
	}

	cents, err := core.ParseAmountCents(r.Form.Get("amount"))
	if err != nil || cents < 0 {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid amount</div>`))
		return
	}

	date, err := core.ParseDate(r.Form.Get("date"))
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid date</div>`))
		return
	}

	draft := core.Draft{
		Amount:   core.Money{Cents: cents},
		Kind:     core.Kind(strings.ToLower(strings.TrimSpace(r.Form.Get("type")))),
		Category: sanitizeInput(r.Form.Get("category")),
		Date:     date,
		Note:     sanitizeInput(r.Form.Get("note")),
	}
	if err := draft.Validate(); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid input: ` + template.HTMLEscapeString(err.Error()) + `</div>`))
		return
	}

	tx := s.ledger.Add(r.Context(), draft)

	w.Header().Set("HX-Trigger", ledgerChangedTrigger(tx.Date.Year(), tx.Date.Month()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Recorded #` + strconv.FormatInt(tx.ID, 10) + `: ` +
		template.HTMLEscapeString(tx.Category) +
		` ` + template.HTMLEscapeString(tx.Amount.Decimal()) +
		` (` + template.HTMLEscapeString(string(tx.Kind)) + `)</div>`))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	id, err := strconv.ParseInt(strings.TrimSpace(r.Form.Get("id")), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid id</div>`))
		return
	}

	// Deleting an id that no longer exists is a no-op, not an error.
	removed := s.ledger.Remove(r.Context(), id)
	if !removed {
		s.logger.InfoContext(r.Context(), "Delete of missing transaction ignored",
			log.FieldTransactionID, id)
	}

	now := time.Now()
	w.Header().Set("HX-Trigger", ledgerChangedTrigger(now.Year(), int(now.Month())))
	w.WriteHeader(http.StatusOK)
}

// handleMonthView renders the filtered list and totals partial.
func (s *Server) handleMonthView(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	year, month := parseYearMonth(r)
	kind := parseKindFilter(r.URL.Query().Get("type"))

	all := s.ledger.Transactions()
	categories := query.Categories(all)
	// A selected category that vanished from the store falls back to "all".
	category := query.SelectCategory(categories, r.URL.Query().Get("category"))

	filtered := query.Apply(all, query.Filter{Year: year, Month: month, Kind: kind, Category: category})
	totals := query.Sum(filtered)

	prevYear, prevMonth := shiftMonth(year, month, -1)
	nextYear, nextMonth := shiftMonth(year, month, +1)

	type item struct {
		ID       int64
		Date     string
		Kind     string
		Category string
		Note     string
		Amount   string
		Expense  bool
	}
	data := struct {
		Year, Month          int
		MonthLabel           string
		PrevYear, PrevMonth  int
		NextYear, NextMonth  int
		Kind                 string
		Categories           []string
		Category             string
		Items                []item
		TotalIncome          string
		TotalExpenses        string
		Balance              string
		BalanceNegative      bool
		PersistenceDegraded  bool
	}{
		Year:                year,
		Month:               month,
		MonthLabel:          monthLabel(year, month),
		PrevYear:            prevYear,
		PrevMonth:           prevMonth,
		NextYear:            nextYear,
		NextMonth:           nextMonth,
		Kind:                string(kind),
		Categories:          categories,
		Category:            category,
		TotalIncome:         totals.Income.Decimal(),
		TotalExpenses:       totals.Expenses.Decimal(),
		Balance:             totals.Balance.Decimal(),
		BalanceNegative:     totals.Balance.Cents < 0,
		PersistenceDegraded: !s.ledger.LastFlush().OK(),
	}
	for _, tx := range filtered {
		data.Items = append(data.Items, item{
			ID:       tx.ID,
			Date:     tx.Date.String(),
			Kind:     string(tx.Kind),
			Category: tx.Category,
			Note:     tx.Note,
			Amount:   tx.Amount.Decimal(),
			Expense:  tx.Kind == core.Expense,
		})
	}

	if s.templates == nil {
		_, _ = w.Write([]byte(`<section id="month-view"><div class="placeholder">Balance: ` +
			template.HTMLEscapeString(data.Balance) + `</div></section>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, "month_view.html", data); err != nil {
		s.logger.ErrorContext(r.Context(), "Month view template error",
			log.FieldError, err, log.FieldYear, year, log.FieldMonth, month)
		_, _ = w.Write([]byte(`<section id="month-view"><div class="placeholder">Error rendering month view</div></section>`))
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	format, err := export.ParseFormat(defaultString(r.URL.Query().Get("format"), "csv"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	body, err := export.Encode(format, s.ledger.Transactions())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Export failed",
			log.FieldOperation, log.OpExport, log.FieldError, err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	filename := "tally_" + time.Now().Format("20060102") + "." + string(format)
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(body)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseMultipartForm(2 << 20); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Malformed upload</div>`))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Missing file</div>`))
		return
	}
	defer file.Close()

	name := r.FormValue("format")
	if name == "" {
		name = strings.TrimPrefix(strings.ToLower(filenameExt(header.Filename)), ".")
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(err.Error()) + `</div>`))
		return
	}

	body, err := io.ReadAll(io.LimitReader(file, 2<<20))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	drafts, err := export.Decode(format, body)
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Unparseable file</div>`))
		return
	}

	added := 0
	for _, draft := range drafts {
		if err := draft.Validate(); err != nil {
			continue
		}
		s.ledger.Add(r.Context(), draft)
		added++
	}
	s.logger.InfoContext(r.Context(), "Import completed",
		log.FieldOperation, log.OpImport, log.FieldCount, added)

	now := time.Now()
	w.Header().Set("HX-Trigger", ledgerChangedTrigger(now.Year(), int(now.Month())))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(fmt.Sprintf(`<div class="success">Imported %d transactions</div>`, added)))
}
