package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/VBWEBcorp/Gestion-clients-vbweb/internal/core"
	"github.com/VBWEBcorp/Gestion-clients-vbweb/internal/storage"
)

// recordView is a record prepared for rendering: amounts and dates are
// pre-formatted strings so the templates stay logic-free.
type recordView struct {
	ID           int64
	Leader       string
	Company      string
	Email        string
	Service      string
	AmountHT     string
	AmountHTForm string
	Frequency    string
	Status       string
	StartISO     string
	EndISO       string
	StartDisplay string
	EndDisplay   string
}

type indexData struct {
	TotalHT       string
	TotalTTC      string
	TotalAfterTax string
	VATRate       string
	TaxRate       string
	Current       []recordView
	Archived      []recordView
	Edit          *recordView
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	overview, err := s.service.Overview(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Overview error", "error", err)
		http.Error(w, "erreur de lecture", http.StatusInternalServerError)
		return
	}

	data := indexData{
		TotalHT:       formatEuro(overview.Summary.TotalHT),
		TotalTTC:      formatEuro(overview.Summary.TotalTTC),
		TotalAfterTax: formatEuro(overview.Summary.TotalAfterTax),
		VATRate:       overview.Settings.VATRate.String(),
		TaxRate:       overview.Settings.TaxRate.String(),
	}
	for _, rec := range overview.Current {
		data.Current = append(data.Current, newRecordView(rec))
	}
	for _, rec := range overview.Archived {
		data.Archived = append(data.Archived, newRecordView(rec))
	}

	// ?edit=<id> prefills the form with an existing record.
	if v := strings.TrimSpace(r.URL.Query().Get("edit")); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			if rec, err := s.service.GetRecord(r.Context(), id); err == nil {
				view := newRecordView(rec)
				data.Edit = &view
			}
		}
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	in, ok := recordInputFromForm(w, r)
	if !ok {
		return
	}

	if err := s.service.CreateRecord(r.Context(), in); err != nil {
		slog.ErrorContext(r.Context(), "Create record failed", "error", err, "company", in.Company)
		http.Error(w, "erreur d'enregistrement", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	id, ok := formID(w, r)
	if !ok {
		return
	}
	in, ok := recordInputFromForm(w, r)
	if !ok {
		return
	}

	err := s.service.UpdateRecord(r.Context(), id, in)
	if errors.Is(err, storage.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Update record failed", "error", err, "id", id)
		http.Error(w, "erreur d'enregistrement", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	id, ok := formID(w, r)
	if !ok {
		return
	}

	err := s.service.DeleteRecord(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Delete record failed", "error", err, "id", id)
		http.Error(w, "erreur de suppression", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	err := s.service.UpdateSettings(r.Context(), r.Form.Get("vatRate"), r.Form.Get("taxRate"))
	if err != nil {
		slog.ErrorContext(r.Context(), "Update settings failed", "error", err)
		http.Error(w, "erreur d'enregistrement", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func formID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimSpace(r.Form.Get("id")), 10, 64)
	if err != nil || id <= 0 {
		w.WriteHeader(http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func recordInputFromForm(w http.ResponseWriter, r *http.Request) (core.RecordInput, bool) {
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		return core.RecordInput{}, false
	}
	return core.RecordInput{
		Leader:    r.Form.Get("leader"),
		Company:   r.Form.Get("company"),
		Email:     r.Form.Get("email"),
		Service:   r.Form.Get("service"),
		AmountHT:  r.Form.Get("amountHt"),
		Frequency: r.Form.Get("frequency"),
		Status:    r.Form.Get("status"),
		StartDate: r.Form.Get("startDate"),
		EndDate:   r.Form.Get("endDate"),
	}, true
}

func newRecordView(rec core.Record) recordView {
	return recordView{
		ID:           rec.ID,
		Leader:       rec.Leader,
		Company:      rec.Company,
		Email:        rec.Email,
		Service:      rec.Service,
		AmountHT:     formatEuro(rec.AmountHT),
		AmountHTForm: rec.AmountHT.String(),
		Frequency:    string(rec.Frequency),
		Status:       string(rec.Status),
		StartISO:     rec.StartDate.ISO(),
		EndISO:       rec.EndDate.ISO(),
		StartDisplay: formatDate(rec.StartDate),
		EndDisplay:   formatDate(rec.EndDate),
	}
}

// formatEuro renders an exact decimal in the French convention, rounding to
// two digits only here at the presentation edge.
func formatEuro(d decimal.Decimal) string {
	return strings.ReplaceAll(d.StringFixed(2), ".", ",") + " €"
}

func formatDate(d core.Date) string {
	if d.IsEmpty() {
		return "—"
	}
	return d.Format("02/01/2006")
}
