package handler

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/segyhp/propmgmt/internal/domain"
	"github.com/segyhp/propmgmt/internal/export"
	"github.com/segyhp/propmgmt/internal/logging"
	"github.com/segyhp/propmgmt/internal/service"
	customError "github.com/segyhp/propmgmt/pkg/errors"
	"github.com/segyhp/propmgmt/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves the balance reports as JSON and as downloads
type ReportHandler struct {
	service *service.ReportService
}

func NewReportHandler(service *service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// BalanceReport handles GET /reports/balance. unit_id selects the unit report,
// property_id the property report, neither the portfolio report.
func (h *ReportHandler) BalanceReport(w http.ResponseWriter, r *http.Request) {
	propertyID, err := queryID(r, "property_id")
	if err != nil {
		response.FromError(w, err)
		return
	}
	unitID, err := queryID(r, "unit_id")
	if err != nil {
		response.FromError(w, err)
		return
	}

	report, err := h.service.BalanceReport(r.Context(), domain.BalanceQuery{
		PropertyID: propertyID,
		UnitID:     unitID,
	})
	writeItem(w, report, err)
}

func (h *ReportHandler) TenantBalance(w http.ResponseWriter, r *http.Request) {
	getByID(w, r, h.service.TenantBalanceReport)
}

func (h *ReportHandler) UnitBalance(w http.ResponseWriter, r *http.Request) {
	getByID(w, r, h.service.UnitBalanceReport)
}

func (h *ReportHandler) PropertyBalance(w http.ResponseWriter, r *http.Request) {
	getByID(w, r, h.service.PropertyBalanceReport)
}

func (h *ReportHandler) PropertySummary(w http.ResponseWriter, r *http.Request) {
	getByID(w, r, h.service.PropertyFinancialSummary)
}

// Export handles GET /reports/balance/export?format=csv|xlsx
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = export.FormatCSV
	}

	var contentType string
	var write func(io.Writer, *export.Ledger) error
	switch format {
	case export.FormatCSV:
		contentType = "text/csv; charset=utf-8"
		write = export.WriteCSV
	case export.FormatXLSX:
		contentType = xlsxContentType
		write = export.WriteXLSX
	default:
		response.FromError(w, customError.WrapValidation("format must be csv or xlsx"))
		return
	}

	ledger, err := export.BuildLedger(r.Context(), h.service)
	if err != nil {
		response.FromError(w, err)
		return
	}

	// render fully before headers go out so failures still get an error body
	var buf bytes.Buffer
	if err := write(&buf, ledger); err != nil {
		logging.FromContext(r.Context()).Error("render balance export", slog.String("format", format), slog.Any(logging.FieldError, err))
		response.FromError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+ledger.Filename(format)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
