package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/segyhp/propmgmt/internal/logging"
	"github.com/segyhp/propmgmt/internal/service"
	customError "github.com/segyhp/propmgmt/pkg/errors"
	"github.com/segyhp/propmgmt/pkg/response"
)

//go:embed templates/*.html
var templateFiles embed.FS

var viewerPages = []string{"home", "portfolio", "property", "unit", "tenant", "error"}

type viewerPage struct {
	Title       string
	Description string
	Data        interface{}
}

// ViewerHandler renders the balance reports as HTML pages under /report-viewer.
// Links are prefixed with basePath so the pages work behind a stage prefix.
type ViewerHandler struct {
	service  *service.ReportService
	basePath string
	pages    map[string]*template.Template
}

func NewViewerHandler(service *service.ReportService, basePath string) (*ViewerHandler, error) {
	basePath = strings.TrimRight(basePath, "/")

	funcs := template.FuncMap{
		"url": func(path string) string { return basePath + path },
		"link": func(kind string, id interface{}) string {
			return basePath + "/report-viewer/" + kind + "/" + formatID(id)
		},
		"money":        formatMoney,
		"balanceClass": balanceClass,
		"nullAmount":   nullAmount,
	}

	pages := make(map[string]*template.Template, len(viewerPages))
	for _, name := range viewerPages {
		page, err := template.New(name).Funcs(funcs).ParseFS(templateFiles, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		pages[name] = page
	}

	return &ViewerHandler{
		service:  service,
		basePath: basePath,
		pages:    pages,
	}, nil
}

func (h *ViewerHandler) Home(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.AllPropertiesBalanceReport(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "home", viewerPage{
		Title:       "Property Management Reports",
		Description: "View financial reports for properties, units, and tenants",
		Data:        report,
	})
}

func (h *ViewerHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.AllPropertiesBalanceReport(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "portfolio", viewerPage{
		Title:       "All Properties Balance Report",
		Description: "Balances across every property in the portfolio",
		Data:        report,
	})
}

func (h *ViewerHandler) Property(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	report, err := h.service.PropertyBalanceReport(r.Context(), id)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "property", viewerPage{
		Title:       "Property Balance Report: " + report.PropertyName,
		Description: fmt.Sprintf("Financial report for property ID %d", id),
		Data:        report,
	})
}

func (h *ViewerHandler) Unit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	report, err := h.service.UnitBalanceReport(r.Context(), id)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "unit", viewerPage{
		Title:       "Unit Balance Report: " + report.UnitName,
		Description: fmt.Sprintf("Financial report for unit ID %d", id),
		Data:        report,
	})
}

func (h *ViewerHandler) Tenant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	report, err := h.service.TenantBalanceReport(r.Context(), id)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "tenant", viewerPage{
		Title:       "Tenant Balance Report: " + report.TenantName,
		Description: fmt.Sprintf("Financial report for tenant ID %d", id),
		Data:        report,
	})
}

func (h *ViewerHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := response.StatusFor(err)
	message := customError.Message(err, "Internal server error")
	if status == http.StatusInternalServerError {
		logging.FromContext(r.Context()).Error("render report page", slog.Any(logging.FieldError, err))
		message = "Internal server error"
	}

	h.render(w, r, status, "error", viewerPage{
		Title:       http.StatusText(status),
		Description: fmt.Sprintf("The report could not be shown (%d)", status),
		Data:        message,
	})
}

func (h *ViewerHandler) render(w http.ResponseWriter, r *http.Request, status int, name string, page viewerPage) {
	var buf bytes.Buffer
	if err := h.pages[name].ExecuteTemplate(&buf, "layout", page); err != nil {
		logging.FromContext(r.Context()).Error("execute template", slog.String("template", name), slog.Any(logging.FieldError, err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// formatMoney renders an amount as dollars with thousands separators
func formatMoney(value interface{}) string {
	var amount decimal.Decimal
	switch v := value.(type) {
	case decimal.Decimal:
		amount = v
	case *decimal.Decimal:
		if v == nil {
			return "-"
		}
		amount = *v
	default:
		return fmt.Sprint(value)
	}

	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	fixed := amount.StringFixed(2)
	whole, cents := fixed[:len(fixed)-3], fixed[len(fixed)-2:]

	var grouped strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}
	return sign + "$" + grouped.String() + "." + cents
}

// balanceClass marks money owed and credits
func balanceClass(balance decimal.Decimal) string {
	switch {
	case balance.IsPositive():
		return "balance-owed"
	case balance.IsNegative():
		return "balance-credit"
	default:
		return ""
	}
}

func nullAmount(amount decimal.NullDecimal) decimal.Decimal {
	if !amount.Valid {
		return decimal.Zero
	}
	return amount.Decimal
}

func formatID(id interface{}) string {
	switch v := id.(type) {
	case *int64:
		if v == nil {
			return ""
		}
		return fmt.Sprint(*v)
	default:
		return fmt.Sprint(v)
	}
}
