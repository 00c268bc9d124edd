package handler

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/segyhp/propmgmt/internal/domain"
	"github.com/segyhp/propmgmt/internal/service"
	"github.com/segyhp/propmgmt/pkg/response"
)

// ManagementHandler exposes CRUD endpoints for the portfolio entities
type ManagementHandler struct {
	service   *service.ManagementService
	validator *validator.Validate
}

func NewManagementHandler(service *service.ManagementService) *ManagementHandler {
	return &ManagementHandler{
		service:   service,
		validator: newValidator(),
	}
}

func writeList[T any](w http.ResponseWriter, items []T, err error) {
	if err != nil {
		response.FromError(w, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	response.Success(w, items)
}

func writeItem[T any](w http.ResponseWriter, item T, err error) {
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, item)
}

// listBy serves GET collections nested under a parent id
func listBy[T any](w http.ResponseWriter, r *http.Request, param string, fn func(context.Context, int64) ([]T, error)) {
	id, err := pathID(r, param)
	if err != nil {
		response.FromError(w, err)
		return
	}
	items, err := fn(r.Context(), id)
	writeList(w, items, err)
}

func getByID[T any](w http.ResponseWriter, r *http.Request, fn func(context.Context, int64) (T, error)) {
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return
	}
	item, err := fn(r.Context(), id)
	writeItem(w, item, err)
}

func create[Req any, T any](h *ManagementHandler, w http.ResponseWriter, r *http.Request, fn func(context.Context, *Req) (T, error)) {
	var request Req
	if err := decodeJSON(w, r, h.validator, &request); err != nil {
		response.FromError(w, err)
		return
	}

	item, err := fn(r.Context(), &request)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, item)
}

func update[Req any, T any](h *ManagementHandler, w http.ResponseWriter, r *http.Request, fn func(context.Context, int64, *Req) (T, error)) {
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return
	}

	var request Req
	if err := decodeJSON(w, r, h.validator, &request); err != nil {
		response.FromError(w, err)
		return
	}

	item, err := fn(r.Context(), id, &request)
	writeItem(w, item, err)
}

func remove(w http.ResponseWriter, r *http.Request, fn func(context.Context, int64) error) {
	id, err := pathID(r, "id")
	if err != nil {
		response.FromError(w, err)
		return
	}
	if err := fn(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}
	response.NoContent(w)
}

// Properties

func (h *ManagementHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListProperties(r.Context())
	writeList(w, items, err)
}

func (h *ManagementHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	getByID(w, r, h.service.GetProperty)
}

func (h *ManagementHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	create[domain.PropertyRequest](h, w, r, h.service.CreateProperty)
}

func (h *ManagementHandler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	update[domain.PropertyRequest](h, w, r, h.service.UpdateProperty)
}

func (h *ManagementHandler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	remove(w, r, h.service.DeleteProperty)
}

func (h *ManagementHandler) ListPropertyUnits(w http.ResponseWriter, r *http.Request) {
	listBy(w, r, "id", h.service.ListUnitsByProperty)
}

func (h *ManagementHandler) ListPropertyLeases(w http.ResponseWriter, r *http.Request) {
	listBy(w, r, "id", h.service.ListLeasesByProperty)
}

// Units

func (h *ManagementHandler) ListUnits(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListUnits(r.Context())
	writeList(w, items, err)
}

func (h *ManagementHandler) GetUnit(w http.ResponseWriter, r *http.Request) {
	getByID(w, r, h.service.GetUnit)
}

func (h *ManagementHandler) CreateUnit(w http.ResponseWriter, r *http.Request) {
	create[domain.UnitRequest](h, w, r, h.service.CreateUnit)
}

func (h *ManagementHandler) UpdateUnit(w http.ResponseWriter, r *http.Request) {
	update[domain.UnitRequest](h, w, r, h.service.UpdateUnit)
}

func (h *ManagementHandler) DeleteUnit(w http.ResponseWriter, r *http.Request) {
	remove(w, r, h.service.DeleteUnit)
}

func (h *ManagementHandler) ListUnitTenants(w http.ResponseWriter, r *http.Request) {
	listBy(w, r, "id", h.service.ListTenantsByUnit)
}

func (h *ManagementHandler) ListUnitLeases(w http.ResponseWriter, r *http.Request) {
	listBy(w, r, "id", h.service.ListLeasesByUnit)
}

// Tenants

func (h *ManagementHandler) ListTenants(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListTenants(r.Context())
	writeList(w, items, err)
}

func (h *ManagementHandler) GetTenant(w http.ResponseWriter, r *http.Request) {
	getByID(w, r, h.service.GetTenant)
}

func (h *ManagementHandler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	create[domain.TenantRequest](h, w, r, h.service.CreateTenant)
}

func (h *ManagementHandler) UpdateTenant(w http.ResponseWriter, r *http.Request) {
	update[domain.TenantRequest](h, w, r, h.service.UpdateTenant)
}

func (h *ManagementHandler) DeleteTenant(w http.ResponseWriter, r *http.Request) {
	remove(w, r, h.service.DeleteTenant)
}

func (h *ManagementHandler) ListTenantLeases(w http.ResponseWriter, r *http.Request) {
	listBy(w, r, "id", h.service.ListLeasesByTenant)
}

func (h *ManagementHandler) ListTenantPayments(w http.ResponseWriter, r *http.Request) {
	listBy(w, r, "id", h.service.ListPaymentsByTenant)
}

// Leases

func (h *ManagementHandler) ListLeases(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListLeases(r.Context())
	writeList(w, items, err)
}

func (h *ManagementHandler) GetLease(w http.ResponseWriter, r *http.Request) {
	getByID(w, r, h.service.GetLease)
}

func (h *ManagementHandler) CreateLease(w http.ResponseWriter, r *http.Request) {
	create[domain.LeaseRequest](h, w, r, h.service.CreateLease)
}

func (h *ManagementHandler) UpdateLease(w http.ResponseWriter, r *http.Request) {
	update[domain.LeaseRequest](h, w, r, h.service.UpdateLease)
}

func (h *ManagementHandler) DeleteLease(w http.ResponseWriter, r *http.Request) {
	remove(w, r, h.service.DeleteLease)
}

func (h *ManagementHandler) ListLeasePayments(w http.ResponseWriter, r *http.Request) {
	listBy(w, r, "id", h.service.ListPaymentsByLease)
}

// Payments

func (h *ManagementHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListPayments(r.Context())
	writeList(w, items, err)
}

func (h *ManagementHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	getByID(w, r, h.service.GetPayment)
}

func (h *ManagementHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	create[domain.PaymentRequest](h, w, r, h.service.CreatePayment)
}

func (h *ManagementHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	update[domain.PaymentRequest](h, w, r, h.service.UpdatePayment)
}

func (h *ManagementHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	remove(w, r, h.service.DeletePayment)
}
