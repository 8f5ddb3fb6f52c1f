package employeehandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"nairapay/internal/domain/employees"
	"nairapay/internal/domain/salary"
	"nairapay/internal/transport/http/api"
	"nairapay/internal/transport/http/middleware"
	"nairapay/internal/transport/http/shared"
)

type Handler struct {
	Store *employees.Store
}

func NewHandler(store *employees.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{employeeID}", h.handleGet)
		r.Put("/{employeeID}", h.handleUpdate)
		r.Delete("/{employeeID}", h.handleDelete)
	})
}

type employeePayload struct {
	StaffID          string  `json:"staffId"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	Department       string  `json:"department"`
	JobTitle         string  `json:"jobTitle"`
	AccountNumber    string  `json:"accountNumber"`
	AnnualGrossPay   float64 `json:"annualGrossPay"`
	ContractType     string  `json:"contractType"`
	StartDate        string  `json:"startDate"`
	EndDate          string  `json:"endDate"`
	Reimbursements   float64 `json:"reimbursements"`
	OtherDeductions  float64 `json:"otherDeductions"`
	VoluntaryPension float64 `json:"voluntaryPension"`
}

func (h *Handler) recordFromPayload(w http.ResponseWriter, r *http.Request) (employees.Record, bool) {
	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return employees.Record{}, false
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.Required("email", payload.Email, "email is required")
	if payload.AnnualGrossPay <= 0 {
		v.Add("annualGrossPay", "must be greater than zero")
	}
	v.Positive("reimbursements", payload.Reimbursements, "must not be negative")
	v.Positive("otherDeductions", payload.OtherDeductions, "must not be negative")
	v.Positive("voluntaryPension", payload.VoluntaryPension, "must not be negative")
	contractType, err := salary.ParseContractType(payload.ContractType)
	if err != nil {
		v.Add("contractType", "must be Full Time or Contract")
	}
	start, _ := v.Date("startDate", payload.StartDate)
	end, _ := v.Date("endDate", payload.EndDate)
	v.DateOrder("startDate", start, "endDate", end)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return employees.Record{}, false
	}

	return employees.Record{
		StaffID:          payload.StaffID,
		Name:             payload.Name,
		Email:            payload.Email,
		Department:       payload.Department,
		JobTitle:         payload.JobTitle,
		AccountNumber:    payload.AccountNumber,
		AnnualGrossPay:   payload.AnnualGrossPay,
		ContractType:     string(contractType),
		StartDate:        start,
		EndDate:          end,
		Reimbursements:   payload.Reimbursements,
		OtherDeductions:  payload.OtherDeductions,
		VoluntaryPension: payload.VoluntaryPension,
	}, true
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employees_list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	record, err := h.Store.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if errors.Is(err, employees.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_get_failed", "failed to load employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	record, ok := h.recordFromPayload(w, r)
	if !ok {
		return
	}

	created, err := h.Store.Create(r.Context(), record)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	record, ok := h.recordFromPayload(w, r)
	if !ok {
		return
	}

	err := h.Store.Update(r.Context(), chi.URLParam(r, "employeeID"), record)
	if errors.Is(err, employees.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_update_failed", "failed to update employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "updated"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.Store.Delete(r.Context(), chi.URLParam(r, "employeeID"))
	if errors.Is(err, employees.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_delete_failed", "failed to delete employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}
