package payrollhandler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"nairapay/internal/domain/payroll"
	"nairapay/internal/ingestion"
	"nairapay/internal/transport/http/api"
	"nairapay/internal/transport/http/middleware"
)

type Handler struct {
	Service *payroll.Service
}

func NewHandler(service *payroll.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.Get("/template", h.handleTemplate)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)
			r.Post("/preview", h.handlePreview)
			r.Post("/runs", h.handleRunPayroll)
			r.Get("/runs", h.handleListRuns)
			r.Get("/runs/{runID}", h.handleRunReport)
			r.Post("/runs/{runID}/approve", h.handleApprove)
			r.Get("/runs/{runID}/export/register", h.handleExportRegister)
			r.Get("/runs/{runID}/export/results", h.handleExportResults)
			r.Get("/runs/{runID}/results/{resultID}/payslip", h.handleDownloadPayslip)
			r.Post("/runs/{runID}/results/{resultID}/email", h.handleEmailPayslip)
		})
	})
}

func (h *Handler) handleTemplate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="payroll_template.csv"`)
	_, _ = w.Write(ingestion.Template(time.Now().UTC()))
}

// handlePreview calculates an uploaded batch without persisting a run. The
// request body is the CSV itself.
func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	results, issues, err := h.Service.Preview(r.Body)
	if errors.Is(err, ingestion.ErrMissingColumns) {
		api.Fail(w, http.StatusBadRequest, "missing_columns", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "unable to read csv payload", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"results": results, "issues": issues}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRunPayroll(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	reference := r.URL.Query().Get("reference")
	if reference == "" {
		reference = "payroll-" + time.Now().UTC().Format("2006-01-02-150405")
	}

	report, err := h.Service.RunPayroll(r.Context(), reference, user.Email, r.Body)
	if errors.Is(err, ingestion.ErrMissingColumns) {
		api.Fail(w, http.StatusBadRequest, "missing_columns", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	if errors.Is(err, payroll.ErrEmptyBatch) {
		api.Fail(w, http.StatusUnprocessableEntity, "empty_batch", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_run_failed", "failed to run payroll", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, report, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.Service.ListRuns(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_runs_failed", "failed to list runs", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, runs, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRunReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.Service.Report(r.Context(), chi.URLParam(r, "runID"))
	if errors.Is(err, payroll.ErrRunNotFound) {
		api.Fail(w, http.StatusNotFound, "run_not_found", "payroll run not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_report_failed", "failed to load run", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, report, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	run, err := h.Service.Approve(r.Context(), chi.URLParam(r, "runID"))
	if errors.Is(err, payroll.ErrRunNotFound) {
		api.Fail(w, http.StatusNotFound, "run_not_found", "payroll run not found", middleware.GetRequestID(r.Context()))
		return
	}
	if errors.Is(err, payroll.ErrRunNotApprovable) {
		api.Fail(w, http.StatusConflict, "run_not_approvable", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_approve_failed", "failed to approve run", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, run, middleware.GetRequestID(r.Context()))
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request, filename string, render func([]payroll.ResultRecord) []byte) {
	report, err := h.Service.Report(r.Context(), chi.URLParam(r, "runID"))
	if errors.Is(err, payroll.ErrRunNotFound) {
		api.Fail(w, http.StatusNotFound, "run_not_found", "payroll run not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_export_failed", "failed to export run", middleware.GetRequestID(r.Context()))
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(render(report.Results))
}

func (h *Handler) handleExportRegister(w http.ResponseWriter, r *http.Request) {
	h.exportCSV(w, r, "payment_register.csv", payroll.RegisterCSV)
}

func (h *Handler) handleExportResults(w http.ResponseWriter, r *http.Request) {
	h.exportCSV(w, r, "payroll_results.csv", payroll.ResultsCSV)
}

func (h *Handler) handleDownloadPayslip(w http.ResponseWriter, r *http.Request) {
	filename, content, err := h.Service.GeneratePayslip(r.Context(), chi.URLParam(r, "runID"), chi.URLParam(r, "resultID"))
	if errors.Is(err, payroll.ErrResultNotFound) {
		api.Fail(w, http.StatusNotFound, "result_not_found", "payroll result not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payslip_failed", "failed to generate payslip", middleware.GetRequestID(r.Context()))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(content)
}

func (h *Handler) handleEmailPayslip(w http.ResponseWriter, r *http.Request) {
	err := h.Service.EmailPayslip(r.Context(), chi.URLParam(r, "runID"), chi.URLParam(r, "resultID"))
	if errors.Is(err, payroll.ErrResultNotFound) {
		api.Fail(w, http.StatusNotFound, "result_not_found", "payroll result not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payslip_email_failed", "failed to email payslip", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "sent"}, middleware.GetRequestID(r.Context()))
}
