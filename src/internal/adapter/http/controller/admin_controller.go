package controller

import (
	"net/http"
	"time"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/models"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/usecase/service_interfaces"
	"github.com/go-chi/chi/v5"
)

// AdminController exposes system parameters and the audit trail.
type AdminController struct {
	params service_interfaces.ParameterService
	audit  service_interfaces.AuditService
}

func NewAdminController(params service_interfaces.ParameterService, audit service_interfaces.AuditService) *AdminController {
	return &AdminController{params: params, audit: audit}
}

func (c *AdminController) RegisterRoutes(r chi.Router) {
	r.Get("/parameters", c.listParameters)
	r.Put("/parameters/{key}", c.setParameter)
	r.Get("/audit-logs", c.listAudit)
}

func (c *AdminController) listParameters(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.params.ListParameters(r.Context())
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *AdminController) setParameter(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.SetParameterRequest
	if err := decodeBody(r, &req); err != nil {
		logError(r, err, nil)
		badRequest[models.ParameterResponse](w, r, start, "invalid request body", err.Error())
		return
	}
	req.Key = chi.URLParam(r, "key")
	logRequest(r, req)

	response, err := c.params.SetParameter(r.Context(), req)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *AdminController) listAudit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	limit, err := queryInt(r, "limit")
	if err != nil {
		badRequest[[]models.AuditEntryResponse](w, r, start, "validation failed", err.Error())
		return
	}

	response, err := c.audit.ListAudit(r.Context(), int(limit))
	respond(w, r, start, http.StatusOK, response, err)
}
