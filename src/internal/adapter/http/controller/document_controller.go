package controller

import (
	"net/http"
	"strings"
	"time"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/models"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/usecase/service_interfaces"
	"github.com/go-chi/chi/v5"
)

type DocumentController struct {
	service service_interfaces.DocumentService
}

func NewDocumentController(service service_interfaces.DocumentService) *DocumentController {
	return &DocumentController{service: service}
}

func (c *DocumentController) RegisterRoutes(r chi.Router) {
	r.Route("/documents", func(r chi.Router) {
		r.Get("/receipts/{id}", c.receipt)
		r.Get("/contracts/{id}", c.contract)
		r.Get("/owner-settlements", c.ownerSettlement)
		r.Get("/account-statements/{clientDocument}", c.accountStatement)
	})
}

func (c *DocumentController) receipt(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, err := pathID(r, "id")
	if err != nil {
		badRequest[models.ReceiptDocument](w, r, start, "validation failed", err.Error())
		return
	}

	response, err := c.service.Receipt(r.Context(), id)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *DocumentController) contract(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, err := pathID(r, "id")
	if err != nil {
		badRequest[models.ContractDocument](w, r, start, "validation failed", err.Error())
		return
	}

	response, err := c.service.ContractDocument(r.Context(), id)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *DocumentController) ownerSettlement(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	subdivisionID, err := queryInt(r, "subdivisionId")
	if err != nil {
		badRequest[models.OwnerSettlementReport](w, r, start, "validation failed", err.Error())
		return
	}

	query := r.URL.Query()
	response, err := c.service.OwnerSettlement(r.Context(), models.OwnerSettlementRequest{
		SubdivisionID: subdivisionID,
		From:          query.Get("from"),
		To:            query.Get("to"),
	})
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *DocumentController) accountStatement(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	clientDocument := strings.TrimSpace(chi.URLParam(r, "clientDocument"))
	response, err := c.service.AccountStatement(r.Context(), clientDocument)
	respond(w, r, start, http.StatusOK, response, err)
}
