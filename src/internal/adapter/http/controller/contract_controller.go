package controller

import (
	"net/http"
	"time"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/middleware"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/models"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/usecase/service_interfaces"
	"github.com/go-chi/chi/v5"
)

type ContractController struct {
	schedule    service_interfaces.ScheduleService
	settlements service_interfaces.SettlementService
}

func NewContractController(schedule service_interfaces.ScheduleService, settlements service_interfaces.SettlementService) *ContractController {
	return &ContractController{schedule: schedule, settlements: settlements}
}

func (c *ContractController) RegisterRoutes(r chi.Router) {
	r.Route("/contracts", func(r chi.Router) {
		r.Post("/", c.create)
		r.Get("/{id}", c.get)
		r.Get("/{id}/installments", c.installments)
		r.Get("/{id}/outstanding", c.outstanding)
		r.Post("/{id}/service-charges", c.addServiceCharge)
	})
	r.Post("/subdivisions", c.createSubdivision)
	r.Post("/payments", c.settle)
}

func (c *ContractController) create(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateContractRequest
	if err := decodeBody(r, &req); err != nil {
		logError(r, err, nil)
		badRequest[models.ContractResponse](w, r, start, "invalid request body", err.Error())
		return
	}
	logRequest(r, req)

	response, err := c.schedule.CreateContract(r.Context(), req)
	respond(w, r, start, http.StatusCreated, response, err)
}

func (c *ContractController) get(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, err := pathID(r, "id")
	if err != nil {
		badRequest[models.ContractResponse](w, r, start, "validation failed", err.Error())
		return
	}

	response, err := c.schedule.GetContract(r.Context(), id)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *ContractController) installments(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, err := pathID(r, "id")
	if err != nil {
		badRequest[[]models.InstallmentResponse](w, r, start, "validation failed", err.Error())
		return
	}

	response, err := c.schedule.ListInstallments(r.Context(), id)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *ContractController) outstanding(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, err := pathID(r, "id")
	if err != nil {
		badRequest[[]models.OutstandingInstallmentResponse](w, r, start, "validation failed", err.Error())
		return
	}

	response, err := c.settlements.ListOutstanding(r.Context(), models.OutstandingRequest{
		ContractID: id,
		AsOf:       r.URL.Query().Get("asOf"),
	})
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *ContractController) addServiceCharge(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := pathID(r, "id")
	if err != nil {
		badRequest[models.InstallmentResponse](w, r, start, "validation failed", err.Error())
		return
	}

	var req models.ServiceChargeRequest
	if err := decodeBody(r, &req); err != nil {
		logError(r, err, nil)
		badRequest[models.InstallmentResponse](w, r, start, "invalid request body", err.Error())
		return
	}
	req.ContractID = id
	logRequest(r, req)

	response, err := c.schedule.AddServiceCharge(r.Context(), req)
	respond(w, r, start, http.StatusCreated, response, err)
}

func (c *ContractController) createSubdivision(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateSubdivisionRequest
	if err := decodeBody(r, &req); err != nil {
		logError(r, err, nil)
		badRequest[models.SubdivisionResponse](w, r, start, "invalid request body", err.Error())
		return
	}
	logRequest(r, req)

	response, err := c.schedule.CreateSubdivision(r.Context(), req)
	respond(w, r, start, http.StatusCreated, response, err)
}

func (c *ContractController) settle(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.SettleInstallmentRequest
	if err := decodeBody(r, &req); err != nil {
		logError(r, err, nil)
		badRequest[models.PaymentResponse](w, r, start, "invalid request body", err.Error())
		return
	}
	req.SessionID = middleware.SessionIDFromContext(r.Context())
	req.OperatorID = commons.OperatorID(r.Context())
	logRequest(r, req)

	response, err := c.settlements.Settle(r.Context(), req)
	respond(w, r, start, http.StatusCreated, response, err)
}
