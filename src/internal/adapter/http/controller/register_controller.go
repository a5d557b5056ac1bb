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

type RegisterController struct {
	accounts  service_interfaces.AccountService
	registers service_interfaces.RegisterService
}

func NewRegisterController(accounts service_interfaces.AccountService, registers service_interfaces.RegisterService) *RegisterController {
	return &RegisterController{accounts: accounts, registers: registers}
}

func (c *RegisterController) RegisterRoutes(r chi.Router) {
	r.Route("/registers", func(r chi.Router) {
		r.Post("/", c.create)
		r.Get("/", c.list)
		r.Get("/session", c.status)
		r.Post("/movements", c.postMovement)
		r.Get("/{id}", c.get)
		r.Post("/{id}/open", c.open)
		r.Post("/{id}/close", c.close)
		r.Get("/{id}/movements", c.cashCount)
		r.Get("/{id}/reconcile", c.reconcile)
	})
}

func (c *RegisterController) create(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateRegisterRequest
	if err := decodeBody(r, &req); err != nil {
		logError(r, err, nil)
		badRequest[models.RegisterResponse](w, r, start, "invalid request body", err.Error())
		return
	}
	logRequest(r, req)

	response, err := c.accounts.CreateRegister(r.Context(), req)
	respond(w, r, start, http.StatusCreated, response, err)
}

func (c *RegisterController) list(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.accounts.ListRegisters(r.Context())
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *RegisterController) get(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, err := pathID(r, "id")
	if err != nil {
		badRequest[models.RegisterResponse](w, r, start, "validation failed", err.Error())
		return
	}

	response, err := c.accounts.GetRegister(r.Context(), id)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *RegisterController) open(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := pathID(r, "id")
	if err != nil {
		badRequest[models.OpenRegisterResponse](w, r, start, "validation failed", err.Error())
		return
	}

	var req models.OpenRegisterRequest
	if err := decodeBody(r, &req); err != nil {
		logError(r, err, nil)
		badRequest[models.OpenRegisterResponse](w, r, start, "invalid request body", err.Error())
		return
	}
	req.RegisterID = id
	req.OperatorID = commons.OperatorID(r.Context())
	logRequest(r, req)

	response, err := c.registers.OpenRegister(r.Context(), req)
	respond(w, r, start, http.StatusCreated, response, err)
}

func (c *RegisterController) close(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, err := pathID(r, "id")
	if err != nil {
		badRequest[models.ClosingSummaryResponse](w, r, start, "validation failed", err.Error())
		return
	}

	response, err := c.registers.CloseRegister(r.Context(), models.CloseRegisterRequest{
		RegisterID: id,
		SessionID:  middleware.SessionIDFromContext(r.Context()),
	})
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *RegisterController) status(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.registers.RegisterStatus(r.Context(), middleware.SessionIDFromContext(r.Context()))
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *RegisterController) postMovement(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.ManualMovementRequest
	if err := decodeBody(r, &req); err != nil {
		logError(r, err, nil)
		badRequest[models.MovementResponse](w, r, start, "invalid request body", err.Error())
		return
	}
	req.SessionID = middleware.SessionIDFromContext(r.Context())
	req.OperatorID = commons.OperatorID(r.Context())
	logRequest(r, req)

	response, err := c.registers.PostManualMovement(r.Context(), req)
	respond(w, r, start, http.StatusCreated, response, err)
}

func (c *RegisterController) cashCount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, err := pathID(r, "id")
	if err != nil {
		badRequest[models.CashCountResponse](w, r, start, "validation failed", err.Error())
		return
	}

	query := r.URL.Query()
	response, err := c.registers.CashCount(r.Context(), models.CashCountRequest{
		RegisterID: id,
		From:       query.Get("from"),
		To:         query.Get("to"),
	})
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *RegisterController) reconcile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, err := pathID(r, "id")
	if err != nil {
		badRequest[models.ReconciliationResponse](w, r, start, "validation failed", err.Error())
		return
	}

	response, err := c.accounts.ReconcileRegister(r.Context(), id)
	respond(w, r, start, http.StatusOK, response, err)
}
