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

type ExpenseController struct {
	expenses service_interfaces.ExpenseService
}

func NewExpenseController(expenses service_interfaces.ExpenseService) *ExpenseController {
	return &ExpenseController{expenses: expenses}
}

func (c *ExpenseController) RegisterRoutes(r chi.Router) {
	r.Route("/expenses", func(r chi.Router) {
		r.Post("/", c.create)
		r.Get("/", c.list)
		r.Get("/{id}", c.get)
		r.Post("/{id}/void", c.void)
		r.Post("/{id}/pay", c.pay)
	})
}

func (c *ExpenseController) create(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateExpenseRequest
	if err := decodeBody(r, &req); err != nil {
		logError(r, err, nil)
		badRequest[models.ExpenseResponse](w, r, start, "invalid request body", err.Error())
		return
	}
	req.OperatorID = commons.OperatorID(r.Context())
	logRequest(r, req)

	response, err := c.expenses.Create(r.Context(), req)
	respond(w, r, start, http.StatusCreated, response, err)
}

func (c *ExpenseController) list(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.expenses.List(r.Context())
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *ExpenseController) get(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, err := pathID(r, "id")
	if err != nil {
		badRequest[models.ExpenseResponse](w, r, start, "validation failed", err.Error())
		return
	}

	response, err := c.expenses.Get(r.Context(), id)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *ExpenseController) void(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, err := pathID(r, "id")
	if err != nil {
		badRequest[models.ExpenseResponse](w, r, start, "validation failed", err.Error())
		return
	}

	response, err := c.expenses.Void(r.Context(), id, commons.OperatorID(r.Context()))
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *ExpenseController) pay(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := pathID(r, "id")
	if err != nil {
		badRequest[models.ExpenseResponse](w, r, start, "validation failed", err.Error())
		return
	}
	var req models.PayExpenseRequest
	if err := decodeBody(r, &req); err != nil {
		logError(r, err, nil)
		badRequest[models.ExpenseResponse](w, r, start, "invalid request body", err.Error())
		return
	}
	req.ExpenseID = id
	req.SessionID = middleware.SessionIDFromContext(r.Context())
	req.OperatorID = commons.OperatorID(r.Context())
	logRequest(r, req)

	response, err := c.expenses.Pay(r.Context(), req)
	respond(w, r, start, http.StatusOK, response, err)
}
