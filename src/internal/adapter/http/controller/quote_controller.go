package controller

import (
	"net/http"
	"time"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/models"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/usecase/service_interfaces"
	"github.com/go-chi/chi/v5"
)

type QuoteController struct {
	service service_interfaces.QuoteService
}

func NewQuoteController(service service_interfaces.QuoteService) *QuoteController {
	return &QuoteController{service: service}
}

func (c *QuoteController) RegisterRoutes(r chi.Router) {
	r.Get("/quotes", c.list)
	r.Post("/quotes", c.record)
	r.Get("/quotes/convert", c.convert)
}

func (c *QuoteController) list(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.ListQuotes(r.Context())
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *QuoteController) record(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.RecordQuoteRequest
	if err := decodeBody(r, &req); err != nil {
		logError(r, err, nil)
		badRequest[models.QuoteResponse](w, r, start, "invalid request body", err.Error())
		return
	}
	logRequest(r, req)

	response, err := c.service.RecordQuote(r.Context(), req)
	respond(w, r, start, http.StatusCreated, response, err)
}

func (c *QuoteController) convert(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	query := r.URL.Query()
	response, err := c.service.Convert(r.Context(), models.ConvertRequest{
		Amount: query.Get("amount"),
		From:   query.Get("from"),
		To:     query.Get("to"),
		Date:   query.Get("date"),
	})
	respond(w, r, start, http.StatusOK, response, err)
}
