package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/models"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/repository/repo_interfaces"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/domain"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/logger"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/usecase/service_interfaces"
	"github.com/shopspring/decimal"
)

var _ service_interfaces.QuoteService = (*QuoteService)(nil)

type QuoteService struct {
	quoteRepo repo_interfaces.QuoteRepository
}

func NewQuoteService(quoteRepo repo_interfaces.QuoteRepository) *QuoteService {
	return &QuoteService{quoteRepo: quoteRepo}
}

func (s *QuoteService) RecordQuote(ctx context.Context, req models.RecordQuoteRequest) (commons.Response[models.QuoteResponse], error) {
	logger.Info("quote service record request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("quote service record validation failed", err, nil)
		return failure[models.QuoteResponse]("record quote", err)
	}

	quoteDate, _ := models.ParseDate(req.QuoteDate, time.Now().UTC())
	source, target := domain.QuotePair(
		domain.Currency(strings.ToUpper(strings.TrimSpace(req.Source))),
		domain.Currency(strings.ToUpper(strings.TrimSpace(req.Target))),
	)
	buy, _ := models.ParseAmount(req.Buy)
	sell, _ := models.ParseAmount(req.Sell)

	quote, err := s.quoteRepo.Create(ctx, domain.ExchangeQuote{
		QuoteDate: domain.CivilDate(quoteDate),
		Source:    source,
		Target:    target,
		Buy:       buy,
		Sell:      sell,
	})
	if err != nil {
		logger.Error("quote service record failed", err, logger.Fields{
			"quoteDate": models.FormatDate(quoteDate),
			"source":    source,
			"target":    target,
		})
		return failure[models.QuoteResponse]("record quote", err)
	}

	logger.Info("quote service record success", logger.Fields{
		"quoteId":   quote.ID,
		"quoteDate": models.FormatDate(quote.QuoteDate),
	})

	return commons.SuccessResponse("quote recorded successfully", mapQuoteToResponse(quote)), nil
}

func (s *QuoteService) ListQuotes(ctx context.Context) (commons.Response[[]models.QuoteResponse], error) {
	logger.Info("quote service list request", nil)

	quotes, err := s.quoteRepo.List(ctx)
	if err != nil {
		logger.Error("quote service list failed", err, nil)
		return failure[[]models.QuoteResponse]("list quotes", err)
	}

	resp := make([]models.QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		resp = append(resp, mapQuoteToResponse(q))
	}

	logger.Info("quote service list success", logger.Fields{"count": len(resp)})
	return commons.SuccessResponse("quotes fetched successfully", resp), nil
}

// FindQuote returns the quote for the pair on date, falling back to the most
// recent quote for the pair when that date has none.
func (s *QuoteService) FindQuote(ctx context.Context, date time.Time, a, b domain.Currency) (domain.ExchangeQuote, error) {
	source, target := domain.QuotePair(a, b)

	quote, err := s.quoteRepo.GetForDate(ctx, date, source, target)
	if err == nil {
		return quote, nil
	}
	if !errors.Is(err, commons.ErrRecordNotFound) {
		return domain.ExchangeQuote{}, err
	}

	quote, err = s.quoteRepo.GetLatest(ctx, source, target)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return domain.ExchangeQuote{}, fmt.Errorf("%s/%s: %w", source, target, commons.ErrNoExchangeRate)
		}
		return domain.ExchangeQuote{}, err
	}

	logger.Warn("quote service using latest quote as fallback", logger.Fields{
		"requestedDate": models.FormatDate(date),
		"quoteDate":     models.FormatDate(quote.QuoteDate),
		"source":        source,
		"target":        target,
	})
	return quote, nil
}

// ConvertAmount converts amount from one currency to another. Foreign to
// local uses the buy rate, local to foreign divides by the sell rate. The
// result is rounded to two decimals.
func (s *QuoteService) ConvertAmount(ctx context.Context, amount decimal.Decimal, from, to domain.Currency, date time.Time) (domain.Conversion, error) {
	if !amount.IsPositive() {
		return domain.Conversion{}, fmt.Errorf("amount must be greater than zero: %w", commons.ErrInvalidAmount)
	}
	if from == to {
		if !amount.Round(2).IsPositive() {
			return domain.Conversion{}, fmt.Errorf("amount %s rounds to zero: %w", amount.String(), commons.ErrInvalidAmount)
		}
		return domain.Conversion{
			Amount:    amount,
			Converted: amount.Round(2),
			Rate:      decimal.NewFromInt(1),
		}, nil
	}

	quote, err := s.FindQuote(ctx, date, from, to)
	if err != nil {
		return domain.Conversion{}, err
	}

	quoteDate := quote.QuoteDate
	conv := domain.Conversion{Amount: amount, QuoteDate: &quoteDate}
	if from == quote.Source {
		if !quote.Buy.IsPositive() {
			return domain.Conversion{}, fmt.Errorf("buy rate for %s is not positive: %w", models.FormatDate(quoteDate), commons.ErrNoExchangeRate)
		}
		conv.Rate = quote.Buy
		conv.RateKind = domain.RateKindBuy
		conv.Converted = amount.Mul(quote.Buy).Round(2)
	} else {
		if !quote.Sell.IsPositive() {
			return domain.Conversion{}, fmt.Errorf("sell rate for %s is not positive: %w", models.FormatDate(quoteDate), commons.ErrNoExchangeRate)
		}
		conv.Rate = quote.Sell
		conv.RateKind = domain.RateKindSell
		conv.Converted = amount.Div(quote.Sell).Round(2)
	}
	if !conv.Converted.IsPositive() {
		return domain.Conversion{}, fmt.Errorf("%s %s converts to %s %s: %w",
			amount.StringFixed(2), from, conv.Converted.StringFixed(2), to, commons.ErrInvalidAmount)
	}
	return conv, nil
}

func (s *QuoteService) Convert(ctx context.Context, req models.ConvertRequest) (commons.Response[models.ConvertResponse], error) {
	logger.Info("quote service convert request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("quote service convert validation failed", err, nil)
		return failure[models.ConvertResponse]("convert amount", err)
	}

	amount, _ := models.ParseAmount(req.Amount)
	date, _ := models.ParseDate(req.Date, time.Now().UTC())
	from := domain.Currency(strings.ToUpper(strings.TrimSpace(req.From)))
	to := domain.Currency(strings.ToUpper(strings.TrimSpace(req.To)))

	conv, err := s.ConvertAmount(ctx, amount, from, to, date)
	if err != nil {
		logger.Error("quote service convert failed", err, logger.Fields{
			"from": from,
			"to":   to,
		})
		return failure[models.ConvertResponse]("convert amount", err)
	}

	resp := models.ConvertResponse{
		Amount:          amount,
		From:            string(from),
		To:              string(to),
		ConvertedAmount: conv.Converted,
		RateUsed:        conv.Rate,
		RateKind:        conv.RateKind,
	}
	if conv.QuoteDate != nil {
		resp.QuoteDate = models.FormatDate(*conv.QuoteDate)
	}

	logger.Info("quote service convert success", logger.Fields{
		"from":            resp.From,
		"to":              resp.To,
		"convertedAmount": resp.ConvertedAmount,
		"quoteDate":       resp.QuoteDate,
	})

	return commons.SuccessResponse("amount converted successfully", resp), nil
}

func mapQuoteToResponse(q domain.ExchangeQuote) models.QuoteResponse {
	return models.QuoteResponse{
		ID:        q.ID,
		QuoteDate: models.FormatDate(q.QuoteDate),
		Source:    string(q.Source),
		Target:    string(q.Target),
		Buy:       q.Buy,
		Sell:      q.Sell,
	}
}
