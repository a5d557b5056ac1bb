package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/adapter/http/models"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/domain"
)

func TestRecordQuoteNormalizesPairAndRejectsDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.quotes.RecordQuote(ctx, models.RecordQuoteRequest{
		QuoteDate: "2024-03-01", Source: "pyg", Target: "usd", Buy: "7300", Sell: "7400",
	})
	if err != nil {
		t.Fatalf("expected quote, got %v", err)
	}
	if resp.Data.Source != "USD" || resp.Data.Target != "PYG" {
		t.Fatalf("expected USD/PYG pair, got %s/%s", resp.Data.Source, resp.Data.Target)
	}

	_, err = f.quotes.RecordQuote(ctx, models.RecordQuoteRequest{
		QuoteDate: "2024-03-01", Source: "USD", Target: "PYG", Buy: "7310", Sell: "7410",
	})
	if !errors.Is(err, commons.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestRecordQuoteValidation(t *testing.T) {
	f := newFixture(t)

	tests := []models.RecordQuoteRequest{
		{QuoteDate: "2024-03-01", Source: "USD", Target: "USD", Buy: "1", Sell: "1"},
		{QuoteDate: "2024-03-01", Source: "EUR", Target: "PYG", Buy: "1", Sell: "1"},
		{QuoteDate: "2024-03-01", Source: "USD", Target: "PYG", Buy: "0", Sell: "7400"},
		{QuoteDate: "01/03/2024", Source: "USD", Target: "PYG", Buy: "7300", Sell: "7400"},
	}
	for _, req := range tests {
		if _, err := f.quotes.RecordQuote(context.Background(), req); !errors.Is(err, commons.ErrValidation) {
			t.Fatalf("expected ErrValidation for %+v, got %v", req, err)
		}
	}
}

func TestFindQuoteAcceptsEitherOrder(t *testing.T) {
	f := newFixture(t)
	f.quote(t, "2024-03-01", "7300", "7400")

	quote, err := f.quotes.FindQuote(context.Background(), dateOf(t, "2024-03-01"), domain.CurrencyPYG, domain.CurrencyUSD)
	if err != nil {
		t.Fatalf("expected quote, got %v", err)
	}
	assertDecimal(t, "buy", quote.Buy, "7300")
}

func TestConvertRoundsToTwoDecimals(t *testing.T) {
	f := newFixture(t)
	f.quote(t, "2024-03-01", "7300", "7400")

	resp, err := f.quotes.Convert(context.Background(), models.ConvertRequest{
		Amount: "1000", From: "PYG", To: "USD", Date: "2024-03-01",
	})
	if err != nil {
		t.Fatalf("expected conversion, got %v", err)
	}
	assertDecimal(t, "converted", resp.Data.ConvertedAmount, "0.14")
	if resp.Data.QuoteDate != "2024-03-01" {
		t.Fatalf("expected quote date 2024-03-01, got %s", resp.Data.QuoteDate)
	}
}
