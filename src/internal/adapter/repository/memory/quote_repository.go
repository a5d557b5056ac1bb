package memory

import (
	"context"
	"sort"
	"time"

	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/commons"
	"github.com/DariusK1ngg/Real-Estate-Management-System/src/internal/domain"
)

type QuoteRepository struct {
	s *Store
}

func (r *QuoteRepository) Create(_ context.Context, quote domain.ExchangeQuote) (domain.ExchangeQuote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	quote.QuoteDate = domain.CivilDate(quote.QuoteDate)
	for _, existing := range r.s.quotes {
		if existing.QuoteDate.Equal(quote.QuoteDate) && existing.Source == quote.Source && existing.Target == quote.Target {
			return domain.ExchangeQuote{}, commons.ErrDuplicate
		}
	}
	quote.ID = r.s.id("quotes")
	quote.CreatedAt = r.s.now()
	r.s.quotes = append(r.s.quotes, quote)
	return quote, nil
}

func (r *QuoteRepository) List(_ context.Context) ([]domain.ExchangeQuote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := append([]domain.ExchangeQuote(nil), r.s.quotes...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].QuoteDate.After(out[j].QuoteDate) })
	return out, nil
}

func (r *QuoteRepository) GetForDate(_ context.Context, quoteDate time.Time, source, target domain.Currency) (domain.ExchangeQuote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	day := domain.CivilDate(quoteDate)
	for _, q := range r.s.quotes {
		if q.Source == source && q.Target == target && q.QuoteDate.Equal(day) {
			return q, nil
		}
	}
	return domain.ExchangeQuote{}, commons.ErrRecordNotFound
}

func (r *QuoteRepository) GetLatest(_ context.Context, source, target domain.Currency) (domain.ExchangeQuote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var latest *domain.ExchangeQuote
	for i := range r.s.quotes {
		q := r.s.quotes[i]
		if q.Source != source || q.Target != target {
			continue
		}
		if latest == nil || q.QuoteDate.After(latest.QuoteDate) {
			latest = &q
		}
	}
	if latest == nil {
		return domain.ExchangeQuote{}, commons.ErrRecordNotFound
	}
	return *latest, nil
}
