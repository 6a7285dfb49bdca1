package activity

import (
	"context"
	"errors"
	"iter"

	"github.com/SakerDakak/taxipay-dashboard/internal/domain/models"
	"github.com/SakerDakak/taxipay-dashboard/internal/domain/types"
)

// StopFunc decides, after page number requested has been fetched, whether the
// sequence is exhausted.
type StopFunc func(requested int, page models.TransactionPage) bool

// StopWhenExhausted stops when the page carries no pagination metadata or
// reports itself as the last page.
//
// Missing metadata is read as "no more pages", which under-fetches silently if
// the source ever omits it on a non-final page. Inject another StopFunc if so.
func StopWhenExhausted(requested int, page models.TransactionPage) bool {
	if page.Pages == nil {
		return true
	}
	// requested is checked as well so a source stuck on one "current" value cannot loop forever
	return page.Pages.Current >= page.Pages.Total || requested >= page.Pages.Total
}

// Pages returns a lazy sequence over the transaction pages of src, starting at page 1.
// Pages are fetched one at a time, only when the consumer asks for the next one.
// Ranging over the sequence again restarts from page 1.
//
// A fetch failure or context cancellation is yielded once as the error and ends
// the sequence. Fetch failures are reported as *ServiceError; cancellation is
// passed through as the context error.
func Pages(ctx context.Context, src TransactionSource, pageSize int, stop StopFunc) iter.Seq2[models.TransactionPage, error] {
	if stop == nil {
		stop = StopWhenExhausted
	}

	return func(yield func(models.TransactionPage, error) bool) {
		for page := 1; ; page++ {
			if err := ctx.Err(); err != nil {
				yield(models.TransactionPage{}, err)
				return
			}

			p, err := src.GetTransactions(ctx, page, pageSize)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
					yield(models.TransactionPage{}, err)
					return
				}
				yield(models.TransactionPage{}, &ServiceError{Source: types.SourceTransactions, Page: page, Err: err})
				return
			}
			if p == nil {
				p = &models.TransactionPage{}
			}

			if !yield(*p, nil) {
				return
			}
			if stop(page, *p) {
				return
			}
		}
	}
}

// Drain concatenates every page of seq in fetch order.
// It is all-or-nothing: on error the pages already fetched are discarded.
func Drain(seq iter.Seq2[models.TransactionPage, error]) (txs []models.TransactionRecord, pages int, err error) {
	for p, fetchErr := range seq {
		if fetchErr != nil {
			return nil, 0, fetchErr
		}
		pages++
		txs = append(txs, p.Transactions...)
	}
	return txs, pages, nil
}
