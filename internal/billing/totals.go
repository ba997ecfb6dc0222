// Package billing derives the financial figures of an invoice from its
// primitive inputs. Everything here is pure and cheap enough to run on every
// field edit.
package billing

import (
	"github.com/shopspring/decimal"

	"transport-backend/internal/models"
	"transport-backend/internal/money"
)

// Totals are the derived figures of an invoice.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals returns subtotal and total for an invoice:
//
//	subtotal = sum of item amounts
//	total    = subtotal + oldBalance - advance
//
// Decimal arithmetic makes this idempotent; recomputing on the same input
// always yields the same result.
func ComputeTotals(inv *models.Invoice) Totals {
	amounts := make([]decimal.Decimal, 0, len(inv.Items))
	for _, item := range inv.Items {
		amounts = append(amounts, item.Amount)
	}

	subtotal := money.Sum(amounts)
	total := subtotal.Add(money.Parse(inv.OldBalance)).Sub(money.Parse(inv.Advance))

	return Totals{Subtotal: subtotal, Total: total}
}

// RecomputeItems re-derives every cached item amount from its quantity and
// rate text. Stored amounts are never trusted: loading an invoice runs this
// first so any drift in persisted data is corrected before display.
func RecomputeItems(inv *models.Invoice) {
	for i := range inv.Items {
		inv.Items[i].Amount = money.ItemAmount(inv.Items[i].Quantity, inv.Items[i].Rate)
	}
}

// Recompute refreshes the item amounts and the cached invoice total in one
// pass, returning the derived totals.
func Recompute(inv *models.Invoice) Totals {
	RecomputeItems(inv)
	totals := ComputeTotals(inv)
	inv.Total = totals.Total
	return totals
}
