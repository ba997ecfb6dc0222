package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"transport-backend/internal/billing"
	"transport-backend/internal/models"
	"transport-backend/internal/money"
)

func invoiceFixture() *models.Invoice {
	return &models.Invoice{
		InvoiceNo:    "INV-0001",
		CustomerName: "Arun Logistics",
		Items: []models.LineItem{
			{ID: "1", Quantity: "100", Rate: "12.5", Amount: money.ItemAmount("100", "12.5")},
		},
		OldBalance: "500",
		Advance:    "200",
	}
}

func TestComputeTotals(t *testing.T) {
	totals := billing.ComputeTotals(invoiceFixture())

	assert.Equal(t, "1250.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "1550.00", totals.Total.StringFixed(2))
}

func TestComputeTotalsIsIdempotent(t *testing.T) {
	inv := invoiceFixture()

	first := billing.ComputeTotals(inv)
	second := billing.ComputeTotals(inv)

	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.True(t, first.Total.Equal(second.Total))
}

func TestComputeTotalsEmptyItems(t *testing.T) {
	inv := &models.Invoice{OldBalance: "", Advance: ""}
	totals := billing.ComputeTotals(inv)

	assert.Equal(t, "0.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "0.00", totals.Total.StringFixed(2))
}

func TestComputeTotalsMalformedBalances(t *testing.T) {
	inv := invoiceFixture()
	inv.OldBalance = "not-a-number"
	inv.Advance = ""

	totals := billing.ComputeTotals(inv)
	assert.Equal(t, "1250.00", totals.Total.StringFixed(2))
}

func TestRecomputeItemsOverwritesStoredAmounts(t *testing.T) {
	inv := invoiceFixture()
	// Simulate drifted persisted data.
	inv.Items[0].Amount = money.Parse("9999")

	billing.RecomputeItems(inv)
	assert.Equal(t, "1250.00", inv.Items[0].Amount.StringFixed(2))
}

func TestRecomputeItemsZeroesInvalidInput(t *testing.T) {
	inv := invoiceFixture()
	inv.Items = append(inv.Items, models.LineItem{ID: "2", Quantity: "ten", Rate: "5"})

	billing.RecomputeItems(inv)
	assert.Equal(t, "0.00", inv.Items[1].Amount.StringFixed(2))
}

func TestRecomputeUpdatesCachedTotal(t *testing.T) {
	inv := invoiceFixture()
	inv.Total = money.Parse("1")

	totals := billing.Recompute(inv)
	assert.Equal(t, "1550.00", totals.Total.StringFixed(2))
	assert.True(t, inv.Total.Equal(totals.Total))
}
