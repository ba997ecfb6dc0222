package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"transport-backend/internal/models"
)

// ErrInvoiceNotFound is returned when no invoice matches the given number.
var ErrInvoiceNotFound = errors.New("invoice not found")

// InvoiceRepository persists invoices keyed by their human-readable invoice
// number. The serial id column is an internal surrogate; callers never see it.
type InvoiceRepository struct {
	DB *pgxpool.Pool
}

func NewInvoiceRepository(db *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{DB: db}
}

// Count returns how many invoice records exist. Invoice numbering derives
// from this count.
func (r *InvoiceRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM invoices`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count invoices: %w", err)
	}
	return count, nil
}

// Create inserts an invoice and its items in one transaction.
func (r *InvoiceRepository) Create(ctx context.Context, inv *models.Invoice) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var invoiceID int
	err = tx.QueryRow(ctx,
		`INSERT INTO invoices(invoice_no, invoice_date, customer_name, customer_address,
		                      customer_phone, old_balance, advance, total)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		inv.InvoiceNo, inv.InvoiceDate, inv.CustomerName, inv.CustomerAddress,
		inv.CustomerPhone, inv.OldBalance, inv.Advance, inv.Total,
	).Scan(&invoiceID, &inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert invoice: %w", err)
	}

	if err := insertItems(ctx, tx, invoiceID, inv.Items); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Update replaces an invoice's fields and its full item collection, keyed by
// invoice number. Items are replaced by delete-then-reinsert; both phases run
// inside one transaction so a crash cannot leave an invoice without items.
func (r *InvoiceRepository) Update(ctx context.Context, number string, inv *models.Invoice) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var invoiceID int
	err = tx.QueryRow(ctx,
		`UPDATE invoices
		 SET invoice_no=$1, invoice_date=$2, customer_name=$3, customer_address=$4,
		     customer_phone=$5, old_balance=$6, advance=$7, total=$8,
		     updated_at=CURRENT_TIMESTAMP
		 WHERE invoice_no=$9
		 RETURNING id`,
		inv.InvoiceNo, inv.InvoiceDate, inv.CustomerName, inv.CustomerAddress,
		inv.CustomerPhone, inv.OldBalance, inv.Advance, inv.Total, number,
	).Scan(&invoiceID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrInvoiceNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update invoice %s: %w", number, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id=$1`, invoiceID); err != nil {
		return fmt.Errorf("failed to clear items for invoice %s: %w", number, err)
	}

	if err := insertItems(ctx, tx, invoiceID, inv.Items); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func insertItems(ctx context.Context, tx pgx.Tx, invoiceID int, items []models.LineItem) error {
	for pos, item := range items {
		_, err := tx.Exec(ctx,
			`INSERT INTO invoice_items(invoice_id, item_id, item_date, vehicle_no,
			                           description, qty_km, rate, amount, position)
			 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			invoiceID, item.ID, item.Date, item.VehicleNo,
			item.Description, item.Quantity, item.Rate, item.Amount, pos,
		)
		if err != nil {
			return fmt.Errorf("failed to insert invoice item: %w", err)
		}
	}
	return nil
}

// GetByNumber retrieves an invoice with its items in display order.
func (r *InvoiceRepository) GetByNumber(ctx context.Context, number string) (*models.Invoice, error) {
	var (
		inv       models.Invoice
		invoiceID int
		total     float64
	)
	err := r.DB.QueryRow(ctx,
		`SELECT id, invoice_no, invoice_date, customer_name, customer_address,
		        customer_phone, old_balance, advance, total, created_at, updated_at
		 FROM invoices WHERE invoice_no=$1`, number,
	).Scan(&invoiceID, &inv.InvoiceNo, &inv.InvoiceDate, &inv.CustomerName,
		&inv.CustomerAddress, &inv.CustomerPhone, &inv.OldBalance, &inv.Advance,
		&total, &inv.CreatedAt, &inv.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInvoiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice %s: %w", number, err)
	}
	inv.Total = decimal.NewFromFloat(total).Round(2)

	rows, err := r.DB.Query(ctx,
		`SELECT item_id, item_date, vehicle_no, description, qty_km, rate, amount
		 FROM invoice_items WHERE invoice_id=$1 ORDER BY position`, invoiceID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items for invoice %s: %w", number, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item   models.LineItem
			amount float64
		)
		if err := rows.Scan(&item.ID, &item.Date, &item.VehicleNo, &item.Description,
			&item.Quantity, &item.Rate, &amount); err != nil {
			return nil, err
		}
		item.Amount = decimal.NewFromFloat(amount).Round(2)
		inv.Items = append(inv.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &inv, nil
}

// Delete removes an invoice (items cascade).
func (r *InvoiceRepository) Delete(ctx context.Context, number string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM invoices WHERE invoice_no=$1`, number)
	if err != nil {
		return fmt.Errorf("failed to delete invoice %s: %w", number, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}

// List returns all invoices newest-first, without their items.
func (r *InvoiceRepository) List(ctx context.Context) ([]*models.Invoice, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT invoice_no, invoice_date, customer_name, customer_address,
		        customer_phone, old_balance, advance, total, created_at, updated_at
		 FROM invoices ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		var (
			inv   models.Invoice
			total float64
		)
		if err := rows.Scan(&inv.InvoiceNo, &inv.InvoiceDate, &inv.CustomerName,
			&inv.CustomerAddress, &inv.CustomerPhone, &inv.OldBalance, &inv.Advance,
			&total, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, err
		}
		inv.Total = decimal.NewFromFloat(total).Round(2)
		invoices = append(invoices, &inv)
	}
	return invoices, rows.Err()
}

// ListRecent returns the n newest invoices as dashboard summaries.
func (r *InvoiceRepository) ListRecent(ctx context.Context, n int) ([]*models.InvoiceSummary, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT invoice_no, invoice_date, customer_name, total
		 FROM invoices ORDER BY created_at DESC LIMIT $1`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent invoices: %w", err)
	}
	defer rows.Close()

	var summaries []*models.InvoiceSummary
	for rows.Next() {
		var (
			s     models.InvoiceSummary
			total float64
		)
		if err := rows.Scan(&s.InvoiceNo, &s.InvoiceDate, &s.CustomerName, &total); err != nil {
			return nil, err
		}
		s.Total = decimal.NewFromFloat(total).Round(2)
		summaries = append(summaries, &s)
	}
	return summaries, rows.Err()
}

// SumTotals returns the sum of all invoice totals (dashboard revenue figure).
func (r *InvoiceRepository) SumTotals(ctx context.Context) (decimal.Decimal, error) {
	var sum float64
	err := r.DB.QueryRow(ctx, `SELECT COALESCE(SUM(total), 0) FROM invoices`).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum invoice totals: %w", err)
	}
	return decimal.NewFromFloat(sum).Round(2), nil
}
