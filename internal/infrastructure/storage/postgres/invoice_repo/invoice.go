// Package invoice_repo provides the PostgreSQL implementation of invoice.Repository.
package invoice_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"shopinvoice/internal/core/apperror"
	"shopinvoice/internal/core/id"
	"shopinvoice/internal/domain/invoice"
	"shopinvoice/internal/infrastructure/storage/postgres"
)

const invoicesTable = "shop_invoices"

// pgUniqueViolation is the SQLSTATE for unique constraint violations.
const pgUniqueViolation = "23505"

var invoiceColumns = []string{
	"id", "version", "created_at", "updated_at",
	"order_id", "order_number", "type", "number",
	"price", "currency", "paid", "path",
}

// InvoiceRepo implements invoice.Repository.
type InvoiceRepo struct {
	txManager *postgres.TxManager
}

// NewInvoiceRepo creates a new invoice repository.
func NewInvoiceRepo(txManager *postgres.TxManager) *InvoiceRepo {
	return &InvoiceRepo{txManager: txManager}
}

var _ invoice.Repository = (*InvoiceRepo)(nil)

// Builder returns a new squirrel builder with Postgres placeholders.
func (r *InvoiceRepo) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *InvoiceRepo) baseSelect() squirrel.SelectBuilder {
	return r.Builder().
		Select(invoiceColumns...).
		From(invoicesTable)
}

// Create inserts a new invoice record.
func (r *InvoiceRepo) Create(ctx context.Context, inv *invoice.Invoice) error {
	q := r.Builder().
		Insert(invoicesTable).
		Columns(invoiceColumns...).
		Values(
			inv.ID, inv.Version, inv.CreatedAt, inv.UpdatedAt,
			inv.OrderID, inv.OrderNumber, inv.Type, inv.Number,
			inv.Price, inv.Currency, inv.Paid, inv.Path,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.NewDuplicate("invoice", "number", inv.Number)
		}
		return fmt.Errorf("insert %s: %w", invoicesTable, err)
	}

	return nil
}

// Update persists price, paid flag and path with optimistic locking.
// Number, type and order reference are immutable.
func (r *InvoiceRepo) Update(ctx context.Context, inv *invoice.Invoice) error {
	q := r.Builder().
		Update(invoicesTable).
		Set("price", inv.Price).
		Set("paid", inv.Paid).
		Set("path", inv.Path).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": inv.ID}).
		Where(squirrel.Eq{"version": inv.Version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", invoicesTable, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("invoice", inv.ID.String())
	}

	inv.SetVersion(inv.Version + 1)
	return nil
}

// GetByID retrieves an invoice by its primary key.
func (r *InvoiceRepo) GetByID(ctx context.Context, invoiceID id.ID) (*invoice.Invoice, error) {
	q := r.baseSelect().Where(squirrel.Eq{"id": invoiceID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var inv invoice.Invoice
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &inv, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("invoice", invoiceID.String())
		}
		return nil, fmt.Errorf("get by id: %w", err)
	}

	return &inv, nil
}

// GetByOrder returns the invoices of an order, newest first.
func (r *InvoiceRepo) GetByOrder(ctx context.Context, orderID id.ID) ([]*invoice.Invoice, error) {
	q := r.selectByOrder(orderID)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var invoices []*invoice.Invoice
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &invoices, sql, args...); err != nil {
		return nil, fmt.Errorf("get by order: %w", err)
	}

	return invoices, nil
}

// GetLatestByOrder returns the most recent invoice of an order.
func (r *InvoiceRepo) GetLatestByOrder(ctx context.Context, orderID id.ID) (*invoice.Invoice, error) {
	q := r.selectByOrder(orderID).Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var inv invoice.Invoice
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &inv, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("invoice", orderID.String())
		}
		return nil, fmt.Errorf("get latest by order: %w", err)
	}

	return &inv, nil
}

// GetByOrderIDs maps each order to its latest invoice.
func (r *InvoiceRepo) GetByOrderIDs(ctx context.Context, orderIDs []id.ID) (map[id.ID]*invoice.Invoice, error) {
	result := make(map[id.ID]*invoice.Invoice, len(orderIDs))
	if len(orderIDs) == 0 {
		return result, nil
	}

	q := r.selectLatestPerOrder(orderIDs)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var invoices []*invoice.Invoice
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &invoices, sql, args...); err != nil {
		return nil, fmt.Errorf("get by order ids: %w", err)
	}

	for _, inv := range invoices {
		result[inv.OrderID] = inv
	}

	return result, nil
}

// MarkPaid flips the paid flag.
func (r *InvoiceRepo) MarkPaid(ctx context.Context, invoiceID id.ID, paid bool) error {
	q := r.Builder().
		Update(invoicesTable).
		Set("paid", paid).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": invoiceID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("mark paid: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("invoice", invoiceID.String())
	}

	return nil
}

func (r *InvoiceRepo) selectByOrder(orderID id.ID) squirrel.SelectBuilder {
	return r.baseSelect().
		Where(squirrel.Eq{"order_id": orderID}).
		OrderBy("created_at DESC")
}

// selectLatestPerOrder picks one row per order, the newest, via DISTINCT ON.
func (r *InvoiceRepo) selectLatestPerOrder(orderIDs []id.ID) squirrel.SelectBuilder {
	cols := make([]string, len(invoiceColumns))
	copy(cols, invoiceColumns)
	cols[0] = "DISTINCT ON (order_id) id"

	return r.Builder().
		Select(cols...).
		From(invoicesTable).
		Where(squirrel.Eq{"order_id": orderIDs}).
		OrderBy("order_id", "created_at DESC")
}
