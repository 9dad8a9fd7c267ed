package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/blockloop/scan/v2"

	"github.com/kmwangi/netbill-golang/internal/listview"
	"github.com/kmwangi/netbill-golang/internal/models"
)

var paymentColumns = []string{
	"id", "subscriber_id", "subscriber_name", "username", "plan_id",
	"plan_name", "amount_cents", "method", "status", "created_at",
}

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func applyPaymentView(query sq.SelectBuilder, q listview.ViewQuery, method listview.ChoiceFilter, now time.Time) sq.SelectBuilder {
	if q.Status != listview.ChoiceAll && q.Status != "" {
		query = query.Where(sq.Eq{"status": string(q.Status)})
	}
	if method != listview.ChoiceAll && method != "" {
		query = query.Where(sq.Eq{"method": string(method)})
	}
	if cutoff, ok := q.Range.Cutoff(now); ok {
		// Fail-open: rows without a usable created-at stay visible.
		query = query.Where(sq.Or{
			sq.GtOrEq{"created_at": cutoff},
			sq.Eq{"created_at": nil},
		})
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		needle := "%" + strings.ToLower(s) + "%"
		query = query.Where(sq.Or{
			sq.Like{"LOWER(subscriber_name)": needle},
			sq.Like{"LOWER(username)": needle},
			sq.Like{"LOWER(id)": needle},
		})
	}
	return query
}

// List returns one page of payments filtered by status, method and
// free text (subscriber, username or payment id).
func (r *PaymentRepository) List(ctx context.Context, q listview.ViewQuery, method listview.ChoiceFilter) (listview.PageResult[models.Payment], error) {
	now := time.Now()
	pageSize := listview.DefaultPageSize

	countQuery := applyPaymentView(
		sq.Select("COUNT(*)").From("payments"), q, method, now,
	).PlaceholderFormat(sq.Question)

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return listview.PageResult[models.Payment]{}, fmt.Errorf("query build failed: %w", err)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return listview.PageResult[models.Payment]{}, fmt.Errorf("count failed: %w", err)
	}

	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	listQuery := applyPaymentView(
		sq.Select(paymentColumns...).From("payments"), q, method, now,
	).
		OrderBy("created_at DESC", "id").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize)).
		PlaceholderFormat(sq.Question)

	listSQL, listArgs, err := listQuery.ToSql()
	if err != nil {
		return listview.PageResult[models.Payment]{}, fmt.Errorf("query build failed: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, listSQL, listArgs...)
	if err != nil {
		return listview.PageResult[models.Payment]{}, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	if err := scan.Rows(&payments, rows); err != nil {
		return listview.PageResult[models.Payment]{}, fmt.Errorf("scan failed: %w", err)
	}

	return listview.PageResult[models.Payment]{
		Rows:       payments,
		Page:       page,
		TotalPages: totalPages,
		TotalCount: total,
	}, nil
}

// HistoryBySubscriber returns a subscriber's payments, newest first.
func (r *PaymentRepository) HistoryBySubscriber(ctx context.Context, subscriberID string) ([]models.Payment, error) {
	query := sq.Select(paymentColumns...).
		From("payments").
		Where(sq.Eq{"subscriber_id": subscriberID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Question)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("query build failed: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	if err := scan.Rows(&payments, rows); err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	return payments, nil
}

// Create records a new payment row.
func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	query := sq.Insert("payments").
		Columns(paymentColumns...).
		Values(p.ID, p.SubscriberID, p.SubscriberName, p.Username, p.PlanID,
			p.PlanName, p.AmountCents, p.Method, p.Status, p.CreatedAt).
		PlaceholderFormat(sq.Question)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("query build failed: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("insert failed: %w", err)
	}
	return nil
}

// SumCompletedSince powers the revenue KPI card.
func (r *PaymentRepository) SumCompletedSince(ctx context.Context, since time.Time) (int64, error) {
	var total sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		"SELECT SUM(amount_cents) FROM payments WHERE status = ? AND created_at >= ?",
		models.PaymentStatusCompleted, since,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum failed: %w", err)
	}
	return total.Int64, nil
}
