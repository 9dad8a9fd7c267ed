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

var subscriptionColumns = []string{
	"id", "subscriber_id", "subscriber_name", "username", "plan_name",
	"status", "start_date", "expiry_date", "grace_ends_at", "last_payment",
}

type SubscriptionRepository struct {
	db *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func applySubscriptionView(query sq.SelectBuilder, mode string, q listview.ViewQuery, now time.Time) sq.SelectBuilder {
	// The renewals and history views show every status; the others are
	// status-locked page variants.
	switch mode {
	case models.SubscriptionStatusActive, models.SubscriptionStatusExpired, models.SubscriptionStatusGrace:
		query = query.Where(sq.Eq{"status": mode})
	}
	if cutoff, ok := q.Range.Cutoff(now); ok {
		// Fail-open: rows without a usable start date stay visible.
		query = query.Where(sq.Or{
			sq.GtOrEq{"start_date": cutoff},
			sq.Eq{"start_date": nil},
		})
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		needle := "%" + strings.ToLower(s) + "%"
		query = query.Where(sq.Or{
			sq.Like{"LOWER(subscriber_name)": needle},
			sq.Like{"LOWER(username)": needle},
			sq.Like{"LOWER(plan_name)": needle},
		})
	}
	return query
}

// List returns one page of subscriptions for a console view mode.
func (r *SubscriptionRepository) List(ctx context.Context, mode string, q listview.ViewQuery) (listview.PageResult[models.Subscription], error) {
	now := time.Now()
	pageSize := listview.DefaultPageSize

	countQuery := applySubscriptionView(
		sq.Select("COUNT(*)").From("subscriptions"), mode, q, now,
	).PlaceholderFormat(sq.Question)

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return listview.PageResult[models.Subscription]{}, fmt.Errorf("query build failed: %w", err)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return listview.PageResult[models.Subscription]{}, fmt.Errorf("count failed: %w", err)
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

	listQuery := applySubscriptionView(
		sq.Select(subscriptionColumns...).From("subscriptions"), mode, q, now,
	).
		OrderBy("expiry_date DESC", "id").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize)).
		PlaceholderFormat(sq.Question)

	listSQL, listArgs, err := listQuery.ToSql()
	if err != nil {
		return listview.PageResult[models.Subscription]{}, fmt.Errorf("query build failed: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, listSQL, listArgs...)
	if err != nil {
		return listview.PageResult[models.Subscription]{}, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var subs []models.Subscription
	if err := scan.Rows(&subs, rows); err != nil {
		return listview.PageResult[models.Subscription]{}, fmt.Errorf("scan failed: %w", err)
	}

	return listview.PageResult[models.Subscription]{
		Rows:       subs,
		Page:       page,
		TotalPages: totalPages,
		TotalCount: total,
	}, nil
}

// GetDueForGrace returns active subscriptions whose expiry date has
// passed; the sweep moves them into the grace window.
func (r *SubscriptionRepository) GetDueForGrace(ctx context.Context, now time.Time) ([]models.Subscription, error) {
	return r.getDue(ctx, sq.And{
		sq.Eq{"status": models.SubscriptionStatusActive},
		sq.Lt{"expiry_date": now},
	})
}

// GetDueForExpiry returns grace subscriptions whose grace window has
// closed.
func (r *SubscriptionRepository) GetDueForExpiry(ctx context.Context, now time.Time) ([]models.Subscription, error) {
	return r.getDue(ctx, sq.And{
		sq.Eq{"status": models.SubscriptionStatusGrace},
		sq.Lt{"grace_ends_at": now},
	})
}

func (r *SubscriptionRepository) getDue(ctx context.Context, cond sq.Sqlizer) ([]models.Subscription, error) {
	query := sq.Select(subscriptionColumns...).
		From("subscriptions").
		Where(cond).
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

	var subs []models.Subscription
	if err := scan.Rows(&subs, rows); err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	return subs, nil
}

// MarkGrace moves a subscription into the grace window.
func (r *SubscriptionRepository) MarkGrace(ctx context.Context, id string, graceEndsAt time.Time) error {
	return r.update(ctx, id, map[string]interface{}{
		"status":        models.SubscriptionStatusGrace,
		"grace_ends_at": graceEndsAt,
	})
}

// MarkExpired closes a subscription.
func (r *SubscriptionRepository) MarkExpired(ctx context.Context, id string) error {
	return r.update(ctx, id, map[string]interface{}{
		"status": models.SubscriptionStatusExpired,
	})
}

func (r *SubscriptionRepository) update(ctx context.Context, id string, fields map[string]interface{}) error {
	query := sq.Update("subscriptions").
		SetMap(fields).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Question)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("query build failed: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	return nil
}

// CountByStatus powers the dashboard KPI cards.
func (r *SubscriptionRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM subscriptions WHERE status = ?", status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count failed: %w", err)
	}
	return n, nil
}
