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

var subscriberColumns = []string{
	"id", "name", "phone", "email", "pppoe_username",
	"current_plan", "status", "expiry_date", "created_at",
}

type SubscriberRepository struct {
	db *sql.DB
}

func NewSubscriberRepository(db *sql.DB) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

// applyView translates the console's view parameters into WHERE
// clauses, mirroring the in-memory predicate builder: the mode filter
// first, then user filters, then search; every dimension only narrows.
func applySubscriberView(query sq.SelectBuilder, mode string, q listview.ViewQuery, now time.Time) sq.SelectBuilder {
	if mode != "" && mode != "all" {
		query = query.Where(sq.Eq{"status": mode})
	}
	if q.Status != listview.ChoiceAll && q.Status != "" {
		query = query.Where(sq.Eq{"status": string(q.Status)})
	}
	if q.Category != listview.CategoryAll && q.Category != "" {
		query = query.Where(sq.Like{"LOWER(current_plan)": "%" + string(q.Category) + "%"})
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
			sq.Like{"LOWER(name)": needle},
			sq.Like{"LOWER(pppoe_username)": needle},
			sq.Like{"LOWER(phone)": needle},
		})
	}
	return query
}

// List returns one page of subscribers plus the filtered total. The
// requested page is clamped against the real page count, exactly like
// the in-memory paginator.
func (r *SubscriberRepository) List(ctx context.Context, mode string, q listview.ViewQuery) (listview.PageResult[models.Subscriber], error) {
	now := time.Now()
	pageSize := listview.DefaultPageSize

	countQuery := applySubscriberView(
		sq.Select("COUNT(*)").From("subscribers"), mode, q, now,
	).PlaceholderFormat(sq.Question)

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return listview.PageResult[models.Subscriber]{}, fmt.Errorf("query build failed: %w", err)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return listview.PageResult[models.Subscriber]{}, fmt.Errorf("count failed: %w", err)
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

	listQuery := applySubscriberView(
		sq.Select(subscriberColumns...).From("subscribers"), mode, q, now,
	).
		OrderBy("created_at DESC", "id").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize)).
		PlaceholderFormat(sq.Question)

	listSQL, listArgs, err := listQuery.ToSql()
	if err != nil {
		return listview.PageResult[models.Subscriber]{}, fmt.Errorf("query build failed: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, listSQL, listArgs...)
	if err != nil {
		return listview.PageResult[models.Subscriber]{}, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var subscribers []models.Subscriber
	if err := scan.Rows(&subscribers, rows); err != nil {
		return listview.PageResult[models.Subscriber]{}, fmt.Errorf("scan failed: %w", err)
	}

	return listview.PageResult[models.Subscriber]{
		Rows:       subscribers,
		Page:       page,
		TotalPages: totalPages,
		TotalCount: total,
	}, nil
}

func (r *SubscriberRepository) Get(ctx context.Context, id string) (*models.Subscriber, error) {
	query := sq.Select(subscriberColumns...).
		From("subscribers").
		Where(sq.Eq{"id": id}).
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

	var sub models.Subscriber
	if err := scan.Row(&sub, rows); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	return &sub, nil
}

func (r *SubscriberRepository) Create(ctx context.Context, sub *models.Subscriber) error {
	query := sq.Insert("subscribers").
		Columns(subscriberColumns...).
		Values(sub.ID, sub.Name, sub.Phone, sub.Email, sub.PPPoEUsername,
			sub.CurrentPlan, sub.Status, sub.ExpiryDate, sub.CreatedAt).
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

// UpdateStatus sets a subscriber's status. Writing a status the row
// already has is a no-op, which keeps bulk suspend/restore idempotent
// per id.
func (r *SubscriberRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := sq.Update("subscribers").
		Set("status", status).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Question)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("query build failed: %w", err)
	}

	res, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	if affected == 0 {
		// MySQL reports 0 for both "no such row" and "no change";
		// disambiguate so a bad id surfaces in bulk results.
		exists, err := r.exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("subscriber %s not found", id)
		}
	}
	return nil
}

// AssignPlan switches a subscriber's current plan.
func (r *SubscriberRepository) AssignPlan(ctx context.Context, id, planName string) error {
	query := sq.Update("subscribers").
		Set("current_plan", planName).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Question)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("query build failed: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	exists, err := r.exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("subscriber %s not found", id)
	}
	return nil
}

// Update applies a partial update; only non-nil fields are written.
func (r *SubscriberRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	query := sq.Update("subscribers").
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

func (r *SubscriberRepository) exists(ctx context.Context, id string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM subscribers WHERE id = ?", id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("existence check failed: %w", err)
	}
	return n > 0, nil
}

// CountByStatus powers the dashboard KPI cards.
func (r *SubscriberRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM subscribers WHERE status = ?", status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count failed: %w", err)
	}
	return n, nil
}
