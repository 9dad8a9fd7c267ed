package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/blockloop/scan/v2"

	"github.com/kmwangi/netbill-golang/internal/models"
)

var planColumns = []string{
	"id", "name", "slug", "download_mbps", "upload_mbps",
	"price_cents", "validity_days", "created_at",
}

type PlanRepository struct {
	db *sql.DB
}

func NewPlanRepository(db *sql.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) List(ctx context.Context) ([]models.Plan, error) {
	query := sq.Select(planColumns...).
		From("plans").
		OrderBy("price_cents ASC").
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

	var plans []models.Plan
	if err := scan.Rows(&plans, rows); err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	return plans, nil
}

func (r *PlanRepository) Get(ctx context.Context, id string) (*models.Plan, error) {
	query := sq.Select(planColumns...).
		From("plans").
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

	var plan models.Plan
	if err := scan.Row(&plan, rows); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	return &plan, nil
}

func (r *PlanRepository) GetBySlug(ctx context.Context, slug string) (*models.Plan, error) {
	query := sq.Select(planColumns...).
		From("plans").
		Where(sq.Eq{"slug": slug}).
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

	var plan models.Plan
	if err := scan.Row(&plan, rows); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	return &plan, nil
}

func (r *PlanRepository) Create(ctx context.Context, plan *models.Plan) error {
	query := sq.Insert("plans").
		Columns(planColumns...).
		Values(plan.ID, plan.Name, plan.Slug, plan.DownloadMbps, plan.UploadMbps,
			plan.PriceCents, plan.ValidityDays, plan.CreatedAt).
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
