package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/restodine/admin-service/internal/model"
	"github.com/restodine/admin-service/internal/receipt/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

// receiptRow carries the JSONB payload alongside the persisted columns.
type receiptRow struct {
	ID         string     `db:"id"`
	MerchantID string     `db:"merchant_id"`
	Data       []byte     `db:"data"`
	PrintedAt  *time.Time `db:"printed_at"`
	CreatedAt  time.Time  `db:"created_at"`
}

func (row *receiptRow) toModel() (*model.Receipt, error) {
	rec := &model.Receipt{
		ID:         row.ID,
		MerchantID: row.MerchantID,
		PrintedAt:  row.PrintedAt,
		CreatedAt:  row.CreatedAt,
	}
	if err := json.Unmarshal(row.Data, &rec.Data); err != nil {
		return nil, fmt.Errorf("failed to decode receipt data: %w", err)
	}
	return rec, nil
}

func (r *PGRepository) Create(ctx context.Context, rec *model.Receipt) error {
	data, err := json.Marshal(rec.Data)
	if err != nil {
		return fmt.Errorf("failed to encode receipt data: %w", err)
	}

	query := `
        INSERT INTO receipts (id, merchant_id, data, printed_at, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `
	_, err = r.DB.ExecContext(ctx, query, rec.ID, rec.MerchantID, data, rec.PrintedAt, rec.CreatedAt)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Receipt, error) {
	var row receiptRow
	query := `SELECT * FROM receipts WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row.toModel()
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ReceiptFilters) ([]model.Receipt, int, error) {
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.MerchantID != "" {
		conditions = append(conditions, "merchant_id = :merchant_id")
		args["merchant_id"] = f.MerchantID
	}
	if f.From != nil {
		conditions = append(conditions, "created_at >= :from_time")
		args["from_time"] = *f.From
	}
	if f.To != nil {
		conditions = append(conditions, "created_at < :to_time")
		args["to_time"] = *f.To
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM receipts" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM receipts" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	var dbRows []receiptRow
	if err := nstmt.SelectContext(ctx, &dbRows, args); err != nil {
		return nil, 0, err
	}

	receipts := make([]model.Receipt, 0, len(dbRows))
	for i := range dbRows {
		rec, err := dbRows[i].toModel()
		if err != nil {
			return nil, 0, err
		}
		receipts = append(receipts, *rec)
	}

	return receipts, count, nil
}

// MarkPrinted performs the unset-to-set transition atomically. Repeated calls
// affect zero rows and report false.
func (r *PGRepository) MarkPrinted(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE receipts SET printed_at = now() WHERE id = $1 AND printed_at IS NULL`, id,
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}
