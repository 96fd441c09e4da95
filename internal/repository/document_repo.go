package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"house-admin/internal/model"
)

type DocumentRepository struct {
	pool *pgxpool.Pool
}

func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

func (r *DocumentRepository) List(ctx context.Context) ([]model.Document, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, filename, content_type, uploaded_by, created_at, updated_at
		 FROM documents ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs := make([]model.Document, 0)
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(&d.ID, &d.Title, &d.Filename, &d.ContentType, &d.UploadedBy, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (r *DocumentRepository) FindByID(ctx context.Context, id string) (model.Document, error) {
	var d model.Document
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, filename, content_type, uploaded_by, created_at, updated_at
		 FROM documents WHERE id = $1`, id).
		Scan(&d.ID, &d.Title, &d.Filename, &d.ContentType, &d.UploadedBy, &d.CreatedAt, &d.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Document{}, model.ErrDocumentNotFound
	}
	if err != nil {
		return model.Document{}, fmt.Errorf("find document by id: %w", err)
	}
	return d, nil
}

func (r *DocumentRepository) Create(ctx context.Context, d model.Document) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO documents (id, title, filename, content_type, uploaded_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		d.ID, d.Title, d.Filename, d.ContentType, d.UploadedBy, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

func (r *DocumentRepository) Update(ctx context.Context, d model.Document) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE documents SET title = $2, filename = $3, content_type = $4, updated_at = $5
		 WHERE id = $1`,
		d.ID, d.Title, d.Filename, d.ContentType, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrDocumentNotFound
	}
	return nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrDocumentNotFound
	}
	return nil
}
