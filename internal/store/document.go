package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/car-service/apiserver/types"
)

// DocumentRepository handles persistence for mechanic document metadata.
// The file bytes themselves live in the blob store.
type DocumentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) List(ctx context.Context) ([]types.Document, error) {
	const query = `
		SELECT id, mechanic_id, type, file_key
		FROM documents
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	documents := make([]types.Document, 0)
	for rows.Next() {
		var document types.Document
		if err := rows.Scan(
			&document.ID,
			&document.MechanicID,
			&document.Type,
			&document.FileKey,
		); err != nil {
			return nil, err
		}
		documents = append(documents, document)
	}
	return documents, rows.Err()
}

func (r *DocumentRepository) Get(ctx context.Context, id int) (types.Document, error) {
	const query = `
		SELECT id, mechanic_id, type, file_key
		FROM documents
		WHERE id = $1`
	var document types.Document
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&document.ID,
		&document.MechanicID,
		&document.Type,
		&document.FileKey,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Document{}, ErrNotFound
		}
		return types.Document{}, err
	}
	return document, nil
}

// ExistsByMechanicAndType reports whether the mechanic already has a
// document of the given type.
func (r *DocumentRepository) ExistsByMechanicAndType(ctx context.Context, mechanicID int, docType string, excludeID int) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM documents WHERE mechanic_id = $1 AND type = $2 AND id <> $3)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, mechanicID, docType, excludeID).Scan(&exists)
	return exists, err
}

// ExistsByFileKey reports whether another document already references the
// blob key.
func (r *DocumentRepository) ExistsByFileKey(ctx context.Context, fileKey string, excludeID int) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM documents WHERE file_key = $1 AND id <> $2)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, fileKey, excludeID).Scan(&exists)
	return exists, err
}

func (r *DocumentRepository) Create(ctx context.Context, document types.Document) (types.Document, error) {
	const query = `
		INSERT INTO documents (mechanic_id, type, file_key)
		VALUES ($1, $2, $3)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		document.MechanicID,
		document.Type,
		document.FileKey,
	).Scan(&document.ID); err != nil {
		return types.Document{}, mapUniqueViolation(err)
	}
	return document, nil
}

func (r *DocumentRepository) Update(ctx context.Context, document types.Document) (types.Document, error) {
	const query = `
		UPDATE documents
		SET mechanic_id = $1,
			type = $2,
			file_key = $3
		WHERE id = $4`
	result, err := r.db.ExecContext(
		ctx,
		query,
		document.MechanicID,
		document.Type,
		document.FileKey,
		document.ID,
	)
	if err != nil {
		return types.Document{}, mapUniqueViolation(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Document{}, err
	}
	if affected == 0 {
		return types.Document{}, ErrNotFound
	}
	return document, nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM documents WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
