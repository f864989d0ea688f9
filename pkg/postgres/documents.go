package postgres

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hopehub/hopehub/pkg/db"
)

var fieldNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// trimChars is the whitespace set btrim strips for TrimSpace filters.
// It must match the expression in 003_index_trimmed_url.sql.
const trimChars = `E' \t\n\r\f'`

// InsertDocument stores fields in collection under a new id.
// The creation timestamp is assigned by the database.
func (d *DB) InsertDocument(ctx context.Context, collection string, fields map[string]any) (db.Document, error) {
	data := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == db.FieldID || k == db.FieldCreatedAt {
			continue
		}
		data[k] = v
	}

	id := uuid.New().String()
	var createdAt time.Time
	err := d.pool.QueryRow(ctx, `
		INSERT INTO documents (id, collection, data)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`, id, collection, data).Scan(&createdAt)
	if err != nil {
		return db.Document{}, fmt.Errorf("failed to insert document into %s: %w", collection, err)
	}

	return db.Document{
		ID:        id,
		CreatedAt: createdAt.UTC(),
		Fields:    data,
	}, nil
}

// QueryDocuments retrieves documents from one collection
func (d *DB) QueryDocuments(ctx context.Context, q db.Query) ([]db.Document, error) {
	sql, args, err := buildQuery(q)
	if err != nil {
		return nil, err
	}

	rows, err := d.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", q.Collection, err)
	}
	defer rows.Close()

	var docs []db.Document
	for rows.Next() {
		var doc db.Document
		var createdAt *time.Time
		if err := rows.Scan(&doc.ID, &doc.Fields, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan document from %s: %w", q.Collection, err)
		}
		if createdAt != nil {
			doc.CreatedAt = createdAt.UTC()
		}
		if doc.Fields == nil {
			doc.Fields = map[string]any{}
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", q.Collection, err)
	}

	return docs, nil
}

// buildQuery renders q as a parameterised SELECT over the documents table
func buildQuery(q db.Query) (string, []any, error) {
	var sb strings.Builder
	args := []any{q.Collection}

	sb.WriteString(`SELECT id::text, data, created_at FROM documents WHERE collection = $1`)

	if q.Where != nil {
		switch q.Where.Field {
		case db.FieldID:
			args = append(args, fmt.Sprint(q.Where.Value))
			fmt.Fprintf(&sb, ` AND id::text = $%d`, len(args))
		case db.FieldCreatedAt:
			t, ok := q.Where.Value.(time.Time)
			if !ok {
				return "", nil, fmt.Errorf("createdAt filter requires a time value, got %T", q.Where.Value)
			}
			args = append(args, t)
			fmt.Fprintf(&sb, ` AND created_at = $%d`, len(args))
		default:
			if !fieldNamePattern.MatchString(q.Where.Field) {
				return "", nil, fmt.Errorf("invalid filter field %q", q.Where.Field)
			}
			// field names are inlined so the expression indexes apply
			value := fmt.Sprint(q.Where.Value)
			if q.Where.TrimSpace {
				args = append(args, strings.TrimSpace(value))
				fmt.Fprintf(&sb, ` AND btrim(data->>'%s', %s) = $%d`, q.Where.Field, trimChars, len(args))
			} else {
				args = append(args, value)
				fmt.Fprintf(&sb, ` AND data->>'%s' = $%d`, q.Where.Field, len(args))
			}
		}
	}

	switch {
	case q.OrderByDesc == "":
	case q.OrderByDesc == db.FieldCreatedAt:
		sb.WriteString(` ORDER BY created_at DESC`)
	case fieldNamePattern.MatchString(q.OrderByDesc):
		fmt.Fprintf(&sb, ` ORDER BY data->'%s' DESC`, q.OrderByDesc)
	default:
		return "", nil, fmt.Errorf("%w %q", db.ErrUnorderable, q.OrderByDesc)
	}

	if q.Limit > 0 {
		args = append(args, q.Limit)
		fmt.Fprintf(&sb, ` LIMIT $%d`, len(args))
	}

	return sb.String(), args, nil
}
