package db

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrMalformedDocument is returned when a stored document does not match its record schema
var ErrMalformedDocument = errors.New("malformed document")

var validate = validator.New()

type defaulter interface {
	applyDefaults()
}

// Decode maps a document onto the record type T and validates required fields.
// The document id and timestamp are copied into the record's id and createdAt fields.
func Decode[T any](doc Document) (T, error) {
	var record T

	fields := make(map[string]any, len(doc.Fields)+2)
	for k, v := range doc.Fields {
		fields[k] = v
	}
	fields[FieldID] = doc.ID
	if doc.CreatedAt.IsZero() {
		delete(fields, FieldCreatedAt)
	} else {
		fields[FieldCreatedAt] = doc.CreatedAt
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return record, fmt.Errorf("%w %s: %v", ErrMalformedDocument, doc.ID, err)
	}
	if err := json.Unmarshal(raw, &record); err != nil {
		return record, fmt.Errorf("%w %s: %v", ErrMalformedDocument, doc.ID, err)
	}

	if d, ok := any(&record).(defaulter); ok {
		d.applyDefaults()
	}

	if err := validate.Struct(&record); err != nil {
		return record, fmt.Errorf("%w %s: %v", ErrMalformedDocument, doc.ID, err)
	}

	return record, nil
}

// DecodeAll decodes every document, returning the well-formed records and the
// errors for the documents that were rejected
func DecodeAll[T any](docs []Document) ([]T, []error) {
	records := make([]T, 0, len(docs))
	var errs []error
	for _, doc := range docs {
		record, err := Decode[T](doc)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		records = append(records, record)
	}
	return records, errs
}
