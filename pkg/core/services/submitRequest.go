package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/hopehub/hopehub/pkg/core/directory"
	"github.com/hopehub/hopehub/pkg/db"
	"github.com/hopehub/hopehub/pkg/media"
)

// RequestSubmittedMessage is shown once a request has been saved
const RequestSubmittedMessage = "Your request has been submitted successfully! Thank you for reaching out."

// FileTooLargeMessage is shown when a proof file is over the upload limit
const FileTooLargeMessage = "File size exceeds 10MB limit. Please upload a smaller file."

// RequestForm holds the raw values entered for a new aid request
type RequestForm struct {
	RequestType db.RequestType
	Name        string
	Contact     string
	District    string
	City        string
	MapLink     string
	Description string
	Items       []string
}

// FileProgressFunc receives upload progress for the proof file at index
type FileProgressFunc func(index, percent int)

// ProofAllowList returns the proof file types accepted for a request type
func ProofAllowList(requestType db.RequestType) media.AllowList {
	if requestType == db.RequestTypeStudent {
		return media.StudentProofTypes
	}
	return media.InstitutionProofTypes
}

// SubmitRequest validates a request form, uploads its proof files one at a time
// and saves the request. Nothing is uploaded or saved if validation fails, and
// nothing is saved if any upload fails.
func SubmitRequest(
	ctx context.Context,
	store db.DocumentStore,
	uploader media.Uploader,
	logger *zap.Logger,
	collections db.Collections,
	form RequestForm,
	files []media.File,
	onProgress FileProgressFunc,
) (*db.Request, error) {
	logger.Debug("Submitting request",
		zap.String("request_type", string(form.RequestType)),
		zap.Int("item_count", len(form.Items)),
		zap.Int("file_count", len(files)))

	// Step 1: Validate the form before touching any gateway
	requestType, items, err := validateRequestForm(form, files)
	if err != nil {
		logger.Debug("Request form rejected", zap.Error(err))
		return nil, err
	}

	// Step 2: Upload proof files sequentially
	proofURLs := make([]string, 0, len(files))
	for i, file := range files {
		logger.Info("Uploading file",
			zap.Int("file", i+1),
			zap.Int("of", len(files)),
			zap.String("name", file.Name))

		index := i
		result, err := uploader.Upload(ctx, file, func(percent int) {
			if onProgress != nil {
				onProgress(index, percent)
			}
		})
		if err != nil {
			logger.Error("Failed to upload proof file",
				zap.Int("index", i),
				zap.String("name", file.Name),
				zap.Error(err))
			return nil, &UploadError{FileName: file.Name, Index: i, Err: err}
		}

		proofURLs = append(proofURLs, result.URL)
		if onProgress != nil {
			onProgress(i, 100)
		}
	}

	// Step 3: Save the request
	var mapLink *string
	if link := strings.TrimSpace(form.MapLink); link != "" {
		mapLink = &link
	}

	fields := map[string]any{
		"requestType":   string(requestType),
		"name":          strings.TrimSpace(form.Name),
		"contactNumber": strings.TrimSpace(form.Contact),
		"district":      form.District,
		"cityTown":      strings.TrimSpace(form.City),
		"mapLink":       mapLink,
		"items":         items,
		"description":   strings.TrimSpace(form.Description),
		"proofFiles":    proofURLs,
		"status":        string(db.RequestStatusOpen),
	}

	logger.Debug("Saving request", zap.String("collection", collections.Requests))
	doc, err := store.InsertDocument(ctx, collections.Requests, fields)
	if err != nil {
		logger.Error("Failed to save request", zap.Error(err))
		return nil, &PersistError{Message: err.Error(), Err: err}
	}

	logger.Info("Request submitted", zap.String("request_id", doc.ID))

	return &db.Request{
		ID:            doc.ID,
		RequestType:   requestType,
		Name:          fields["name"].(string),
		ContactNumber: fields["contactNumber"].(string),
		District:      form.District,
		CityTown:      fields["cityTown"].(string),
		MapLink:       mapLink,
		Items:         items,
		Description:   fields["description"].(string),
		ProofFiles:    proofURLs,
		Status:        db.RequestStatusOpen,
		CreatedAt:     doc.CreatedAt,
	}, nil
}

// validateRequestForm applies the submission checks in order, first failure wins.
// It returns the effective request type and the cleaned item list.
func validateRequestForm(form RequestForm, files []media.File) (db.RequestType, []string, error) {
	if isBlank(form.Name) || isBlank(form.Contact) || isBlank(form.District) ||
		isBlank(form.City) || isBlank(form.Description) {
		return "", nil, &ValidationError{Field: "form", Message: "Please fill in all required fields."}
	}

	if !directory.IsDistrict(form.District) {
		return "", nil, &ValidationError{Field: "district", Message: "Please select a valid district."}
	}

	requestType := form.RequestType
	if requestType == "" {
		requestType = db.RequestTypeStudent
	}
	if !requestType.Valid() {
		return "", nil, &ValidationError{Field: "requestType", Message: "Please select a valid request type."}
	}

	items := make([]string, 0, len(form.Items))
	for _, item := range form.Items {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return "", nil, &ValidationError{Field: "items", Message: "Please add at least one item needed."}
	}

	if len(files) == 0 {
		return "", nil, &ValidationError{Field: "proofFiles", Message: "Proof of disaster is required."}
	}

	allowed := ProofAllowList(requestType)
	for _, file := range files {
		if err := media.ValidateFile(file, allowed); err != nil {
			return "", nil, &ValidationError{Field: "proofFiles", Message: fileErrorMessage(err, allowed)}
		}
	}

	return requestType, items, nil
}

// fileErrorMessage turns a media validation error into the message shown on the form
func fileErrorMessage(err error, allowed media.AllowList) string {
	switch {
	case errors.Is(err, media.ErrFileTooLarge):
		return FileTooLargeMessage
	case errors.Is(err, media.ErrUnsupportedType):
		return allowed.Message
	case errors.Is(err, media.ErrNoFile):
		return "No file provided"
	default:
		return err.Error()
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
