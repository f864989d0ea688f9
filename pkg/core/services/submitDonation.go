package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/hopehub/hopehub/pkg/db"
)

// DonationSubmittedMessage is shown once a pledge has been saved
const DonationSubmittedMessage = "Thank you! Your donation offer has been submitted. The requester will contact you soon."


// DonationForm holds the raw values entered by a donor
type DonationForm struct {
	DonorName     string
	DonorContact  string
	DonorLocation string
	DonationItems string
	Message       string
}

// SubmitDonation validates a pledge against request and saves it.
// Save failures are logged and reported with a generic message.
func SubmitDonation(
	ctx context.Context,
	store db.DocumentStore,
	logger *zap.Logger,
	collections db.Collections,
	request db.Request,
	form DonationForm,
) (*db.Donation, error) {
	if request.ID == "" {
		return nil, &ValidationError{Field: "requestId", Message: "Please choose a request to donate to."}
	}

	donorName := strings.TrimSpace(form.DonorName)
	donorContact := strings.TrimSpace(form.DonorContact)
	donationItems := strings.TrimSpace(form.DonationItems)
	if donorName == "" || donorContact == "" || donationItems == "" {
		return nil, &ValidationError{
			Field:   "form",
			Message: "Please fill in your name, contact, and what you want to donate.",
		}
	}

	donorLocation := optionalString(form.DonorLocation)
	message := optionalString(form.Message)
	requestName := strings.TrimSpace(request.Name)

	fields := map[string]any{
		"requestId":     request.ID,
		"requestName":   requestName,
		"requestType":   string(request.RequestType),
		"donorName":     donorName,
		"donorContact":  donorContact,
		"donorLocation": donorLocation,
		"donationItems": donationItems,
		"message":       message,
		"status":        string(db.DonationStatusPending),
	}

	logger.Debug("Saving donation", zap.String("request_id", request.ID))
	doc, err := store.InsertDocument(ctx, collections.Donations, fields)
	if err != nil {
		logger.Error("Failed to save donation",
			zap.String("request_id", request.ID),
			zap.Error(err))
		return nil, &PersistError{Message: "Something went wrong. Please try again.", Err: err}
	}

	logger.Info("Donation submitted",
		zap.String("donation_id", doc.ID),
		zap.String("request_id", request.ID))

	return &db.Donation{
		ID:            doc.ID,
		RequestID:     request.ID,
		RequestName:   requestName,
		RequestType:   request.RequestType,
		DonorName:     donorName,
		DonorContact:  donorContact,
		DonorLocation: donorLocation,
		DonationItems: donationItems,
		Message:       message,
		Status:        db.DonationStatusPending,
		CreatedAt:     doc.CreatedAt,
	}, nil
}

// optionalString trims s and returns nil when nothing is left
func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
