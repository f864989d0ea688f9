package db

import "time"

// RequestType identifies who is asking for aid
type RequestType string

const (
	RequestTypeStudent RequestType = "student"
	RequestTypeSchool  RequestType = "school"
	RequestTypeLibrary RequestType = "library"
)

// RequestTypes lists every valid request type in display order
var RequestTypes = []RequestType{RequestTypeStudent, RequestTypeSchool, RequestTypeLibrary}

// Valid reports whether t is one of the known request types
func (t RequestType) Valid() bool {
	for _, rt := range RequestTypes {
		if t == rt {
			return true
		}
	}
	return false
}

// RequestStatus is the lifecycle state of an aid request
type RequestStatus string

const (
	RequestStatusOpen      RequestStatus = "open"
	RequestStatusFulfilled RequestStatus = "fulfilled"
)

// DonationStatus is the lifecycle state of a pledge
type DonationStatus string

const (
	DonationStatusPending   DonationStatus = "pending"
	DonationStatusFulfilled DonationStatus = "fulfilled"
)

// Request represents an aid request document
type Request struct {
	ID            string        `json:"id" validate:"required"`
	RequestType   RequestType   `json:"requestType" validate:"required,oneof=student school library"`
	Name          string        `json:"name" validate:"required"`
	ContactNumber string        `json:"contactNumber" validate:"required"`
	District      string        `json:"district" validate:"required"`
	CityTown      string        `json:"cityTown" validate:"required"`
	MapLink       *string       `json:"mapLink"`
	Items         []string      `json:"items" validate:"required,min=1,dive,required"`
	Description   string        `json:"description" validate:"required"`
	ProofFiles    []string      `json:"proofFiles" validate:"required,min=1,dive,required"`
	Status        RequestStatus `json:"status" validate:"oneof=open fulfilled"`
	CreatedAt     time.Time     `json:"createdAt"`

	// DonationCount is derived from the donations collection and never stored
	DonationCount int `json:"-"`
}

func (r *Request) applyDefaults() {
	if r.Status == "" {
		r.Status = RequestStatusOpen
	}
}

// Donation represents a donor's pledge against a request
type Donation struct {
	ID            string         `json:"id" validate:"required"`
	RequestID     string         `json:"requestId" validate:"required"`
	RequestName   string         `json:"requestName"`
	RequestType   RequestType    `json:"requestType"`
	DonorName     string         `json:"donorName" validate:"required"`
	DonorContact  string         `json:"donorContact" validate:"required"`
	DonorLocation *string        `json:"donorLocation"`
	DonationItems string         `json:"donationItems" validate:"required"`
	Message       *string        `json:"message"`
	Status        DonationStatus `json:"status" validate:"oneof=pending fulfilled"`
	CreatedAt     time.Time      `json:"createdAt"`
}

func (d *Donation) applyDefaults() {
	if d.Status == "" {
		d.Status = DonationStatusPending
	}
}

// Campaign represents a fundraising campaign listed alongside requests
type Campaign struct {
	ID          string    `json:"id" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	Organizer   string    `json:"organizer"`
	Contact     string    `json:"contact"`
	District    string    `json:"district"`
	City        string    `json:"city"`
	Goal        string    `json:"goal"`
	Link        string    `json:"link"`
	Description string    `json:"description"`
	PosterURL   string    `json:"posterUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

// EducationWebsite is a shared link to a learning site
type EducationWebsite struct {
	ID             string    `json:"id" validate:"required"`
	URL            string    `json:"url" validate:"required"`
	Subject        string    `json:"subject"`
	Level          string    `json:"level"`
	Grade          string    `json:"grade"`
	Year           string    `json:"year"`
	Medium         string    `json:"medium"`
	UniversityName string    `json:"universityName"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"createdAt"`
}

// FileUpload is a study material file hosted by the media service
type FileUpload struct {
	ID          string    `json:"id" validate:"required"`
	URL         string    `json:"url" validate:"required"`
	FileName    string    `json:"fileName"`
	FileType    string    `json:"fileType"`
	FileSize    int64     `json:"fileSize"`
	Subject     string    `json:"subject"`
	Grade       string    `json:"grade"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// OneDriveLink is a shared cloud-drive folder or file
type OneDriveLink struct {
	ID          string    `json:"id" validate:"required"`
	URL         string    `json:"url" validate:"required"`
	Title       string    `json:"title"`
	Subject     string    `json:"subject"`
	Grade       string    `json:"grade"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// WhatsappGroup is an invite link to a study chat group
type WhatsappGroup struct {
	ID          string    `json:"id" validate:"required"`
	URL         string    `json:"url" validate:"required"`
	Name        string    `json:"name"`
	Subject     string    `json:"subject"`
	Grade       string    `json:"grade"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}
