package media

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// MaxFileSize is the largest blob the media host accepts on the free tier
const MaxFileSize int64 = 10 * 1024 * 1024

const (
	MIMEPDF  = "application/pdf"
	MIMEDOC  = "application/msword"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEPPT  = "application/vnd.ms-powerpoint"
	MIMEPPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	MIMEJPEG = "image/jpeg"
	MIMEJPG  = "image/jpg"
	MIMEPNG  = "image/png"
)

// AllowList is a set of accepted MIME types with the message shown on rejection
type AllowList struct {
	Types   []string
	Message string
}

// Allows reports whether contentType is on the list
func (a AllowList) Allows(contentType string) bool {
	return slices.Contains(a.Types, contentType)
}

var (
	// DocumentTypes is the generic upload allow-list
	DocumentTypes = AllowList{
		Types:   []string{MIMEPDF, MIMEDOC, MIMEDOCX, MIMEPPT, MIMEPPTX, MIMEJPEG, MIMEPNG, MIMEJPG},
		Message: "Invalid file type. Allowed types: PDF, DOC, DOCX, PPT, PPTX, JPG, PNG",
	}

	// StudentProofTypes accepts photos only
	StudentProofTypes = AllowList{
		Types:   []string{MIMEJPEG, MIMEPNG, MIMEJPG},
		Message: "Please upload only JPG, PNG, or JPEG images for student requests.",
	}

	// InstitutionProofTypes accepts letters and documents from schools and libraries
	InstitutionProofTypes = AllowList{
		Types:   []string{MIMEPDF, MIMEDOCX},
		Message: "Please upload only PDF or DOCX files for school/library requests.",
	}
)

var (
	ErrNoFile          = errors.New("no file provided")
	ErrFileTooLarge    = errors.New("file exceeds the 10MB limit")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// ValidateFile checks the size limit and the allow-list
func ValidateFile(f File, allowed AllowList) error {
	if f.Body == nil && f.Size == 0 && f.Name == "" {
		return ErrNoFile
	}
	if f.Size > MaxFileSize {
		return fmt.Errorf("%w: %s is %s", ErrFileTooLarge, f.Name, FormatFileSize(f.Size))
	}
	if !allowed.Allows(f.ContentType) {
		return fmt.Errorf("%w: %s is %s", ErrUnsupportedType, f.Name, f.ContentType)
	}
	return nil
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize renders a byte count for display, e.g. "2.5 MB"
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	const k = 1024.0
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(k)))
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}
	value := math.Round(float64(bytes)/math.Pow(k, float64(i))*100) / 100
	return fmt.Sprintf("%s %s", formatFloat(value), sizeUnits[i])
}

func formatFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	for s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}
