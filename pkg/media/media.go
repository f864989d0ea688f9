package media

import (
	"context"
	"io"
	"math"
	"sync"
)

// File is a blob to be uploaded
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Result describes an uploaded blob
type Result struct {
	URL          string
	PublicID     string
	Format       string
	ResourceType string
	Bytes        int64
	Width        *int
	Height       *int
	CreatedAt    string
}

// ProgressFunc receives whole-number upload progress from 0 to 100
type ProgressFunc func(percent int)

// Uploader defines the media upload gateway operations.
// Both cloudinaryclient.Client and minioclient.Client implement this interface.
type Uploader interface {
	Upload(ctx context.Context, file File, onProgress ProgressFunc) (*Result, error)
}

// ProgressReader wraps a reader and reports the share of total bytes read.
// A callback fires only when the rounded percentage changes.
type ProgressReader struct {
	r          io.Reader
	total      int64
	read       int64
	lastReport int
	onProgress ProgressFunc
	mu         sync.Mutex
}

// NewProgressReader creates a ProgressReader over r for a body of total bytes
func NewProgressReader(r io.Reader, total int64, onProgress ProgressFunc) *ProgressReader {
	return &ProgressReader{
		r:          r,
		total:      total,
		lastReport: -1,
		onProgress: onProgress,
	}
}

// Read implements io.Reader
func (p *ProgressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.Add(int64(n))
	}
	return n, err
}

// Add records n bytes as transferred. It lets ProgressReader act as a
// progress sink for clients that read the body themselves.
func (p *ProgressReader) Add(n int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.read += n
	if p.onProgress == nil || p.total <= 0 {
		return
	}

	percent := int(math.Round(float64(p.read) / float64(p.total) * 100))
	if percent > 100 {
		percent = 100
	}
	if percent != p.lastReport {
		p.lastReport = percent
		p.onProgress(percent)
	}
}
