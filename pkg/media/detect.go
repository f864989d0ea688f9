package media

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

// OpenFile opens a local file for upload, sniffing its content type from the
// file contents rather than trusting the extension. The caller closes the file.
func OpenFile(path string) (File, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return File{}, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return File{}, nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		f.Close()
		return File{}, nil, fmt.Errorf("failed to detect type of %s: %w", path, err)
	}

	contentType, _, err := mime.ParseMediaType(mtype.String())
	if err != nil {
		f.Close()
		return File{}, nil, fmt.Errorf("failed to parse content type of %s: %w", path, err)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return File{}, nil, fmt.Errorf("failed to rewind %s: %w", path, err)
	}

	return File{
		Name:        filepath.Base(path),
		ContentType: contentType,
		Size:        info.Size(),
		Body:        f,
	}, f, nil
}
