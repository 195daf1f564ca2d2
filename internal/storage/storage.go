// Package storage provides access to the attachment bucket.
package storage

import (
	"fmt"
	"io"
	"math/rand"
	"path/filepath"
	"strings"
	"time"
)

// Client is the interface the controllers use to talk to the attachment bucket.
type Client interface {
	UploadFile(objectName string, fileData io.Reader) error
	DownloadFile(objectName string) (io.ReadCloser, int64, error)
	ListObjects(prefix string) ([]string, error)
}

// ObjectName derives a collision-resistant object name for an applicant upload.
// The name combines the applicant's first name, a pseudo-random integer and the
// current unix timestamp while preserving the original file extension, so two
// submissions under the same name still land on distinct objects.
func ObjectName(prefix, applicantName, originalFilename string) string {
	first := applicantName
	if i := strings.IndexAny(first, " \t"); i >= 0 {
		first = first[:i]
	}
	first = strings.ToLower(first)
	if first == "" {
		first = "applicant"
	}

	ext := strings.ToLower(filepath.Ext(originalFilename))
	return fmt.Sprintf("%s/%s_%d_%d%s", prefix, first, rand.Int63(), time.Now().Unix(), ext)
}
