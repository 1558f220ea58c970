package corpus

import (
	"path/filepath"

	"github.com/google/uuid"
)

// DocumentID derives a stable identifier for a document path. The same
// absolute path always maps to the same ID, so cache entries survive
// across sessions and processes.
func DocumentID(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("textlayer://"+abs)).String()
}
