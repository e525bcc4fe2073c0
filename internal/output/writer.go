package output

import (
	"os"

	"github.com/bobmcallan/websnap/internal/models"
)

// Write persists data to path, creating or truncating the file.
func Write(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return models.NewError(models.KindIO, "write "+path, err)
	}
	return nil
}
