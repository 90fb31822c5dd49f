package presenter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BerylCAtieno/icp-generator/internal/models"
	"github.com/atotto/clipboard"
)

// DownloadFilename is the name of the downloaded profile file.
const DownloadFilename = "ideal-customer-profile.json"

// WriteDownload writes the canonical encoding of profile to
// dir/ideal-customer-profile.json and returns the path.
func WriteDownload(dir string, profile models.CustomerProfile) (string, error) {
	data, err := Encode(profile)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, DownloadFilename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// Clipboard receives copied text.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard is not supported on this system")
	}
	return clipboard.WriteAll(text)
}

// Copy places the canonical encoding of profile on the clipboard.
func Copy(profile models.CustomerProfile, cb Clipboard) error {
	data, err := Encode(profile)
	if err != nil {
		return err
	}
	if err := cb.WriteAll(string(data)); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
