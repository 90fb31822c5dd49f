package presenter

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/BerylCAtieno/icp-generator/internal/models"
)

// Encode returns the canonical serialized form of a profile: JSON in
// declared field order, two-space indent, no HTML escaping, no trailing
// newline.
func Encode(profile models.CustomerProfile) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(profile); err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Decode is the inverse of Encode.
func Decode(data []byte) (models.CustomerProfile, error) {
	var profile models.CustomerProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return models.CustomerProfile{}, fmt.Errorf("decode profile: %w", err)
	}
	return profile, nil
}
