package validation

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrInvalidProfile is returned when a document does not match the profile
// schema.
var ErrInvalidProfile = errors.New("invalid customer profile")

//go:embed profile.schema.json
var profileSchemaJSON []byte

var profileSchema = mustCompile(profileSchemaJSON)

func mustCompile(raw []byte) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		panic(fmt.Sprintf("compile profile schema: %v", err))
	}
	return schema
}

// ValidateProfile checks an encoded customer profile against the embedded
// JSON schema.
func ValidateProfile(document []byte) error {
	result, err := profileSchema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("%w: %s", ErrInvalidProfile, strings.Join(errs, "; "))
	}

	return nil
}

// SchemaJSON returns the raw profile schema.
func SchemaJSON() []byte {
	out := make([]byte, len(profileSchemaJSON))
	copy(out, profileSchemaJSON)
	return out
}
