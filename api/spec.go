package api

import (
	"context"
	_ "embed"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed api.yaml
var specYAML []byte

// LoadSpec parses and validates the embedded OpenAPI document.
func LoadSpec(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(specYAML)
	if err != nil {
		return nil, err
	}

	err = doc.Validate(ctx)
	if err != nil {
		return nil, err
	}

	return doc, nil
}
