package http

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var openapiSpec []byte

func rawSpec() ([]byte, error) {
	return openapiSpec, nil
}

var loadSwagger = sync.OnceValues(func() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openapiSpec)
	if err != nil {
		return nil, fmt.Errorf("error loading openapi document: %w", err)
	}
	return doc, nil
})

// GetSwagger returns the parsed OpenAPI document describing the API.
func GetSwagger() (*openapi3.T, error) {
	return loadSwagger()
}
