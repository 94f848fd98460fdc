package router

import (
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const openAPIPath = "../../../public/docs/v1/openapi.yml"

func TestOpenAPIDocument(t *testing.T) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile(openAPIPath)
	require.NoError(t, err)
	require.NoError(t, doc.Validate(loader.Context))

	for _, path := range []string{"/webhook", "/healthz", "/api/v1/ping", "/api/v1/stats"} {
		assert.NotNil(t, doc.Paths.Value(path), path)
	}

	webhook := doc.Paths.Value("/webhook").Post
	require.NotNil(t, webhook)
	for _, code := range []string{"200", "400", "401", "500"} {
		assert.NotNil(t, webhook.Responses.Value(code), code)
	}
}
