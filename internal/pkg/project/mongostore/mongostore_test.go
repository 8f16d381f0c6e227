package mongostore

import (
	"context"
	"testing"

	"gotest.tools/v3/assert"
)

func TestNewRequiresURI(t *testing.T) {
	_, err := New(context.Background(), Config{Database: "elecalc"})
	assert.ErrorContains(t, err, "URI and Database are required")

	_, err = New(context.Background(), Config{URI: "mongodb://localhost:27017"})
	assert.ErrorContains(t, err, "URI and Database are required")
}
