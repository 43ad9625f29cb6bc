package helpers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apitemplate/go-user-api/pkg/helpers"
)

func TestNewESClient(t *testing.T) {
	c, err := helpers.NewESClient([]string{"http://localhost:9200"}, "elastic", "changeme")
	require.NoError(t, err)
	assert.NotNil(t, c)
}
