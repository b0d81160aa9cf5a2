//go:build unit

package migrations_test

import (
	"sort"
	"testing"

	"ticket-checkout/migrations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	names, err := migrations.Names()
	require.NoError(t, err)

	require.NotEmpty(t, names)
	assert.Equal(t, "0001_init.sql", names[0])
	assert.Contains(t, names, "0002_voucher_code_ci.sql")
	assert.True(t, sort.StringsAreSorted(names))
}
