package table

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	input := "\ufeffLine , Temp Avg (°C),Alerts\nL1,71.5,Overheat\nL2,68.0\n"

	tbl, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"Line", "Temp Avg (°C)", "Alerts"}, tbl.Columns)
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, []string{"L2", "68.0", ""}, tbl.Rows[1])
}

func TestParseCSVHeaderOnly(t *testing.T) {
	tbl, err := ParseCSV(strings.NewReader("a,b\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())
	assert.Equal(t, []string{"a", "b"}, tbl.Columns)
}

func TestParseCSVErrors(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader(""))
		var perr *ParseError
		require.True(t, errors.As(err, &perr))
		assert.ErrorIs(t, err, ErrEmpty)
	})

	t.Run("bare quote", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader("a,b\n1,\"unterminated\n"))
		var perr *ParseError
		require.True(t, errors.As(err, &perr))
		assert.Contains(t, err.Error(), "parse csv")
	})

	t.Run("quote in unquoted field", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader("a,b\n1,x\"y\n"))
		var perr *ParseError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, 2, perr.Line)
		assert.Contains(t, err.Error(), "line 2")
	})
}
