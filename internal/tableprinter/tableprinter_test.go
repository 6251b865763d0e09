package tableprinter_test

import (
	"bytes"
	"testing"

	"go.arcalot.io/assert"
	"go.arcalot.io/log/v2"
	"go.flow.arcalot.io/subfactory/internal/tableprinter"
)

const basicTable = `ITEM   ROLE
a      1
b      2
c      3
`

func TestPrintTable(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	headers := []string{"item", "role"}
	rows := [][]string{
		{"a", "1"},
		{"b", "2"},
		{"c", "3"},
	}
	assert.NoError(t, tableprinter.PrintTable(buf, headers, rows))
	assert.Equals(t, buf.String(), basicTable)
}

func TestPrintItemRoles(t *testing.T) {
	logger := log.New(log.Config{Level: log.LevelDebug, Destination: log.DestinationTest, T: t})
	roles := map[string][]string{
		"member":   {"steam", "petroleum-gas"},
		"frontier": {"water"},
	}
	buf := bytes.NewBuffer(nil)
	assert.NoError(t, tableprinter.PrintItemRoles(buf, roles, logger))
	assert.Equals(t, buf.String(), `ITEM            ROLE
water           frontier
petroleum-gas   member
steam           member
`)

	empty := bytes.NewBuffer(nil)
	assert.NoError(t, tableprinter.PrintItemRoles(empty, map[string][]string{"seed": {}}, logger))
	assert.Equals(t, empty.String(), "")
}
