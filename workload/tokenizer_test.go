package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTablesFindsNested(t *testing.T) {
	html := `<table id="outer"><tr><td><table id="inner"><tr><td>x</td></tr></table></td></tr></table>`
	doc, err := parseDocument(html)
	require.NoError(t, err)

	tbls := tables(doc.Selection)
	assert.Len(t, tbls, 2)
}

func TestCellsColspanDuplication(t *testing.T) {
	html := `<table><tr><td colspan="3">X</td><td>Y</td></tr></table>`
	doc, err := parseDocument(html)
	require.NoError(t, err)

	tbls := tables(doc.Selection)
	require.Len(t, tbls, 1)
	rws := rows(tbls[0])
	require.Len(t, rws, 1)

	cellVals := cells(rws[0])
	assert.Equal(t, []string{"X", "X", "X", "Y"}, cellVals)
}

func TestCellsEmptyRow(t *testing.T) {
	html := `<table><tr></tr></table>`
	doc, err := parseDocument(html)
	require.NoError(t, err)
	rws := rows(tables(doc.Selection)[0])
	require.Len(t, rws, 1)
	assert.Empty(t, cells(rws[0]))
}

func TestColspanOfDefaultsAndMalformed(t *testing.T) {
	html := `<table><tr><td colspan="abc">A</td><td colspan="0">B</td><td>C</td></tr></table>`
	doc, err := parseDocument(html)
	require.NoError(t, err)
	rws := rows(tables(doc.Selection)[0])
	assert.Equal(t, []string{"A", "B", "C"}, cells(rws[0]))
}
