package names

import (
	"errors"
	"strings"
	"testing"

	"github.com/gnames/gnuuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const namesDmp = `1	|	root	|		|	scientific name	|
2	|	Bacteria	|	Bacteria <bacteria>	|	scientific name	|
2	|	eubacteria	|		|	genbank common name	|
561	|	Escherichia	|		|	scientific name	|
561	|	Escherichia Castellani and Chalmers 1919	|		|	authority	|
562	|	Escherichia coli	|		|	scientific name	|
562	|	Bacillus coli Migula 1895	|		|	synonym	|
562	|	Bacterium coli commune	|		|	synonym	|
562	|	E. coli	|		|	common name	|
1912	|	Escherichia coli	|		|	includes	|
4751	|	Fungi	|		|	scientific name	|
bad line
0	|	zero	|		|	scientific name	|
`

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) {
	return 0, errors.New("disk is gone")
}

func TestParseRecord(t *testing.T) {
	tests := []struct {
		msg  string
		line string
		ok   bool
		rec  Record
	}{
		{
			msg:  "scientific name",
			line: "562\t|\tEscherichia coli\t|\t\t|\tscientific name\t|",
			ok:   true,
			rec:  Record{TaxonID: 562, Name: "Escherichia coli", Class: ScientificName},
		},
		{msg: "too short", line: "562\t|\tEscherichia coli\t|", ok: false},
		{msg: "bad id", line: "x\t|\tname\t|\t\t|\tsynonym\t|", ok: false},
		{msg: "empty name", line: "5\t|\t\t|\t\t|\tsynonym\t|", ok: false},
	}

	for _, v := range tests {
		res, ok := parseRecord(v.line)
		assert.Equal(t, v.ok, ok, v.msg)
		if v.ok {
			assert.Equal(t, v.rec, res, v.msg)
		}
	}
}

func TestCanonical(t *testing.T) {
	f := NewFinder()
	tests := []struct {
		name, res string
	}{
		{"Escherichia coli", "Escherichia coli"},
		{"Escherichia coli (Migula 1895) Castellani & Chalmers 1919", "Escherichia coli"},
		{"Bacteria", "Bacteria"},
		{"", ""},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, f.Canonical(v.name), v.name)
	}
}

func TestFind(t *testing.T) {
	f := NewFinder()

	t.Run("finds by canonical form", func(t *testing.T) {
		res, err := f.Find(strings.NewReader(namesDmp),
			"Escherichia coli (Migula 1895) Castellani & Chalmers 1919")
		require.NoError(t, err)
		require.Len(t, res, 2)

		assert.Equal(t, 562, res[0].TaxonID)
		assert.Equal(t, ScientificName, res[0].Class)
		assert.Equal(t, 1912, res[1].TaxonID)
		assert.Equal(t, "includes", res[1].Class)
		assert.Equal(t, gnuuid.New("Escherichia coli").String(), res[0].CanonicalID)
	})

	t.Run("finds synonyms", func(t *testing.T) {
		res, err := f.Find(strings.NewReader(namesDmp), "Bacillus coli")
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, 562, res[0].TaxonID)
		assert.Equal(t, "Bacillus coli Migula 1895", res[0].Name)
	})

	t.Run("ignores common names and authorities", func(t *testing.T) {
		res, err := f.Find(strings.NewReader(namesDmp), "eubacteria")
		require.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("no matches for unparsable query", func(t *testing.T) {
		res, err := f.Find(strings.NewReader(namesDmp), "")
		require.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("returns read errors", func(t *testing.T) {
		_, err := f.Find(brokenReader{}, "Escherichia coli")
		assert.Error(t, err)
	})
}

func TestScientificNames(t *testing.T) {
	res, err := ScientificNames(strings.NewReader(namesDmp), []int{1, 2, 562, 999})
	require.NoError(t, err)
	assert.Equal(t, map[int]string{
		1:   "root",
		2:   "Bacteria",
		562: "Escherichia coli",
	}, res)

	_, err = ScientificNames(brokenReader{}, []int{1})
	assert.Error(t, err)
}
