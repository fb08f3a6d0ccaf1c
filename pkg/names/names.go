// Package names finds taxa by scientific name in NCBI names.dmp records.
//
// Names are compared by their simple canonical forms produced by gnparser,
// so "Escherichia coli (Migula 1895) Castellani and Chalmers 1919" finds
// the same taxon as "Escherichia coli". The dump is streamed, only rows
// that share the last canonical word with the query go to the parser.
//
// This is a pure package: it reads from an io.Reader but performs no file
// or network operations itself.
package names

import (
	"bufio"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
	"github.com/gnames/gnuuid"
)

// ScientificName is the name class of the accepted name of a taxon.
const ScientificName = "scientific name"

// searchable name classes of names.dmp
var classes = map[string]struct{}{
	ScientificName:    {},
	"synonym":         {},
	"equivalent name": {},
	"includes":        {},
	"genbank synonym": {},
}

// Record is one row of names.dmp.
type Record struct {
	TaxonID int
	Name    string
	Class   string
}

// parseRecord splits a line such as
// "562\t|\tEscherichia coli\t|\t\t|\tscientific name\t|".
func parseRecord(line string) (Record, bool) {
	var res Record
	fields := strings.Split(line, "|")
	if len(fields) < 4 {
		return res, false
	}

	id, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil || id <= 0 {
		return res, false
	}
	res.TaxonID = id
	res.Name = strings.TrimSpace(fields[1])
	res.Class = strings.TrimSpace(fields[3])
	return res, res.Name != ""
}

// Match is a names.dmp record that has the canonical form of a query.
type Match struct {
	TaxonID int    `yaml:"taxon_id"`
	Name    string `yaml:"name"`
	Class   string `yaml:"class"`
	// CanonicalID is the UUID v5 of the canonical form used across
	// Global Names services.
	CanonicalID string `yaml:"canonical_id"`
}

// Finder looks up names in names.dmp.
type Finder struct {
	parser gnparser.GNparser
}

// NewFinder creates a Finder. Botanical code is used because most names of
// the assembly catalogs belong to bacteria and fungi.
func NewFinder() *Finder {
	cfg := gnparser.NewConfig(gnparser.OptCode(nomcode.Botanical))
	return &Finder{parser: gnparser.New(cfg)}
}

// Canonical returns the simple canonical form of a name, or an empty string
// if the name cannot be parsed.
func (f *Finder) Canonical(name string) string {
	p := f.parser.ParseName(name)
	if !p.Parsed || p.Canonical == nil {
		return ""
	}
	return p.Canonical.Simple
}

// Find returns names.dmp records whose canonical form is the same as
// the canonical form of name, in the order of the dump. An unparsable
// query gives no matches.
func (f *Finder) Find(r io.Reader, name string) ([]Match, error) {
	canonical := f.Canonical(name)
	if canonical == "" {
		return nil, nil
	}
	words := strings.Fields(canonical)
	key := strings.ToLower(words[len(words)-1])
	canonicalID := gnuuid.New(canonical).String()

	var res []Match
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		rec, ok := parseRecord(sc.Text())
		if !ok {
			continue
		}
		if _, ok = classes[rec.Class]; !ok {
			continue
		}
		if !strings.Contains(strings.ToLower(rec.Name), key) {
			continue
		}
		if f.Canonical(rec.Name) != canonical {
			continue
		}
		res = append(res, Match{
			TaxonID:     rec.TaxonID,
			Name:        rec.Name,
			Class:       rec.Class,
			CanonicalID: canonicalID,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// ScientificNames returns accepted names of the given taxa. Taxa without
// a scientific name in the dump are absent from the result.
func ScientificNames(r io.Reader, ids []int) (map[int]string, error) {
	res := make(map[int]string, len(ids))
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		rec, ok := parseRecord(sc.Text())
		if !ok || rec.Class != ScientificName {
			continue
		}
		if slices.Contains(ids, rec.TaxonID) {
			res[rec.TaxonID] = rec.Name
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
