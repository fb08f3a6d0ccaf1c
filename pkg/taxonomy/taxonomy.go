// Package taxonomy provides an immutable in-memory taxonomy tree built from
// NCBI nodes.dmp records.
//
// The tree is a flat id -> parent id map. The universal root (id 1) is its
// own parent. All walks are iterative and bounded by the number of nodes, so
// a malformed dump with a cycle produces a diagnostic instead of a hang.
//
// This is a pure package: it reads from an io.Reader but performs no file
// or network operations itself.
package taxonomy

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
)

// RootID is the id of the universal root of the taxonomy.
const RootID = 1

// Tree keeps parent relations of all taxa read from a taxonomy dump.
type Tree struct {
	parents map[int]int
}

// New reads pipe-delimited taxonomy records from r and builds a Tree.
// Only the first two fields of a record (taxon id and parent id) are used.
// Records that cannot provide both ids are skipped with a warning, later
// duplicates of an id overwrite earlier ones. Only a read error is returned.
func New(r io.Reader) (*Tree, error) {
	res := &Tree{parents: make(map[int]int)}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lineNum, skipped int
	for sc.Scan() {
		lineNum++
		id, parentID, ok := parseNode(sc.Text())
		if !ok {
			skipped++
			slog.Warn("Skipping malformed taxonomy record", "line", lineNum)
			continue
		}
		res.parents[id] = parentID
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	slog.Info("Taxonomy tree is built",
		"nodes", len(res.parents),
		"skipped", skipped,
	)
	return res, nil
}

// ParseID converts a command line argument to a taxon id.
func ParseID(s string) (int, error) {
	s = strings.TrimSpace(s)
	res, err := strconv.Atoi(s)
	if err != nil {
		return 0, InvalidTaxonIDError(s, err)
	}
	if res <= 0 {
		return 0, InvalidTaxonIDError(s, errors.New("id must be positive"))
	}
	return res, nil
}

// FromMap creates a Tree from an id -> parent id map. The map is copied.
func FromMap(parents map[int]int) *Tree {
	res := &Tree{parents: make(map[int]int, len(parents))}
	for k, v := range parents {
		res.parents[k] = v
	}
	return res
}

// parseNode extracts taxon id and parent id from a nodes.dmp line such as
// "562\t|\t561\t|\tspecies\t|...".
func parseNode(line string) (id, parentID int, ok bool) {
	fields := strings.SplitN(line, "|", 3)
	if len(fields) < 2 {
		return 0, 0, false
	}

	var err error
	id, err = strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil || id <= 0 {
		return 0, 0, false
	}
	parentID, err = strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil || parentID <= 0 {
		return 0, 0, false
	}
	return id, parentID, true
}

// Len returns the number of taxa in the tree.
func (t *Tree) Len() int {
	return len(t.parents)
}

// Contains reports whether id is a taxon of the tree.
func (t *Tree) Contains(id int) bool {
	_, ok := t.parents[id]
	return ok
}

// ParentOf returns the parent id of a taxon. The second value is false if
// the taxon is not in the tree.
func (t *Tree) ParentOf(id int) (int, bool) {
	res, ok := t.parents[id]
	return res, ok
}

// IsAncestor reports whether ancestor is the same taxon as descendant or
// appears on the path from descendant to the root. If either id is absent
// from the tree the result is false.
func (t *Tree) IsAncestor(ancestor, descendant int) bool {
	if !t.Contains(ancestor) {
		slog.Warn("Ancestor candidate is not in taxonomy", "taxon_id", ancestor)
		return false
	}
	if !t.Contains(descendant) {
		slog.Warn("Descendant candidate is not in taxonomy", "taxon_id", descendant)
		return false
	}

	curr := descendant
	for range len(t.parents) + 1 {
		if curr == ancestor {
			return true
		}
		parent, ok := t.parents[curr]
		if !ok || parent == curr {
			return false
		}
		curr = parent
	}

	slog.Warn("Parent chain does not reach the root", "taxon_id", descendant)
	return false
}

// Lineage returns taxon ids from the root to id inclusive, root first.
// For an id absent from the tree it returns a one-element slice with the
// id itself. A lineage that does not start with RootID means the tree is
// incomplete or corrupted, use IsRooted to check it.
func (t *Tree) Lineage(id int) []int {
	if !t.Contains(id) {
		slog.Warn("Taxon is not in taxonomy", "taxon_id", id)
		return []int{id}
	}

	res := []int{id}
	curr := id
	for range len(t.parents) {
		parent, ok := t.parents[curr]
		if !ok || parent == curr {
			break
		}
		res = append(res, parent)
		curr = parent
	}
	slices.Reverse(res)

	if !IsRooted(res) {
		slog.Warn("Lineage does not start at the root",
			"taxon_id", id,
			"lineage", res,
		)
	}
	return res
}

// IsRooted reports whether a lineage starts with the universal root.
func IsRooted(lineage []int) bool {
	return len(lineage) > 0 && lineage[0] == RootID
}
