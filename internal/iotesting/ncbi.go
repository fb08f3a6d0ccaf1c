// Package iotesting provides shared test utilities for integration tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"archive/tar"
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gnames/gngenomes/pkg/branch"
	"github.com/gnames/gngenomes/pkg/catalog"
	"github.com/gnames/gngenomes/pkg/config"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

// NodesDmp is a small nodes.dmp with bacterial, eukaryotic and viral
// branches.
const NodesDmp = `1	|	1	|	no rank	|
131567	|	1	|	no rank	|
2	|	131567	|	superkingdom	|
1224	|	2	|	phylum	|
561	|	1224	|	genus	|
562	|	561	|	species	|
83333	|	562	|	strain	|
2759	|	131567	|	superkingdom	|
4751	|	2759	|	kingdom	|
10239	|	1	|	superkingdom	|
`

// NamesDmp provides names for NodesDmp taxa.
const NamesDmp = `1	|	root	|		|	scientific name	|
131567	|	cellular organisms	|		|	scientific name	|
2	|	Bacteria	|	Bacteria <bacteria>	|	scientific name	|
1224	|	Pseudomonadota	|		|	scientific name	|
561	|	Escherichia	|		|	scientific name	|
562	|	Escherichia coli	|		|	scientific name	|
562	|	Bacillus coli	|		|	synonym	|
83333	|	Escherichia coli K-12	|		|	scientific name	|
2759	|	Eukaryota	|		|	scientific name	|
4751	|	Fungi	|		|	scientific name	|
10239	|	Viruses	|		|	scientific name	|
`

// ModTime is the modification time of all files served by NCBI.
var ModTime = time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)

// File is a member of a tar archive.
type File struct {
	Name string
	Data string
}

// TarGz creates a gzipped tar archive.
func TarGz(t *testing.T, files ...File) []byte {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for _, v := range files {
		hdr := &tar.Header{
			Name:     v.Name,
			Mode:     0644,
			Size:     int64(len(v.Data)),
			Typeflag: tar.TypeReg,
		}
		require.NoError(t, tw.WriteHeader(hdr))
		_, err := tw.Write([]byte(v.Data))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

// CatalogRow creates an assembly_summary.txt row.
func CatalogRow(accession string, taxonID int, level, ftpPath string) string {
	fields := make([]string, catalog.MinFields)
	for i := range fields {
		fields[i] = "x"
	}
	fields[0] = accession
	fields[5] = strconv.Itoa(taxonID)
	fields[11] = level
	fields[19] = ftpPath
	return strings.Join(fields, "\t")
}

// NCBI imitates the NCBI download server. It serves the taxonomy dump,
// the bacteria catalog and assembly files. The fungi catalog is absent.
type NCBI struct {
	*httptest.Server
	mu         sync.Mutex
	taxdump    []byte
	taxdumpMod time.Time
	catalog    atomic.Value
	assets     map[string][]byte
	// Down makes the taxonomy dump and the catalogs unavailable.
	Down atomic.Bool
}

// NewNCBI starts a server with the default catalog:
//
//	GCF_000001.1  562    Complete Genome  file
//	GCF_000002.1  83333  Complete Genome  file
//	GCF_000003.1  562    Contig           file
//	GCF_000004.1  1224   Complete Genome  no file
//	GCF_000005.1  562    Complete Genome  na
func NewNCBI(t *testing.T) *NCBI {
	res := &NCBI{
		taxdumpMod: ModTime,
		taxdump: TarGz(t,
			File{Name: "citations.dmp"},
			File{Name: "nodes.dmp", Data: NodesDmp},
			File{Name: "names.dmp", Data: NamesDmp},
		),
		assets: make(map[string][]byte),
	}
	for _, v := range []string{"GCF_000001.1_ASM1", "GCF_000002.1_ASM2", "GCF_000003.1_ASM3"} {
		res.assets["/all/"+v+"/"+v+"_genomic.gbff.gz"] = []byte(v)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/taxdump.tar.gz", func(w http.ResponseWriter, r *http.Request) {
		if res.Down.Load() {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		res.mu.Lock()
		data, mod := res.taxdump, res.taxdumpMod
		res.mu.Unlock()
		http.ServeContent(w, r, "taxdump.tar.gz", mod, bytes.NewReader(data))
	})
	mux.HandleFunc("/bacteria.txt", func(w http.ResponseWriter, r *http.Request) {
		if res.Down.Load() {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		cat := res.catalog.Load().(string)
		http.ServeContent(w, r, "bacteria.txt", ModTime, strings.NewReader(cat))
	})
	mux.HandleFunc("/all/", func(w http.ResponseWriter, r *http.Request) {
		data, ok := res.assets[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		http.ServeContent(w, r, filepath.Base(r.URL.Path), ModTime, bytes.NewReader(data))
	})
	res.Server = httptest.NewServer(mux)
	t.Cleanup(res.Close)

	res.SetCatalog(
		CatalogRow("GCF_000001.1", 562, catalog.CompleteGenome, res.Base("GCF_000001.1_ASM1")),
		CatalogRow("GCF_000002.1", 83333, catalog.CompleteGenome, res.Base("GCF_000002.1_ASM2")),
		CatalogRow("GCF_000003.1", 562, "Contig", res.Base("GCF_000003.1_ASM3")),
		CatalogRow("GCF_000004.1", 1224, catalog.CompleteGenome, res.Base("GCF_000004.1_ASM4")),
		CatalogRow("GCF_000005.1", 562, catalog.CompleteGenome, catalog.NoLocation),
	)
	return res
}

// SetTaxdump replaces the taxonomy dump and its modification time.
func (n *NCBI) SetTaxdump(data []byte, mod time.Time) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.taxdump = data
	n.taxdumpMod = mod
}

// Base returns the FTP directory of an assembly.
func (n *NCBI) Base(name string) string {
	return n.URL + "/all/" + name
}

// SetCatalog replaces rows of the bacteria catalog. Two comment lines
// precede the rows.
func (n *NCBI) SetCatalog(rows ...string) {
	cat := "#   See ftp://ftp.ncbi.nlm.nih.gov/genomes/README_assembly_summary.txt\n" +
		"# assembly_accession\tbioproject\n" + strings.Join(rows, "\n") + "\n"
	n.catalog.Store(cat)
}

// Branches returns bacteria and fungi branches served by n.
func (n *NCBI) Branches() []branch.Branch {
	return []branch.Branch{
		{Name: "bacteria", TaxonID: 2, CatalogURL: n.URL + "/bacteria.txt"},
		{Name: "fungi", TaxonID: 4751, CatalogURL: n.URL + "/fungi.txt"},
	}
}

// Config returns a configuration that uses n and temporary directories.
func (n *NCBI) Config(t *testing.T, opts ...config.Option) *config.Config {
	res := config.New()
	res.Update([]config.Option{
		config.OptHomeDir(t.TempDir()),
		config.OptOutputDir(filepath.Join(t.TempDir(), "genomes")),
		config.OptTaxdumpURL(n.URL + "/taxdump.tar.gz"),
		config.OptBranches(n.Branches()),
		config.OptRequestsPerSecond(1000),
		config.OptJobsNumber(2),
	})
	res.Update(opts)
	return res
}
