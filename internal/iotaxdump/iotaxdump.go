// Package iotaxdump extracts files from the NCBI taxdump.tar.gz archive.
package iotaxdump

import (
	"archive/tar"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/gnames/gnsys"
	"github.com/klauspost/compress/gzip"
)

const (
	// Archive is the file name of the taxonomy dump.
	Archive = "taxdump.tar.gz"
	// NodesFile keeps parent relations of taxa.
	NodesFile = "nodes.dmp"
	// NamesFile keeps names of taxa.
	NamesFile = "names.dmp"
)

// Extract copies files listed in names from the archive at path to dir.
// Other members of the archive are skipped. Previously extracted files are
// replaced only after every requested file was read successfully.
func Extract(path, dir string, names ...string) error {
	f, err := os.Open(path)
	if err != nil {
		return TaxdumpReadError(path, err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return TaxdumpReadError(path, err)
	}
	defer gz.Close()

	tmpDir := filepath.Join(dir, "extract")
	if err = gnsys.MakeDir(tmpDir); err != nil {
		return TaxdumpReadError(path, err)
	}
	defer os.RemoveAll(tmpDir)
	if err = gnsys.CleanDir(tmpDir); err != nil {
		return TaxdumpReadError(path, err)
	}

	missing := slices.Clone(names)
	tr := tar.NewReader(gz)
	for len(missing) > 0 {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return TaxdumpReadError(path, err)
		}

		name := filepath.Base(hdr.Name)
		idx := slices.Index(missing, name)
		if hdr.Typeflag != tar.TypeReg || idx < 0 {
			continue
		}

		if err = writeFile(filepath.Join(tmpDir, name), tr); err != nil {
			return TaxdumpReadError(path, err)
		}
		missing = slices.Delete(missing, idx, idx+1)
		slog.Info("Extracted taxonomy file", "file", name)
	}

	if len(missing) > 0 {
		return TaxdumpMissingError(path, missing)
	}

	for _, v := range names {
		err = os.Rename(filepath.Join(tmpDir, v), filepath.Join(dir, v))
		if err != nil {
			return TaxdumpReadError(path, err)
		}
	}
	return nil
}

func writeFile(path string, r io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err = io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
