package packager

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// extractTarGz unpacks archive into dir and returns the archive's single
// top-level directory name.
//
// Source distributions carry exactly one top directory (<name>-<version>)
// and regular files. Entries that would escape dir, and archives with a
// different shape, are rejected.
func extractTarGz(archive, dir string) (string, error) {
	f, err := os.Open(archive)
	if err != nil {
		return "", err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", filepath.Base(archive), err)
	}
	defer gz.Close()

	top := ""
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", filepath.Base(archive), err)
		}
		if hdr.Typeflag == tar.TypeXGlobalHeader {
			continue
		}

		name := filepath.Clean(filepath.FromSlash(hdr.Name))
		if filepath.IsAbs(name) || name == ".." || strings.HasPrefix(name, ".."+string(filepath.Separator)) {
			return "", fmt.Errorf("unsafe path %q in %s", hdr.Name, filepath.Base(archive))
		}
		first, _, _ := strings.Cut(name, string(filepath.Separator))
		switch {
		case top == "":
			top = first
		case first != top:
			return "", fmt.Errorf("multiple top-level entries in %s: %s and %s",
				filepath.Base(archive), top, first)
		}

		path := filepath.Join(dir, name)
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(path, 0o755); err != nil {
				return "", err
			}
		case tar.TypeReg:
			if err := writeEntry(path, fs.FileMode(hdr.Mode)&0o777, tr); err != nil {
				return "", err
			}
		default:
			return "", fmt.Errorf("unsupported entry type %q for %q in %s",
				hdr.Typeflag, hdr.Name, filepath.Base(archive))
		}
	}
	if top == "" {
		return "", fmt.Errorf("empty archive %s", filepath.Base(archive))
	}
	return top, nil
}

func writeEntry(path string, mode fs.FileMode, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
