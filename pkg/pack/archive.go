// Package pack exports an install tree as a single archive file.
package pack

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dsnet/compress/bzip2"
	"github.com/hashicorp/go-hclog"
)

// Supported archive formats.
const (
	FormatTarGz  = "tar.gz"
	FormatTarBz2 = "tar.bz2"
)

// ArchiveTree writes root's contents to outPath as a compressed tarball.
// Entries are stored with slash-separated paths relative to root, walked in
// lexical order, so identical trees produce identical member orderings.
func ArchiveTree(logger hclog.Logger, root, outPath, format string) error {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}
	defer out.Close()

	compressor, err := newCompressor(out, format)
	if err != nil {
		return err
	}

	tw := tar.NewWriter(compressor)

	count := 0
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		header.Name = filepath.ToSlash(rel)
		if d.IsDir() {
			header.Name += "/"
		}

		if err := tw.WriteHeader(header); err != nil {
			return fmt.Errorf("writing tar header for %s: %w", rel, err)
		}
		if d.IsDir() {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		if _, err := io.Copy(tw, f); err != nil {
			return fmt.Errorf("writing tar data for %s: %w", rel, err)
		}
		count++
		return nil
	})
	if walkErr != nil {
		return walkErr
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("closing tar writer: %w", err)
	}
	if err := compressor.Close(); err != nil {
		return fmt.Errorf("closing compressor: %w", err)
	}

	if err := out.Sync(); err != nil {
		return fmt.Errorf("flushing archive: %w", err)
	}

	logger.Info("🗜️ Archived install tree", "path", outPath, "format", format, "files", count)
	return nil
}

func newCompressor(w io.Writer, format string) (io.WriteCloser, error) {
	switch format {
	case FormatTarGz:
		return gzip.NewWriter(w), nil
	case FormatTarBz2:
		bw, err := bzip2.NewWriter(w, &bzip2.WriterConfig{Level: bzip2.BestCompression})
		if err != nil {
			return nil, fmt.Errorf("creating bzip2 writer: %w", err)
		}
		return bw, nil
	default:
		return nil, fmt.Errorf("unknown archive format %q (want %s or %s)",
			format, FormatTarGz, FormatTarBz2)
	}
}
