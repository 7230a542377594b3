package install

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vtx-plugins/vtx-installer/internal/messages"
	"github.com/vtx-plugins/vtx-installer/internal/release"
)

// extract unpacks archivePath into destDir according to kind.
func extract(archivePath string, kind release.Kind, destDir string) error {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf(messages.InstallCreateDirFmt, destDir, err)
	}
	switch kind {
	case release.KindTarGz:
		return extractTarGz(archivePath, destDir)
	case release.KindZip:
		return extractZip(archivePath, destDir)
	default:
		return fmt.Errorf(messages.InstallUnknownKindFmt, kind)
	}
}

func extractTarGz(archivePath string, destDir string) error {
	file, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf(messages.InstallOpenArchiveFmt, archivePath, err)
	}
	defer func() { _ = file.Close() }()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return fmt.Errorf(messages.InstallGzipReaderFmt, err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf(messages.InstallReadTarFmt, err)
		}

		target, err := safeJoin(destDir, hdr.Name)
		if err != nil {
			return err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf(messages.InstallCreateDirFmt, target, err)
			}
		case tar.TypeReg:
			if err := writeEntry(target, tr); err != nil {
				return err
			}
		default:
			// Links and special files are never needed to locate the executable.
			continue
		}
	}
}

func extractZip(archivePath string, destDir string) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf(messages.InstallReadZipFmt, err)
	}
	defer func() { _ = zr.Close() }()

	for _, f := range zr.File {
		target, err := safeJoin(destDir, f.Name)
		if err != nil {
			return err
		}
		mode := f.FileInfo().Mode()
		if mode.IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf(messages.InstallCreateDirFmt, target, err)
			}
			continue
		}
		if !mode.IsRegular() {
			continue
		}
		if err := writeZipEntry(target, f); err != nil {
			return err
		}
	}
	return nil
}

func writeZipEntry(target string, f *zip.File) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf(messages.InstallReadZipFmt, err)
	}
	defer func() { _ = rc.Close() }()
	return writeEntry(target, rc)
}

// writeEntry writes r to target, replacing any existing file.
func writeEntry(target string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf(messages.InstallCreateDirFmt, filepath.Dir(target), err)
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf(messages.InstallWriteEntryFmt, target, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		return fmt.Errorf(messages.InstallWriteEntryFmt, target, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf(messages.InstallWriteEntryFmt, target, err)
	}
	return nil
}

// safeJoin joins name onto destDir and rejects results outside destDir.
func safeJoin(destDir string, name string) (string, error) {
	clean := filepath.Clean(destDir)
	target := filepath.Join(clean, filepath.FromSlash(name))
	if target != clean && !strings.HasPrefix(target, clean+string(os.PathSeparator)) {
		return "", fmt.Errorf(messages.InstallIllegalPathFmt, name)
	}
	return target, nil
}
