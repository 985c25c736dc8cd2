package launcher

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// ErrUnsafePath is returned for archive entries that resolve outside the
// install directory.
var ErrUnsafePath = errors.New("archive entry escapes install directory")

// isGzip sniffs the start of f and rewinds it.
func isGzip(f io.ReadSeeker) (bool, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return false, err
	}
	return http.DetectContentType(head[:n]) == "application/x-gzip", nil
}

// extractTarGz unpacks a gzipped tar stream into dir. Every write goes
// through an os.Root for dir, and each entry is checked against symlinks
// already on disk, so a chain of links cannot lead outside dir.
func extractTarGz(r io.Reader, dir string) error {
	realDir, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return err
	}
	root, err := os.OpenRoot(realDir)
	if err != nil {
		return err
	}
	defer root.Close()

	gz, err := gzip.NewReader(r)
	if err != nil {
		return err
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		target := filepath.Join(realDir, filepath.FromSlash(hdr.Name))
		if !isWithin(realDir, target) {
			return fmt.Errorf("%w: %s", ErrUnsafePath, hdr.Name)
		}
		if target == realDir {
			continue
		}
		parent, err := resolveExisting(filepath.Dir(target))
		if err != nil {
			return err
		}
		if !isWithin(realDir, parent) {
			return fmt.Errorf("%w: %s", ErrUnsafePath, hdr.Name)
		}
		name, err := filepath.Rel(realDir, filepath.Join(parent, filepath.Base(target)))
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := root.MkdirAll(name, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := mkdirParent(root, name); err != nil {
				return err
			}
			if err := writeEntry(root, tr, name, hdr.FileInfo().Mode().Perm()); err != nil {
				return err
			}
		case tar.TypeSymlink:
			link := hdr.Linkname
			if !filepath.IsAbs(link) {
				link = filepath.Join(parent, link)
			}
			resolved, err := resolveExisting(link)
			if err != nil {
				return err
			}
			if !isWithin(realDir, link) || !isWithin(realDir, resolved) {
				return fmt.Errorf("%w: %s -> %s", ErrUnsafePath, hdr.Name, hdr.Linkname)
			}
			if err := mkdirParent(root, name); err != nil {
				return err
			}
			_ = root.Remove(name)
			if err := root.Symlink(hdr.Linkname, name); err != nil {
				return err
			}
		default:
			// Hard links, devices and fifos are not needed by IDE archives.
		}
	}
}

// resolveExisting follows symlinks in the longest existing prefix of path
// and appends the remainder unchanged.
func resolveExisting(path string) (string, error) {
	path = filepath.Clean(path)
	var rest []string
	for {
		out, err := filepath.EvalSymlinks(path)
		if err == nil {
			for i := len(rest) - 1; i >= 0; i-- {
				out = filepath.Join(out, rest[i])
			}
			return out, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(path)
		if parent == path {
			return "", err
		}
		rest = append(rest, filepath.Base(path))
		path = parent
	}
}

// isWithin reports whether path is dir or lies below it.
func isWithin(dir, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

func copyFile(r io.Reader, path string, mode os.FileMode) error {
	if mode == 0 {
		mode = 0o644
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

func mkdirParent(root *os.Root, name string) error {
	parent := filepath.Dir(name)
	if parent == "." {
		return nil
	}
	return root.MkdirAll(parent, 0o755)
}

func writeEntry(root *os.Root, r io.Reader, name string, mode os.FileMode) error {
	if mode == 0 {
		mode = 0o644
	}
	out, err := root.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
