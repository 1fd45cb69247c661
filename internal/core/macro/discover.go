package macro

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Ext is the file extension of macro files.
const Ext = ".macro"

// ErrMacroNotFound is returned by Find for an unknown macro name.
var ErrMacroNotFound = errors.New("artisan: macro not found")

// File is a macro found on disk. Name is the path relative to the macros
// directory without the extension, always slash separated.
type File struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Discover returns every macro under dir, sorted by name.
func Discover(dir string) ([]File, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), "**/*"+Ext, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("discover macros in %s: %w", dir, err)
	}

	files := make([]File, 0, len(matches))
	for _, m := range matches {
		files = append(files, File{
			Name: strings.TrimSuffix(m, Ext),
			Path: filepath.Join(dir, filepath.FromSlash(m)),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// Find resolves a macro reference. A reference that names an existing file is
// used as is; otherwise it is looked up by name under dir.
func Find(dir, ref string) (string, error) {
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return ref, nil
	}

	name := strings.TrimSuffix(filepath.ToSlash(ref), Ext)
	if !fs.ValidPath(name) || dir == "" {
		return "", fmt.Errorf("%w: %s", ErrMacroNotFound, ref)
	}

	p := filepath.Join(dir, filepath.FromSlash(path.Clean(name))+Ext)
	if _, err := os.Stat(p); err != nil {
		return "", fmt.Errorf("%w: %s", ErrMacroNotFound, ref)
	}
	return p, nil
}
