package pacman

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jjk-jacky/pacdep/pkg/deps"
	pderrors "github.com/jjk-jacky/pacdep/pkg/errors"
)

// ReadLocalDB reads the installed packages below dir (<DBPath>/local).
// Each package lives in its own directory holding a desc file and, for
// databases written by old pacman versions, a separate depends file.
func ReadLocalDB(dir string) ([]*deps.Package, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, pderrors.Wrap(pderrors.ErrCodeBackend, err, "cannot open local database %s", dir)
	}

	var pkgs []*deps.Package
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		pkg, err := readLocalEntry(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		if pkg != nil {
			pkgs = append(pkgs, pkg)
		}
	}
	return pkgs, nil
}

func readLocalEntry(dir string) (*deps.Package, error) {
	var desc Desc
	for _, name := range []string{"desc", "depends"} {
		path := filepath.Join(dir, name)
		f, err := os.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, pderrors.Wrap(pderrors.ErrCodeFileRead, err, "cannot read %s", path)
		}
		desc, err = ParseDesc(f, desc)
		f.Close()
		if err != nil {
			return nil, pderrors.Wrap(pderrors.ErrCodeParse, err, "%s", path)
		}
	}
	if desc == nil {
		return nil, nil
	}
	pkg, err := desc.Package("", "SIZE")
	if err != nil {
		return nil, pderrors.Wrap(pderrors.ErrCodeParse, err, "%s", dir)
	}
	return pkg, nil
}
