package pacman

import (
	"archive/tar"
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// entry describes one package of a test database.
type entry struct {
	name, version string
	size          int64
	explicit      bool
	depends       []string
	optdepends    []string
	provides      []string
}

func (e entry) desc(sizeField string) string {
	var b strings.Builder
	field := func(name string, values ...string) {
		if len(values) == 0 {
			return
		}
		fmt.Fprintf(&b, "%%%s%%\n%s\n\n", name, strings.Join(values, "\n"))
	}
	version := e.version
	if version == "" {
		version = "1.0-1"
	}
	field("NAME", e.name)
	field("VERSION", version)
	field(sizeField, fmt.Sprint(e.size))
	if sizeField == "SIZE" && !e.explicit {
		field("REASON", "1")
	}
	field("DEPENDS", e.depends...)
	field("OPTDEPENDS", e.optdepends...)
	field("PROVIDES", e.provides...)
	return b.String()
}

func (e entry) dir() string {
	v := e.version
	if v == "" {
		v = "1.0-1"
	}
	return e.name + "-" + v
}

// writeLocalDB lays out a local database below dbpath.
func writeLocalDB(t *testing.T, dbpath string, entries ...entry) {
	t.Helper()
	writeFile(t, filepath.Join(dbpath, "local", "ALPM_DB_VERSION"), "9\n")
	for _, e := range entries {
		writeFile(t, filepath.Join(dbpath, "local", e.dir(), "desc"), e.desc("SIZE"))
	}
}

// tarDB returns an uncompressed sync database archive.
func tarDB(t *testing.T, entries ...entry) []byte {
	t.Helper()
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, e := range entries {
		if err := tw.WriteHeader(&tar.Header{Name: e.dir() + "/", Typeflag: tar.TypeDir, Mode: 0o755}); err != nil {
			t.Fatal(err)
		}
		body := e.desc("ISIZE")
		if err := tw.WriteHeader(&tar.Header{Name: e.dir() + "/desc", Typeflag: tar.TypeReg, Mode: 0o644, Size: int64(len(body))}); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func gzipDB(t *testing.T, entries ...entry) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(tarDB(t, entries...)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func zstdDB(t *testing.T, entries ...entry) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer enc.Close()
	return enc.EncodeAll(tarDB(t, entries...), nil)
}
