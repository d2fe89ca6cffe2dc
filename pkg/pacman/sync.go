package pacman

import (
	"archive/tar"
	"bufio"
	"bytes"
	"compress/bzip2"
	"io"
	"os"
	"path"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/jjk-jacky/pacdep/pkg/deps"
	"github.com/jjk-jacky/pacdep/pkg/errors"
)

var (
	magicGzip  = []byte{0x1f, 0x8b}
	magicBzip2 = []byte("BZh")
	magicZstd  = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicXz    = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
)

// ReadSyncDB reads the repository database archive at file. The archive is
// a tar file, compressed with gzip, bzip2 or zstd, or not at all, holding one
// <name>-<version>/desc entry per package (plus depends for old databases).
func ReadSyncDB(file, repo string) ([]*deps.Package, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileRead, err, "cannot open database %s", file)
	}
	defer f.Close()

	pkgs, err := ParseSyncDB(f, repo)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "database %s", file)
	}
	return pkgs, nil
}

// ParseSyncDB reads a repository database archive from r.
func ParseSyncDB(r io.Reader, repo string) ([]*deps.Package, error) {
	rd, closer, err := decompress(r)
	if err != nil {
		return nil, err
	}
	defer closer()

	descs := make(map[string]Desc)
	var order []string

	tr := tar.NewReader(rd)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeParse, err, "corrupt archive")
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		dir, base := path.Split(strings.TrimPrefix(hdr.Name, "./"))
		if base != "desc" && base != "depends" {
			continue
		}
		d, seen := descs[dir]
		if d, err = ParseDesc(tr, d); err != nil {
			return nil, errors.Wrap(errors.ErrCodeParse, err, "%s", hdr.Name)
		}
		if !seen {
			order = append(order, dir)
		}
		descs[dir] = d
	}

	pkgs := make([]*deps.Package, 0, len(order))
	for _, dir := range order {
		pkg, err := descs[dir].Package(repo, "ISIZE")
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeParse, err, "%s", dir)
		}
		pkgs = append(pkgs, pkg)
	}
	return pkgs, nil
}

// decompress sniffs the compression format from the leading bytes.
func decompress(r io.Reader) (io.Reader, func(), error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(6)

	switch {
	case bytes.HasPrefix(head, magicGzip):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeParse, err, "invalid gzip stream")
		}
		return zr, func() { zr.Close() }, nil
	case bytes.HasPrefix(head, magicZstd):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeParse, err, "invalid zstd stream")
		}
		return zr, zr.Close, nil
	case bytes.HasPrefix(head, magicBzip2):
		return bzip2.NewReader(br), func() {}, nil
	case bytes.HasPrefix(head, magicXz):
		return nil, nil, errors.New(errors.ErrCodeUnsupported, "xz compressed databases are not supported")
	}
	return br, func() {}, nil
}
