package pacman

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/jjk-jacky/pacdep/pkg/deps"
	"github.com/jjk-jacky/pacdep/pkg/errors"
)

// Desc holds the %FIELD% blocks of a database entry. Each field maps to its
// lines, in file order.
type Desc map[string][]string

// ParseDesc reads a desc (or legacy depends) file: a %NAME% header line
// followed by one value per line, blocks separated by blank lines.
// Successive calls with the same Desc merge fields.
func ParseDesc(r io.Reader, into Desc) (Desc, error) {
	if into == nil {
		into = make(Desc)
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var field string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		switch {
		case line == "":
			field = ""
		case field == "" && len(line) > 2 && line[0] == '%' && line[len(line)-1] == '%':
			field = line[1 : len(line)-1]
			if _, ok := into[field]; !ok {
				into[field] = nil
			}
		case field != "":
			into[field] = append(into[field], line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "cannot parse package description")
	}
	return into, nil
}

// First returns the first value of a field, or "".
func (d Desc) First(field string) string {
	if v := d[field]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// Package converts the fields into a package. sizeField is SIZE for the
// local database and ISIZE for sync databases.
func (d Desc) Package(repo, sizeField string) (*deps.Package, error) {
	name := d.First("NAME")
	if name == "" {
		return nil, errors.New(errors.ErrCodeParse, "package entry without %%NAME%%")
	}
	pkg := &deps.Package{
		Name:        name,
		Version:     d.First("VERSION"),
		Description: d.First("DESC"),
		Repo:        repo,
		Depends:     d["DEPENDS"],
		Provides:    d["PROVIDES"],
	}
	if d.First("REASON") == "1" {
		pkg.Reason = deps.ReasonDepend
	}
	if s := d.First(sizeField); s != "" {
		size, err := strconv.ParseInt(s, 10, 64)
		if err != nil || size < 0 {
			return nil, errors.New(errors.ErrCodeParse, "%s: invalid %%%s%% %q", name, sizeField, s)
		}
		pkg.InstalledSize = size
	}
	for _, od := range d["OPTDEPENDS"] {
		pkg.OptDepends = append(pkg.OptDepends, ParseOptDepend(od))
	}
	return pkg, nil
}

// DepSpec is a parsed dependency string such as "glibc>=2.38".
type DepSpec struct {
	Name    string
	Op      string // "", "=", "<", "<=", ">", ">="
	Version string
}

// ParseDepSpec splits a dependency string into name, operator and version.
// A trailing ": description" (optional dependencies) is dropped.
func ParseDepSpec(s string) DepSpec {
	s, _, _ = strings.Cut(s, ": ")
	i := strings.IndexAny(s, "<>=")
	if i < 0 {
		return DepSpec{Name: s}
	}
	op := s[i : i+1]
	if i+1 < len(s) && s[i+1] == '=' {
		op += "="
	}
	return DepSpec{Name: s[:i], Op: op, Version: s[i+len(op):]}
}

// String reassembles the spec.
func (d DepSpec) String() string { return d.Name + d.Op + d.Version }

// ParseOptDepend parses an optional dependency line "name: description".
// Any version constraint on the name is dropped.
func ParseOptDepend(s string) deps.OptDepend {
	spec, desc, _ := strings.Cut(s, ":")
	return deps.OptDepend{
		Name:        ParseDepSpec(strings.TrimSpace(spec)).Name,
		Description: strings.TrimSpace(desc),
	}
}
