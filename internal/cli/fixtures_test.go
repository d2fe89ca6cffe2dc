package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

// localPkg is one installed package of a test installation.
type localPkg struct {
	name     string
	size     int64
	explicit bool
	depends  []string
	optdeps  []string
}

// installation writes a pacman.conf without repositories and a local
// database:
//
//	app (explicit) -> libfoo -> glibc
//	app -> glibc
//	other (explicit) -> glibc
//	app ~> extras (optional)
func installation(t *testing.T) string {
	t.Helper()
	return writeInstallation(t,
		localPkg{name: "app", size: 1000, explicit: true, depends: []string{"libfoo", "glibc>=2.38"}, optdeps: []string{"extras: more features"}},
		localPkg{name: "libfoo", size: 400, depends: []string{"glibc"}},
		localPkg{name: "glibc", size: 2000},
		localPkg{name: "other", size: 500, explicit: true, depends: []string{"glibc"}},
		localPkg{name: "extras", size: 300},
	)
}

func writeInstallation(t *testing.T, pkgs ...localPkg) string {
	t.Helper()
	root := t.TempDir()
	dbpath := filepath.Join(root, "db")
	conf := filepath.Join(root, "pacman.conf")
	writeFile(t, conf, fmt.Sprintf("[options]\nRootDir = %s\nDBPath = %s/\n", root, dbpath))
	writeFile(t, filepath.Join(dbpath, "local", "ALPM_DB_VERSION"), "9\n")

	for _, p := range pkgs {
		var b strings.Builder
		fmt.Fprintf(&b, "%%NAME%%\n%s\n\n%%VERSION%%\n1.0-1\n\n%%SIZE%%\n%d\n\n", p.name, p.size)
		if !p.explicit {
			b.WriteString("%REASON%\n1\n\n")
		}
		if len(p.depends) > 0 {
			fmt.Fprintf(&b, "%%DEPENDS%%\n%s\n\n", strings.Join(p.depends, "\n"))
		}
		if len(p.optdeps) > 0 {
			fmt.Fprintf(&b, "%%OPTDEPENDS%%\n%s\n\n", strings.Join(p.optdeps, "\n"))
		}
		writeFile(t, filepath.Join(dbpath, "local", p.name+"-1.0-1", "desc"), b.String())
	}
	return conf
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// isolate points the settings and cache directories to a temporary
// directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	return dir
}

// execute runs the command tree with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var logs, out bytes.Buffer
	c := New(&logs, LogInfo)
	c.Out = &out
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&logs)
	err := root.Execute()
	return out.String(), err
}

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// plain strips terminal styling.
func plain(s string) string { return ansiRe.ReplaceAllString(s, "") }
