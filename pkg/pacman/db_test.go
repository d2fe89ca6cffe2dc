package pacman

import (
	"slices"
	"testing"

	"github.com/jjk-jacky/pacdep/pkg/deps"
)

func pkg(name, repo string, depends []string, provides ...string) *deps.Package {
	return &deps.Package{Name: name, Repo: repo, Reason: deps.ReasonDepend, Depends: depends, Provides: provides}
}

func testDB() *DB {
	local := NewRepository(LocalName, []*deps.Package{
		pkg("bash", "", []string{"glibc"}, "sh"),
		pkg("glibc", "", nil),
		pkg("mksh", "", nil, "sh=59"),
		pkg("scripts", "", []string{"sh", "glibc"}),
		pkg("tools", "", []string{"bash>=5", "sh"}),
	})
	core := NewRepository("core", []*deps.Package{
		pkg("glibc", "core", nil),
		pkg("dash", "core", []string{"glibc"}, "sh"),
		pkg("busybox", "core", nil, "sh"),
	})
	extra := NewRepository("extra", []*deps.Package{
		pkg("busybox", "extra", nil),
		pkg("zsh", "extra", []string{"glibc"}),
		pkg("shells", "extra", []string{"busybox"}),
	})
	return NewDB(local, core, extra)
}

func TestFindPackage(t *testing.T) {
	db := testDB()
	tests := []struct {
		spec     string
		set      deps.SearchSet
		wantName string
		wantRepo string
	}{
		{"glibc", deps.SearchBoth, "glibc", ""},
		{"glibc>=2.38", deps.SearchSync, "glibc", "core"},
		{"sh", deps.SearchBoth, "bash", ""},
		{"sh", deps.SearchSync, "dash", "core"},
		{"busybox", deps.SearchSync, "busybox", "core"},
		{"zsh", deps.SearchBoth, "zsh", "extra"},
	}
	for _, tt := range tests {
		p, ok := db.FindPackage(tt.spec, tt.set)
		if !ok {
			t.Errorf("FindPackage(%q) not found", tt.spec)
			continue
		}
		if p.Name != tt.wantName || p.Repo != tt.wantRepo {
			t.Errorf("FindPackage(%q) = %s/%s, want %s/%s", tt.spec, p.Repo, p.Name, tt.wantRepo, tt.wantName)
		}
	}

	if _, ok := db.FindPackage("zsh", deps.SearchLocal); ok {
		t.Error("zsh is not installed")
	}
	if _, ok := db.Package("sh", deps.SearchBoth); ok {
		t.Error("Package must not follow provides")
	}
}

func TestRequiredBy(t *testing.T) {
	db := testDB()
	local := db.Local()
	bash, _ := local.Package("bash")
	glibc, _ := local.Package("glibc")
	mksh, _ := local.Package("mksh")

	tests := []struct {
		pkg  *deps.Package
		want []string
	}{
		{bash, []string{"scripts", "tools"}},
		{glibc, []string{"bash", "scripts"}},
		{mksh, []string{"scripts", "tools"}},
	}
	for _, tt := range tests {
		if got := db.RequiredBy(tt.pkg); !slices.Equal(got, tt.want) {
			t.Errorf("RequiredBy(%s) = %v, want %v", tt.pkg.Name, got, tt.want)
		}
	}

	syncGlibc, _ := db.Package("glibc", deps.SearchSync)
	if got := db.RequiredBy(syncGlibc); !slices.Equal(got, []string{"dash", "zsh"}) {
		t.Errorf("RequiredBy(core/glibc) = %v", got)
	}
	busybox, _ := db.Package("busybox", deps.SearchSync)
	if got := db.RequiredBy(busybox); !slices.Equal(got, []string{"shells"}) {
		t.Errorf("RequiredBy(core/busybox) = %v", got)
	}
}

func TestPackagesIteration(t *testing.T) {
	db := testDB()
	var n int
	for range db.Packages(deps.SearchSync) {
		n++
	}
	if n != 6 {
		t.Errorf("sync packages = %d, want 6", n)
	}

	var first []string
	for p := range db.Packages(deps.SearchBoth) {
		first = append(first, p.Name)
		if len(first) == 2 {
			break
		}
	}
	if !slices.Equal(first, []string{"bash", "glibc"}) {
		t.Errorf("early break = %v", first)
	}
}
