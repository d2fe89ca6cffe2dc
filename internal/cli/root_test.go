package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jjk-jacky/pacdep/pkg/errors"
)

func col(s string) string { return fmt.Sprintf("%-24s", s) }

func TestRootText(t *testing.T) {
	isolate(t)
	conf := installation(t)

	out, err := execute(t, "-c", conf, "app")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	want := col("app") + "  1000 B (  1.37 KiB)\n" +
		col("Exclusive dependencies:") + "   400 B\n" +
		col("Shared dependencies:") + "  1.95 KiB\n" +
		col("Total dependencies:") + "  2.34 KiB (  3.71 KiB)\n"
	if got := plain(out); got != want {
		t.Errorf("output mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRootListing(t *testing.T) {
	isolate(t)
	conf := installation(t)

	out, err := execute(t, "-c", conf, "-e", "-s", "-p", "-o", "app")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	want := col("app") + "  1000 B (  1.66 KiB)\n" +
		col("Exclusive dependencies:") + "   400 B\n" +
		" libfoo    400 B\n" +
		col("Optional dependencies:") + "   300 B\n" +
		" extras    300 B\n" +
		col("Shared dependencies:") + "  1.95 KiB\n" +
		" glibc   1.95 KiB\n" +
		col("Total dependencies:") + "  2.64 KiB (  4.30 KiB)\n"
	if got := plain(out); got != want {
		t.Errorf("output mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

// jsonReport mirrors the fields of report.Report the tests look at.
type jsonReport struct {
	Reverse  bool `json:"reverse"`
	Packages []struct {
		Name string `json:"name"`
	} `json:"packages"`
	Groups []struct {
		Classification string `json:"classification"`
		Count          int    `json:"count"`
		Size           int64  `json:"size"`
		Members        []struct {
			Name string `json:"name"`
		} `json:"members"`
	} `json:"groups"`
	Totals struct {
		Impact int64 `json:"impact"`
		Total  int64 `json:"total"`
	} `json:"totals"`
}

func decodeReports(t *testing.T, out string) []jsonReport {
	t.Helper()
	var reports []jsonReport
	if err := json.Unmarshal([]byte(out), &reports); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	return reports
}

func TestRootJSON(t *testing.T) {
	isolate(t)
	conf := installation(t)

	out, err := execute(t, "-c", conf, "-f", "json", "app", "other")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	reports := decodeReports(t, out)
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want one per package", len(reports))
	}
	if reports[0].Totals.Impact != 1400 || reports[0].Totals.Total != 3800 {
		t.Errorf("app totals = %+v", reports[0].Totals)
	}
	// glibc is needed by app, which is outside other's closure.
	if reports[1].Groups[1].Classification != "shared" || reports[1].Groups[1].Size != 2000 {
		t.Errorf("other groups = %+v", reports[1].Groups)
	}
}

func TestRootCombined(t *testing.T) {
	isolate(t)
	conf := installation(t)

	out, err := execute(t, "-c", conf, "-f", "json", "-C", "-e", "app", "other")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	reports := decodeReports(t, out)
	if len(reports) != 1 || len(reports[0].Packages) != 2 {
		t.Fatalf("reports = %+v, want one report with two packages", reports)
	}
	excl := reports[0].Groups[0]
	if excl.Count != 2 || excl.Size != 2400 {
		t.Errorf("exclusive = %+v, want libfoo and glibc", excl)
	}
}

func TestRootReverse(t *testing.T) {
	isolate(t)
	conf := installation(t)

	out, err := execute(t, "-c", conf, "-f", "json", "-r", "-e", "glibc")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	r := decodeReports(t, out)[0]
	if !r.Reverse || len(r.Groups) != 1 {
		t.Fatalf("report = %+v", r)
	}
	var names []string
	for _, m := range r.Groups[0].Members {
		names = append(names, m.Name)
	}
	if got := strings.Join(names, ","); got != "app,libfoo,other" {
		t.Errorf("required by = %s", got)
	}
}

func TestRootYAML(t *testing.T) {
	isolate(t)
	conf := installation(t)

	out, err := execute(t, "-c", conf, "--format", "yaml", "app")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.HasPrefix(out, "- reverse: false\n") || !strings.Contains(out, "classification: exclusive") {
		t.Errorf("unexpected yaml:\n%s", out)
	}
}

func TestRootSettingsFile(t *testing.T) {
	dir := isolate(t)
	conf := installation(t)
	writeFile(t, filepath.Join(dir, "config", "pacdep", "config.toml"),
		fmt.Sprintf("pacman_conf = %q\nformat = \"json\"\n\n[list]\nexclusive = true\n", conf))

	out, err := execute(t, "app")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	r := decodeReports(t, out)[0]
	if len(r.Groups[0].Members) != 1 {
		t.Errorf("settings file listing not applied: %+v", r.Groups[0])
	}

	// Flags win over the file.
	out, err = execute(t, "-f", "text", "--list-exclusive=false", "app")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if strings.Contains(plain(out), " libfoo") {
		t.Errorf("listing not overridden:\n%s", out)
	}
}

func TestRootErrors(t *testing.T) {
	isolate(t)
	conf := installation(t)

	tests := []struct {
		name string
		args []string
		code errors.Code
		exit int
	}{
		{"no package", []string{"-c", conf}, errors.ErrCodeNoPackages, 4},
		{"unknown package", []string{"-c", conf, "nope"}, errors.ErrCodeNoPackages, 4},
		{"bad format", []string{"-c", conf, "-f", "xml", "app"}, errors.ErrCodeInvalidFormat, 1},
		{"too many -p", []string{"-c", conf, "-pppp", "app"}, errors.ErrCodeInvalidInput, 1},
		{"missing pacman.conf", []string{"-c", filepath.Join(t.TempDir(), "none.conf"), "app"}, errors.ErrCodeFileRead, 2},
		{"bad settings", []string{"--settings", writeBadSettings(t), "app"}, errors.ErrCodeInvalidConfig, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Fatalf("err = %v, want %s", err, tt.code)
			}
			if got := errors.ExitCode(err); got != tt.exit {
				t.Errorf("exit code = %d, want %d", got, tt.exit)
			}
		})
	}
}

func writeBadSettings(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "bad.toml")
	writeFile(t, path, "sort = \"random\"\n")
	return path
}

func TestRootSkipsUnknownPackage(t *testing.T) {
	isolate(t)
	conf := installation(t)

	out, err := execute(t, "-c", conf, "-f", "json", "nope", "app")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if reports := decodeReports(t, out); len(reports) != 1 || reports[0].Packages[0].Name != "app" {
		t.Errorf("reports = %+v", reports)
	}
}
