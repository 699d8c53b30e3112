package rgen

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
)

func TestGenerate(t *testing.T) {

	// the generated package name comes from the directory base name, so
	// give it a valid identifier rather than the random temp dir name
	tmpDir := filepath.Join(t.TempDir(), "pagetest")

	must := func(err error) {
		if err != nil {
			t.Fatal(err)
		}
	}

	must(os.MkdirAll(tmpDir, 0755))
	must(os.WriteFile(filepath.Join(tmpDir, "go.mod"), []byte("module pagetest\n"), 0644))
	must(os.WriteFile(filepath.Join(tmpDir, "index.vugu"), []byte("<div></div>"), 0644))
	must(os.WriteFile(filepath.Join(tmpDir, "about.vugu"), []byte("<div></div>"), 0644))
	must(os.MkdirAll(filepath.Join(tmpDir, "docs"), 0755))
	must(os.WriteFile(filepath.Join(tmpDir, "docs", "index.vugu"), []byte("<div></div>"), 0644))
	must(os.WriteFile(filepath.Join(tmpDir, "docs", "getting-started.vugu"), []byte("<div></div>"), 0644))

	err := New().SetDir(tmpDir).SetRecursive(true).Generate()
	if err != nil {
		t.Fatal(err)
	}

	rootOut, err := os.ReadFile(filepath.Join(tmpDir, GeneratedFileName))
	if err != nil {
		t.Fatal(err)
	}

	for _, pat := range []string{
		`"/":\s+"/index\.json"`,
		`"/about":\s+"/about/index\.json"`,
		`"pagetest/docs"`, // subdir package imported for recursion
		`func MakePages\(\) nxpages`,
	} {
		if !regexp.MustCompile(pat).Match(rootOut) {
			t.Errorf("generated root manifest missing %s:\n%s", pat, rootOut)
		}
	}

	docsOut, err := os.ReadFile(filepath.Join(tmpDir, "docs", GeneratedFileName))
	if err != nil {
		t.Fatal(err)
	}

	for _, pat := range []string{
		`package docs`,
		`"/":\s+"/index\.json"`,
		`"/getting-started":\s+"/getting-started/index\.json"`,
	} {
		if !regexp.MustCompile(pat).Match(docsOut) {
			t.Errorf("generated docs manifest missing %s:\n%s", pat, docsOut)
		}
	}

	// regenerating with unchanged content must not rewrite the file
	before, err := os.Stat(filepath.Join(tmpDir, GeneratedFileName))
	if err != nil {
		t.Fatal(err)
	}
	if err := New().SetDir(tmpDir).SetRecursive(true).Generate(); err != nil {
		t.Fatal(err)
	}
	after, err := os.Stat(filepath.Join(tmpDir, GeneratedFileName))
	if err != nil {
		t.Fatal(err)
	}
	if !after.ModTime().Equal(before.ModTime()) {
		t.Error("unchanged manifest was rewritten")
	}

}

func TestPathAndDataFuncs(t *testing.T) {

	if got := DefaultPathFunc("index.vugu"); got != "/" {
		t.Errorf("DefaultPathFunc(index.vugu) = %q", got)
	}
	if got := DefaultPathFunc("pricing.vugu"); got != "/pricing" {
		t.Errorf("DefaultPathFunc(pricing.vugu) = %q", got)
	}
	if got := DefaultDataFunc("/"); got != "/index.json" {
		t.Errorf("DefaultDataFunc(/) = %q", got)
	}
	if got := DefaultDataFunc("/pricing"); got != "/pricing/index.json" {
		t.Errorf("DefaultDataFunc(/pricing) = %q", got)
	}

}

func TestConfig(t *testing.T) {

	tmpDir := filepath.Join(t.TempDir(), "pages")
	if err := os.MkdirAll(tmpDir, 0755); err != nil {
		t.Fatal(err)
	}

	cfgPath := filepath.Join(tmpDir, "nxrgen.toml")
	if err := os.WriteFile(cfgPath, []byte("package = \"pagetest\"\next = \"page\"\nrecursive = true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Package != "pagetest" || cfg.Ext != "page" || !cfg.Recursive {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "home.page"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "skipped.vugu"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	err = New().SetDir(tmpDir).ApplyConfig(cfg).Generate()
	if err != nil {
		t.Fatal(err)
	}

	out, err := os.ReadFile(filepath.Join(tmpDir, GeneratedFileName))
	if err != nil {
		t.Fatal(err)
	}

	if !regexp.MustCompile(`"/home":\s+"/home/index\.json"`).Match(out) {
		t.Errorf("expected /home in manifest:\n%s", out)
	}
	if regexp.MustCompile(`skipped`).Match(out) {
		t.Errorf("ext filter failed, .vugu file included:\n%s", out)
	}

}

func TestModulePath(t *testing.T) {

	type tcase struct {
		in   string
		want string
	}

	tclist := []tcase{
		{"module pagetest\n", "pagetest"},
		{"// comment\nmodule  github.com/a/b\n", "github.com/a/b"},
		{"module \"quoted/path\"\n", "quoted/path"},
		{"require something v1.0.0\n", ""},
	}

	for _, tc := range tclist {
		if got := modulePath([]byte(tc.in)); got != tc.want {
			t.Errorf("modulePath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

}
