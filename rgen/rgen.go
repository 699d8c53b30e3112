// Package rgen generates page manifests for nxrouter applications: it
// scans a directory of page sources and emits a Go file mapping each
// route path to the URL of the JSON document that backs it, ready to be
// fed to the router's prefetch engine.
package rgen

import (
	"bytes"
	"crypto/md5"
	"errors"
	"fmt"
	"go/format"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"
)

// GeneratedFileName is the name of the manifest written per directory.
const GeneratedFileName = "0_pages_nxgen.go"

// New returns a new Generator instance.
func New() *Generator {
	return &Generator{}
}

// Generator performs page-manifest generation on a given directory (and
// optionally sub-directories).
type Generator struct {
	dir         string                           // starting directory
	recursive   bool                             // if true we will descend into directories
	packageName string                           // fully qualified package name corresponding to dir
	pathFunc    func(fileName string) string     // function to derive route path from file name
	dataFunc    func(routePath string) string    // function to derive data URL from route path
	includeFunc func(path, fileName string) bool // function to determine if a file should be included
}

// SetDir assigns the directory to start generating in.
func (g *Generator) SetDir(dir string) *Generator {
	g.dir = dir
	return g
}

// SetRecursive if passed true will enable the generator recursing
// into sub-directories.
func (g *Generator) SetRecursive(recursive bool) *Generator {
	g.recursive = recursive
	return g
}

// SetPackageName sets the fully qualified package name that corresponds
// with the directory set with SetDir.
func (g *Generator) SetPackageName(packageName string) *Generator {
	g.packageName = packageName
	return g
}

// SetPathFunc sets the function deriving a route path from a file name.
// If not set, DefaultPathFunc will be used.
func (g *Generator) SetPathFunc(f func(fileName string) string) *Generator {
	g.pathFunc = f
	return g
}

// SetDataFunc sets the function deriving the data URL from a route
// path.  If not set, DefaultDataFunc will be used.
func (g *Generator) SetDataFunc(f func(routePath string) string) *Generator {
	g.dataFunc = f
	return g
}

// SetIncludeFunc sets the function which determines which files are included
// in the page map.  The include function will be passed the path relative to
// the dir set by SetDir (and will be empty for files in that directory) and
// fileName will contain the base file name.
func (g *Generator) SetIncludeFunc(f func(path, fileName string) bool) *Generator {
	g.includeFunc = f
	return g
}

// DefaultPathFunc will return the fileName with any suffix removed and a
// slash prepended.  E.g. file name "example.vugu" will return "/example".
// The special case of index.* will return "/".
func DefaultPathFunc(fileName string) string {
	base := strings.TrimSuffix(fileName, path.Ext(fileName))
	if base == "index" {
		return "/"
	}
	return "/" + base
}

// DefaultDataFunc maps a route path to "<path>/index.json", collapsing
// the root route to "/index.json".
func DefaultDataFunc(routePath string) string {
	if routePath == "" || routePath == "/" {
		return "/index.json"
	}
	return routePath + "/index.json"
}

// DefaultIncludeFunc will return true for any file which ends with .vugu.
func DefaultIncludeFunc(path, fileName string) bool {
	return strings.HasSuffix(fileName, ".vugu")
}

// Config is the on-disk generator configuration, usually nxrgen.toml.
type Config struct {
	Dir       string `toml:"dir"`
	Package   string `toml:"package"`
	Recursive bool   `toml:"recursive"`
	Ext       string `toml:"ext"` // page file extension, default ".vugu"
}

// LoadConfig reads a TOML config file.
func LoadConfig(path string) (*Config, error) {
	var c Config
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return nil, fmt.Errorf("rgen: reading config %q: %w", path, err)
	}
	return &c, nil
}

// ApplyConfig applies c to the generator.  Zero values leave the
// corresponding setting untouched.
func (g *Generator) ApplyConfig(c *Config) *Generator {
	if c.Dir != "" {
		g.dir = c.Dir
	}
	if c.Package != "" {
		g.packageName = c.Package
	}
	if c.Recursive {
		g.recursive = true
	}
	if c.Ext != "" {
		ext := c.Ext
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		g.includeFunc = func(path, fileName string) bool {
			return strings.HasSuffix(fileName, ext)
		}
	}
	return g
}

// Generate does the page-manifest generation.
func (g *Generator) Generate() error {

	// to keep our sanity we need to guarantee that g.dir is absolute
	dir, err := filepath.Abs(g.dir)
	if err != nil {
		return err
	}
	g.dir = dir

	// auto-detect g.packageName as needed
	if g.packageName == "" {
		g.packageName, err = guessImportPath(dir)
		if err != nil {
			return err
		}
	}

	df, err := g.readDirf(g.dir)
	if err != nil {
		return err
	}

	return g.writePages(df)
}

func (g *Generator) readDirf(dirPath string) (*dirf, error) {

	includeFunc := g.includeFunc
	if includeFunc == nil {
		includeFunc = DefaultIncludeFunc
	}

	fis, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, err
	}

	rel, err := filepath.Rel(g.dir, dirPath)
	if err != nil {
		return nil, fmt.Errorf("relative path conversion failed: %w", err)
	}
	rel = strings.TrimPrefix(path.Clean("/"+filepath.ToSlash(rel)), "/")

	ret := &dirf{
		path: rel,
	}

	for _, fi := range fis {

		if fi.IsDir() {
			if !g.recursive {
				continue
			}
			subdirf, err := g.readDirf(filepath.Join(dirPath, fi.Name()))
			if err != nil {
				return nil, err
			}
			if ret.subdirs == nil {
				ret.subdirs = make(map[string]*dirf)
			}
			ret.subdirs[fi.Name()] = subdirf
			continue
		}

		if includeFunc(rel, fi.Name()) {
			ret.fileNames = append(ret.fileNames, fi.Name())
		}
	}

	return ret, nil

}

type dirf struct {
	path      string           // path relative to g.dir
	fileNames []string         // list of included files
	subdirs   map[string]*dirf // children
}

func (df *dirf) Path() string { return df.path }

func (g *Generator) writePages(df *dirf) error {

	_, localPackage := path.Split(df.path)
	if localPackage == "" {
		_, localPackage = filepath.Split(g.dir)
	}

	cm := map[string]interface{}{
		"LocalPackage": localPackage,
		"PackageName":  g.packageName,
		"FileNameList": df.fileNames,
		"Subdirs":      df.subdirs,
		"Recursive":    g.recursive,
	}

	fm := template.FuncMap{
		"PathName": func(s string) string {
			pf := g.pathFunc
			if pf == nil {
				pf = DefaultPathFunc
			}
			return pf(s)
		},
		"DataName": func(s string) string {
			pf := g.pathFunc
			if pf == nil {
				pf = DefaultPathFunc
			}
			dataf := g.dataFunc
			if dataf == nil {
				dataf = DefaultDataFunc
			}
			return dataf(pf(s))
		},
		"HashIdent": func(s string) string {
			return fmt.Sprintf("ident%x", md5.Sum([]byte(s)))
		},
		"PathBase": path.Base,
	}

	t := template.New(GeneratedFileName)
	t.Funcs(fm)
	t, err := t.Parse(`package {{.LocalPackage}}

// WARNING: This file was generated by nxrouter/rgen. Do not modify.

import "path"

{{if .Recursive}}{{range $k, $subdir := .Subdirs}}import {{HashIdent (printf "%s%s" $.PackageName $subdir.Path)}} "{{$.PackageName}}/{{$subdir.Path}}"
{{end}}{{end}}

// nxPageMap is the generated page mappings for this package.
// The key is the route path and the value is the URL of the JSON
// document backing it, ready for prefetch registration.
var nxPageMap = map[string]string{
{{range $k, $v := .FileNameList}}	"{{PathName $v}}": "{{DataName $v}}",
{{end}}
}

type nxpages struct {
	prefix string
	recursive bool
	clean bool
}

func (r nxpages) WithRecursive(v bool) nxpages {
	r.recursive = v
	return r
}

func (r nxpages) WithPrefix(v string) nxpages {
	r.prefix = v
	return r
}

func (r nxpages) WithClean(v bool) nxpages {
	r.clean = v
	return r
}

func (r nxpages) Map() map[string]string {
	ret := make(map[string]string, len(nxPageMap))
	for k, v := range nxPageMap {
		key := r.prefix+k
		if r.clean {
			key = path.Clean(key)
		}
		ret[key] = v
	}

	{{if .Recursive}}
	if r.recursive {
		{{range $k, $subdir := .Subdirs}}
		for k, v := range {{HashIdent (printf "%s%s" $.PackageName $subdir.Path)}}.
				MakePages().
				WithClean(r.clean).
				WithRecursive(true).
				WithPrefix(r.prefix+"/{{PathBase $subdir.Path}}").
				Map() {
			if r.clean {
				k = path.Clean(k)
			}
			ret[k] = v
		}
		{{end}}
	}
	{{end}}

	return ret
}

// MakePages returns the page map for this package and any sub-packages
// as applicable.
func MakePages() nxpages {
	return nxpages{}
}
`)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	err = t.Execute(&buf, cm)
	if err != nil {
		return err
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("error formatting generated page map for %q: %w", df.path, err)
	}

	fullPageMapPath := filepath.Join(g.dir, df.path, GeneratedFileName)

	// leave the file alone when its content is already current
	prior, priorErr := os.ReadFile(fullPageMapPath)
	if priorErr != nil || !bytes.Equal(prior, src) {
		if err := os.WriteFile(fullPageMapPath, src, 0644); err != nil {
			return err
		}
	}

	if g.recursive {
		// recurse into subdirs
		for _, subdf := range df.subdirs {
			err := g.writePages(subdf)
			if err != nil {
				return fmt.Errorf("error in writePages for %q: %w", subdf.path, err)
			}
		}
	}

	return nil
}

func guessImportPath(dir string) (string, error) {

	after := ""
	lastDir := ""

	for {
		f, err := os.Open(filepath.Join(dir, "go.mod"))
		if err == nil {
			defer f.Close()
			ret, err := readModuleEntry(f)
			return ret + after, err
		}

		after = "/" + filepath.Base(dir) + after

		dir, err = filepath.Abs(filepath.Join(dir, ".."))
		if err != nil {
			return "", err
		}

		if dir == lastDir { // we hit the root dir
			return "", fmt.Errorf("no go.mod file found, cannot guess import path")
		}
		lastDir = dir
	}

}

func readModuleEntry(r io.Reader) (string, error) {

	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	ret := modulePath(b)
	if ret == "" {
		return "", errors.New("unable to determine module path from go.mod")
	}

	return ret, nil
}

// modulePath returns the module path from the go.mod file text.
// If it cannot find a module path, it returns an empty string.
// It is tolerant of unrelated problems in the go.mod file.
// Adapted from the modfile reader in the Go toolchain.
func modulePath(mod []byte) string {
	for len(mod) > 0 {
		line := mod
		mod = nil
		if i := bytes.IndexByte(line, '\n'); i >= 0 {
			line, mod = line[:i], line[i+1:]
		}
		if i := bytes.Index(line, slashSlash); i >= 0 {
			line = line[:i]
		}
		line = bytes.TrimSpace(line)
		if !bytes.HasPrefix(line, moduleStr) {
			continue
		}
		line = line[len(moduleStr):]
		n := len(line)
		line = bytes.TrimSpace(line)
		if len(line) == n || len(line) == 0 {
			continue
		}

		if line[0] == '"' || line[0] == '`' {
			p, err := strconv.Unquote(string(line))
			if err != nil {
				return "" // malformed quoted string or multiline module path
			}
			return p
		}

		return string(line)
	}
	return "" // missing module path
}

var (
	slashSlash = []byte("//")
	moduleStr  = []byte("module")
)
