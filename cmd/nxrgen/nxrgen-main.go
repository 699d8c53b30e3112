package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/nxgo/nxrouter/rgen"
)

func main() {

	packageName := flag.String("p", "", "The full package name to use.  If unspecified auto-detection will be attempted using go.mod")
	recursive := flag.Bool("r", false, "Specify to recursively process subdirectories")
	configFile := flag.String("c", "", "Path to an nxrgen.toml config file")
	q := flag.Bool("q", false, "Only print information upon error (quiet mode)")

	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		args = []string{"."} // default to current dir
	}

	if *packageName != "" && len(args) > 1 {
		log.Fatalf("-p is only valid with a single directory, either don't use -p or only specify one dir")
	}

	var cfg *rgen.Config
	if *configFile != "" {
		var err error
		cfg, err = rgen.LoadConfig(*configFile)
		if err != nil {
			log.Fatal(err)
		}
	}

	for _, arg := range args {

		dir, err := filepath.Abs(arg)
		if err != nil {
			log.Fatalf("Error converting %q to absolute path: %v", arg, err)
		}

		if !*q {
			log.Printf("Processing pages for dir: %s", arg)
		}

		g := rgen.New().
			SetDir(dir).
			SetPackageName(*packageName).
			SetRecursive(*recursive)
		if cfg != nil {
			g.ApplyConfig(cfg)
		}

		if err := g.Generate(); err != nil {
			log.Fatal(err)
		}

	}

}
