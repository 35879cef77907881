// Command xcorr finds templates in 2D data with normalized cross-correlation.
//
// Usage:
//
//	xcorr search -t template.csv -i image.csv [-s scores.csv] [-n]
//	xcorr demo [-seed 7] [-rows 64 -cols 64] [-patch 8 -y 20 -x 30]
//	xcorr info [-size 100]
//
// Matrices are read from CSV files, one row per line. The -b flag selects the
// transform backend (algo-fft or gonum).
package main

import (
	"log"

	"github.com/integrii/flaggy"
)

// AppName is the app name
const AppName = "xcorr"

// AppDesc is the app description
const AppDesc = "Batched 2D frequency-domain correlation and template search"

var version = "unknown"

func main() {
	log.SetFlags(0)

	cfg := newZeroConfig()

	cmd := doFlags(&cfg)
	chk(cfg.validate(), "invalid config")

	switch cmd {
	case "search":
		chk(runSearch(&cfg), "search failed")
	case "demo":
		chk(runDemo(&cfg), "demo failed")
	case "info":
		chk(runInfo(&cfg), "info failed")
	}
}

// doFlags parses the command line into cfg and returns the chosen subcommand.
func doFlags(cfg *config) string {
	parser := flaggy.NewParser(AppName)
	parser.Description = AppDesc
	parser.Version = version

	parser.String(&cfg.backend, "b", "backend", "transform backend (algo-fft, gonum)")

	searchCmd := flaggy.NewSubcommand("search")
	searchCmd.Description = "find a template in an image"
	searchCmd.String(&cfg.templatePath, "t", "template", "template CSV file")
	searchCmd.String(&cfg.imagePath, "i", "image", "image CSV file")
	searchCmd.String(&cfg.scoresPath, "s", "scores", "write the score surface as CSV ('-' for stdout)")
	searchCmd.Bool(&cfg.normalize, "n", "normalize", "shift both inputs to zero mean and unit peak first")
	parser.AttachSubcommand(searchCmd, 1)

	demoCmd := flaggy.NewSubcommand("demo")
	demoCmd.Description = "plant a constant patch in noise and find it again"
	demoCmd.Int64(&cfg.seed, "", "seed", "noise seed")
	demoCmd.Int(&cfg.rows, "", "rows", "scene rows")
	demoCmd.Int(&cfg.cols, "", "cols", "scene columns")
	demoCmd.Int(&cfg.patch, "p", "patch", "patch size")
	demoCmd.Int(&cfg.patchY, "y", "row", "patch row")
	demoCmd.Int(&cfg.patchX, "x", "col", "patch column")
	demoCmd.Float64(&cfg.value, "v", "value", "patch value")
	parser.AttachSubcommand(demoCmd, 1)

	infoCmd := flaggy.NewSubcommand("info")
	infoCmd.Description = "print backends, CPU features and padded geometry"
	infoCmd.Int(&cfg.size, "", "size", "size to pad")
	parser.AttachSubcommand(infoCmd, 1)

	chk(parser.Parse(), "failed to parse arguments")

	switch {
	case searchCmd.Used:
		if cfg.templatePath == "" || cfg.imagePath == "" {
			parser.ShowHelpAndExit("search needs --template and --image")
		}
		return "search"
	case demoCmd.Used:
		return "demo"
	case infoCmd.Used:
		return "info"
	}

	parser.ShowHelpAndExit("a subcommand is required")
	return ""
}

func chk(err error, wrap string) {
	if err != nil {
		log.Fatalln(wrap+": ", err)
	}
}
