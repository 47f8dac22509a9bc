// Command dtl converts a document tree (JSON), Markdown, or HTML file
// into a complete LaTeX document.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/rgonek/doctree-latex-converter/doctree"
	"github.com/rgonek/doctree-latex-converter/htmltree"
	"github.com/rgonek/doctree-latex-converter/latex"
	"github.com/rgonek/doctree-latex-converter/mdtree"
)

const (
	formatAuto     = "auto"
	formatJSON     = "json"
	formatMarkdown = "markdown"
	formatHTML     = "html"
)

func presetConfig(preset string) (latex.Config, error) {
	switch strings.ToLower(strings.TrimSpace(preset)) {
	case "", "manual":
		return latex.Config{}, nil
	case "howto":
		return latex.Config{
			DocClass: latex.ClassHowto,
		}, nil
	case "book":
		return latex.Config{
			DocClass:    latex.ClassManual,
			UseParts:    true,
			UseModindex: true,
		}, nil
	default:
		return latex.Config{}, fmt.Errorf("unknown preset %q (allowed: manual, howto, book)", preset)
	}
}

func loadSettings(path string, cfg *latex.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// detectFormat picks an input format from the file extension, falling
// back to sniffing the content.
func detectFormat(path string, data []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON
	case ".md", ".markdown":
		return formatMarkdown
	case ".html", ".htm":
		return formatHTML
	}

	trimmed := strings.TrimSpace(string(data))
	switch {
	case strings.HasPrefix(trimmed, "{"):
		return formatJSON
	case strings.HasPrefix(trimmed, "<"):
		return formatHTML
	}
	return formatMarkdown
}

func parseInput(format string, data []byte) (*doctree.Node, []latex.Warning, error) {
	switch format {
	case formatJSON:
		tree, err := doctree.Unmarshal(data)
		return tree, nil, err
	case formatMarkdown:
		result, err := mdtree.New().Convert(string(data))
		return result.Tree, result.Warnings, err
	case formatHTML:
		result, err := htmltree.New().Convert(strings.NewReader(string(data)))
		return result.Tree, result.Warnings, err
	default:
		return nil, nil, fmt.Errorf("unknown input format %q (allowed: auto, json, markdown, html)", format)
	}
}

func main() {
	var (
		format       string
		outPath      string
		settingsPath string
		preset       string
		title        string
		author       string
		release      string
		paper        string
		docclass     string
		language     string
		imageDir     string
		missing      string
		linenos      int
		useParts     bool
		modindex     bool
		quiet        bool
	)

	flags := pflag.NewFlagSet("dtl", pflag.ExitOnError)
	flags.StringVarP(&format, "format", "f", formatAuto, "Input format: auto|json|markdown|html")
	flags.StringVarP(&outPath, "output", "o", "", "Output file instead of stdout")
	flags.StringVarP(&settingsPath, "settings", "s", "", "YAML settings file")
	flags.StringVar(&preset, "preset", "manual", "Preset: manual|howto|book")
	flags.StringVar(&title, "title", "", "Document title (default: first section title)")
	flags.StringVar(&author, "author", "", "Document author")
	flags.StringVar(&release, "release", "", "Release string")
	flags.StringVar(&paper, "paper", "", "Paper size: letter|a4|legal")
	flags.StringVar(&docclass, "docclass", "", "Document class: manual|howto")
	flags.StringVar(&language, "language", "", "Babel language name")
	flags.StringVar(&imageDir, "image-dir", "", "Directory to resolve image paths against")
	flags.StringVar(&missing, "missing-images", "", "Missing image policy: passthrough|skip|fail")
	flags.IntVar(&linenos, "lineno-threshold", 0, "Line count at which code blocks get line numbers (0 disables)")
	flags.BoolVar(&useParts, "use-parts", false, "Use \\part sectioning in the manual class")
	flags.BoolVar(&modindex, "modindex", false, "Emit a module index")
	flags.BoolVarP(&quiet, "quiet", "q", false, "Suppress warnings on stderr")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: dtl [flags] [input-file]\n")
		fmt.Fprintln(os.Stderr, "\nIf no input is provided, the document is read from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	cfg, err := presetConfig(preset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid preset: %v\n", err)
		os.Exit(1)
	}
	if settingsPath != "" {
		if err := loadSettings(settingsPath, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading settings: %v\n", err)
			os.Exit(1)
		}
	}

	if flags.Changed("title") {
		cfg.Title = title
	}
	if flags.Changed("author") {
		cfg.Author = author
	}
	if flags.Changed("release") {
		cfg.Release = release
	}
	if flags.Changed("paper") {
		cfg.PaperSize = latex.PaperSize(paper)
	}
	if flags.Changed("docclass") {
		cfg.DocClass = latex.DocClass(docclass)
	}
	if flags.Changed("language") {
		cfg.Language = language
	}
	if flags.Changed("missing-images") {
		cfg.MissingImages = latex.MissingImagePolicy(missing)
	}
	if flags.Changed("lineno-threshold") {
		cfg.LinenoThreshold = linenos
	}
	if flags.Changed("use-parts") {
		cfg.UseParts = useParts
	}
	if flags.Changed("modindex") {
		cfg.UseModindex = modindex
	}
	if imageDir != "" {
		cfg.ImageResolver = dirImageResolver(imageDir)
	}

	args := flags.Args()
	inputPath := ""
	var data []byte
	if len(args) > 0 {
		inputPath = args[0]
		data, err = os.ReadFile(inputPath)
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}

	if format == formatAuto {
		format = detectFormat(inputPath, data)
	}
	tree, warnings, err := parseInput(format, data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing input: %v\n", err)
		os.Exit(1)
	}

	translator, err := latex.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}
	result, err := translator.Translate(tree)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error translating document: %v\n", err)
		os.Exit(1)
	}

	if !quiet {
		for _, w := range append(warnings, result.Warnings...) {
			fmt.Fprintf(os.Stderr, "warning: %s (%s): %s\n", w.Type, w.NodeKind, w.Message)
		}
	}

	if outPath != "" {
		if err := os.WriteFile(outPath, []byte(result.TeX), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(1)
		}
		return
	}
	fmt.Print(result.TeX)
}

// dirImageResolver resolves image identifiers against a directory,
// reporting whether the file exists.
func dirImageResolver(dir string) latex.ImageResolver {
	return func(id string) (string, bool) {
		if strings.Contains(id, "://") {
			return id, true
		}
		resolved := filepath.Join(dir, id)
		if _, err := os.Stat(resolved); err != nil {
			return "", false
		}
		return resolved, true
	}
}
