package latex

import (
	"fmt"
	"math"
	"time"
)

// DocClass selects the LaTeX document class.
type DocClass string

const (
	ClassManual DocClass = "manual"
	ClassHowto  DocClass = "howto"
)

// PaperSize selects the paper size class option.
type PaperSize string

const (
	PaperLetter PaperSize = "letter"
	PaperA4     PaperSize = "a4"
	PaperLegal  PaperSize = "legal"
)

// MissingImagePolicy controls behavior for images with no resolvable
// path. Remote URIs are always skipped regardless of policy.
type MissingImagePolicy string

const (
	// MissingImagePassthrough emits the raw identifier as the path.
	MissingImagePassthrough MissingImagePolicy = "passthrough"
	// MissingImageSkip drops the image and records a warning.
	MissingImageSkip MissingImagePolicy = "skip"
	// MissingImageFail aborts the translation.
	MissingImageFail MissingImagePolicy = "fail"
)

// Config holds all translator configuration options.
type Config struct {
	DocClass     DocClass  `json:"docClass,omitempty" yaml:"docClass,omitempty"`
	PaperSize    PaperSize `json:"paperSize,omitempty" yaml:"paperSize,omitempty"`
	PointSize    string    `json:"pointSize,omitempty" yaml:"pointSize,omitempty"`
	ClassOptions string    `json:"classOptions,omitempty" yaml:"classOptions,omitempty"`
	Language     string    `json:"language,omitempty" yaml:"language,omitempty"`

	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	Author   string `json:"author,omitempty" yaml:"author,omitempty"`
	Release  string `json:"release,omitempty" yaml:"release,omitempty"`
	Date     string `json:"date,omitempty" yaml:"date,omitempty"`
	Docname  string `json:"docname,omitempty" yaml:"docname,omitempty"`
	Logo     string `json:"logo,omitempty" yaml:"logo,omitempty"`
	Preamble string `json:"preamble,omitempty" yaml:"preamble,omitempty"`

	UseParts    bool `json:"useParts,omitempty" yaml:"useParts,omitempty"`
	UseModindex bool `json:"useModindex,omitempty" yaml:"useModindex,omitempty"`

	HighlightLanguage string `json:"highlightLanguage,omitempty" yaml:"highlightLanguage,omitempty"`
	// LinenoThreshold is the number of code lines at which line
	// numbering turns on; 0 means never.
	LinenoThreshold int `json:"linenoThreshold,omitempty" yaml:"linenoThreshold,omitempty"`

	MissingImages MissingImagePolicy `json:"missingImages,omitempty" yaml:"missingImages,omitempty"`

	// Labels overrides locale display strings keyed by semantic name
	// (admonition names, "seealso", "release", "modindex", "index").
	Labels map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`

	Highlighter   Highlighter   `json:"-" yaml:"-"`
	ImageResolver ImageResolver `json:"-" yaml:"-"`
}

func defaultLabels() map[string]string {
	return map[string]string{
		"attention": "Attention",
		"caution":   "Caution",
		"danger":    "Danger",
		"error":     "Error",
		"hint":      "Hint",
		"important": "Important",
		"note":      "Note",
		"tip":       "Tip",
		"warning":   "Warning",
		"seealso":   "See Also",
		"release":   "Release",
		"modindex":  "Module Index",
		"index":     "Index",
	}
}

// versionIntros formats version-change annotations by change type.
var versionIntros = map[string]string{
	"versionadded":   "New in version %s",
	"versionchanged": "Changed in version %s",
	"deprecated":     "Deprecated since version %s",
}

func (c Config) applyDefaults() Config {
	if c.DocClass == "" {
		c.DocClass = ClassManual
	}
	if c.PaperSize == "" {
		c.PaperSize = PaperLetter
	}
	if c.PointSize == "" {
		c.PointSize = "10pt"
	}
	if c.Date == "" {
		c.Date = time.Now().Format("January 2, 2006")
	}
	if c.HighlightLanguage == "" {
		c.HighlightLanguage = "python"
	}
	if c.LinenoThreshold == 0 {
		c.LinenoThreshold = math.MaxInt
	}
	if c.MissingImages == "" {
		c.MissingImages = MissingImagePassthrough
	}
	if c.Highlighter == nil {
		c.Highlighter = VerbatimHighlighter{}
	}

	labels := defaultLabels()
	for key, value := range c.Labels {
		labels[key] = value
	}
	c.Labels = labels

	return c
}

// clone returns a deep copy of Config for map-backed fields.
func (c Config) clone() Config {
	cloned := c
	cloned.Labels = cloneStringMap(c.Labels)
	return cloned
}

// Validate checks that config values are valid.
func (c Config) Validate() error {
	if c.DocClass != ClassManual && c.DocClass != ClassHowto {
		return fmt.Errorf("invalid docClass %q", c.DocClass)
	}
	if c.PaperSize != PaperLetter && c.PaperSize != PaperA4 && c.PaperSize != PaperLegal {
		return fmt.Errorf("invalid paperSize %q", c.PaperSize)
	}
	if c.PointSize != "10pt" && c.PointSize != "11pt" && c.PointSize != "12pt" {
		return fmt.Errorf("invalid pointSize %q: must be one of 10pt, 11pt, 12pt", c.PointSize)
	}
	if c.LinenoThreshold < 0 {
		return fmt.Errorf("linenoThreshold must not be negative, got %d", c.LinenoThreshold)
	}
	if c.MissingImages != MissingImagePassthrough && c.MissingImages != MissingImageSkip && c.MissingImages != MissingImageFail {
		return fmt.Errorf("invalid missingImages policy %q", c.MissingImages)
	}
	for key, value := range c.Labels {
		if key == "" || value == "" {
			return fmt.Errorf("labels keys and values must be non-empty")
		}
	}
	return nil
}

// topSectionLevel returns the index into sectionNames at which section
// nesting starts for the configured document class.
func (c Config) topSectionLevel() int {
	if c.DocClass == ClassManual {
		if c.UseParts {
			return 0
		}
		return 1
	}
	return 2
}

// shorthandoff returns the babel shorthand disabling command for
// languages whose shorthands collide with quote markup.
func (c Config) shorthandoff() string {
	if c.Language == "ngerman" || c.Language == "german" {
		return `\shorthandoff{"}`
	}
	return ""
}

// classOptions assembles the documentclass option list after paper and
// point size.
func (c Config) classOptions() string {
	options := c.ClassOptions + ",english"
	if c.Language != "" {
		options += "," + c.Language
	}
	return options
}

func cloneStringMap(src map[string]string) map[string]string {
	if src == nil {
		return nil
	}

	dst := make(map[string]string, len(src))
	for key, value := range src {
		dst[key] = value
	}

	return dst
}
