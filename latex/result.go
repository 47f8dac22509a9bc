package latex

// Result holds the output of a translation.
type Result struct {
	TeX      string    `json:"tex"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// WarningType categorizes translation warnings.
type WarningType string

const (
	WarningMalformedTitle    WarningType = "malformed_title"
	WarningUnusableReference WarningType = "unusable_reference"
	WarningUnknownIndexType  WarningType = "unknown_index_type"
	WarningMissingAttribute  WarningType = "missing_attribute"
	WarningMissingImage      WarningType = "missing_image"
	WarningDroppedFeature    WarningType = "dropped_feature"
)

// Warning represents a non-fatal issue encountered during translation.
// Fatal conditions (unknown node kinds, nested tables, spanning cells)
// abort the translation instead.
type Warning struct {
	Type     WarningType `json:"type"`
	NodeKind string      `json:"nodeKind,omitempty"`
	Message  string      `json:"message"`
}
