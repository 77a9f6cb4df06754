package types

// Config holds the tunables for one conversion run. The canonical schema
// ordering is the only knob that changes pipeline output; the snapshot flags
// only add debug artifacts.
type Config struct {
	// OutputDir overrides where the converted_<dataset> tree is created.
	// Empty means the current working directory.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Schema overrides the canonical column ordering. Empty means
	// DefaultSchema().
	Schema []string `json:"schema" yaml:"schema"`

	// CSVSnapshot writes the canonical table as delimited text next to the
	// exported COCO document.
	CSVSnapshot bool `json:"csv_snapshot" yaml:"csv_snapshot"`

	// SQLiteSnapshot writes the canonical table into a SQLite database next
	// to the exported COCO document.
	SQLiteSnapshot bool `json:"sqlite_snapshot" yaml:"sqlite_snapshot"`

	// RenumberCOCO enables cross-file renumbering when merging multiple
	// COCO documents: image ids become positional, categories are deduped
	// by name, and annotation references are remapped. Off by default;
	// verbatim ids are the documented behavior.
	RenumberCOCO bool `json:"renumber_coco" yaml:"renumber_coco"`
}

// EffectiveSchema returns the configured schema, or the default ordering
// when none is set.
func (c Config) EffectiveSchema() []string {
	if len(c.Schema) == 0 {
		return DefaultSchema()
	}
	out := make([]string, len(c.Schema))
	copy(out, c.Schema)
	return out
}

// Validate checks that the Config is well-formed. A configured schema must
// not contain empty column names.
func (c Config) Validate() error {
	for _, col := range c.Schema {
		if col == "" {
			return ErrSchemaEmpty
		}
	}
	return nil
}
