package vocab

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Dataset is a named list of items.
type Dataset struct {
	Name  string `json:"name"`
	Title string `json:"title,omitempty"`
	Items []Item `json:"items"`

	// Source is the file the dataset was read from, or "embedded".
	Source string `json:"-"`
}

// HasForms reports whether any item carries past tense forms. Tests on
// datasets without forms only ask for the word itself.
func (d *Dataset) HasForms() bool {
	return lo.ContainsBy(d.Items, Item.HasForms)
}

// DisplayTitle returns the title, falling back to the name.
func (d *Dataset) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Name
}

// ValidationError reports a dataset file that does not match the schema.
type ValidationError struct {
	File string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("dataset %s: %v", e.File, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

const datasetSchema = `{
	"type": "object",
	"required": ["items"],
	"properties": {
		"name": {"type": "string", "pattern": "^[A-Za-z0-9][A-Za-z0-9-]*$"},
		"title": {"type": "string"},
		"items": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["infinitive", "translation"],
				"properties": {
					"infinitive": {"type": "string", "minLength": 1},
					"translation": {"type": "string", "minLength": 1},
					"pastSimple": {"type": "string"},
					"pastParticiple": {"type": "string"},
					"example": {"type": "string"}
				}
			}
		}
	}
}`

var (
	datasetSchemaOnce     sync.Once
	datasetSchemaCompiled *jsonschema.Schema
	datasetSchemaErr      error
)

func compiledDatasetSchema() (*jsonschema.Schema, error) {
	datasetSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(datasetSchema))
		if err != nil {
			datasetSchemaErr = err
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://dataset.json", doc); err != nil {
			datasetSchemaErr = err
			return
		}
		datasetSchemaCompiled, datasetSchemaErr = c.Compile("schema://dataset.json")
	})
	return datasetSchemaCompiled, datasetSchemaErr
}

// Parse validates data against the dataset schema and decodes it. When the
// file has no name, the file's base name without extension is used.
// Duplicate infinitives are rejected because they share mastery state.
func Parse(file string, data []byte) (*Dataset, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, &ValidationError{File: file, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	schema, err := compiledDatasetSchema()
	if err != nil {
		return nil, fmt.Errorf("compile dataset schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, &ValidationError{File: file, Err: err}
	}

	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, &ValidationError{File: file, Err: err}
	}
	if ds.Name == "" {
		ds.Name = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	}
	ds.Source = file

	seen := make(map[string]bool, len(ds.Items))
	for _, it := range ds.Items {
		if seen[it.Infinitive] {
			return nil, &ValidationError{File: file, Err: fmt.Errorf("duplicate item %q", it.Infinitive)}
		}
		seen[it.Infinitive] = true
	}
	return &ds, nil
}
