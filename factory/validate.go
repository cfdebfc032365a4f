package factory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	schemafs "github.com/synth-tools/synthetics-go/schema"
)

var (
	testSchema  *jsonschema.Schema
	compileOnce sync.Once
	compileErr  error
)

func compileSchema() error {
	compileOnce.Do(func() {
		data, err := schemafs.FS.ReadFile("test.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("read test schema: %w", err)
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal test schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("test.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("add test schema resource: %w", err)
			return
		}
		testSchema, err = compiler.Compile("test.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("compile test schema: %w", err)
		}
	})
	return compileErr
}

// validateDocument checks a decoded test document against the embedded
// schema. The document is round-tripped through JSON so that YAML-decoded
// values carry the types the validator expects.
func validateDocument(doc interface{}) error {
	if err := compileSchema(); err != nil {
		return err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("invalid test document: %w", err)
	}
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid test document: %w", err)
	}
	if err := testSchema.Validate(v); err != nil {
		return fmt.Errorf("test document validation failed: %w", err)
	}
	return nil
}
