package recordschema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"horse.fit/intel-pipeline/internal/record"
)

//go:embed record.schema.json
var recordSchemaJSON string

var (
	compileOnce       sync.Once
	compiledSchema    *jsonschema.Schema
	compiledSchemaErr error
)

// ValidateEnrichedPayload checks a serialized enriched record against the
// schema. It runs strictly after the enrichment pipeline; the pipeline itself
// never enforces types.
func ValidateEnrichedPayload(payload json.RawMessage) error {
	value, err := decodeStrictJSON(payload)
	if err != nil {
		return fmt.Errorf("decode record JSON: %w", err)
	}

	schema, err := loadSchema()
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}

	if err := schema.Validate(value); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// ValidateEnrichedRecord serializes the record and validates the result,
// plus the semantic constraints the schema cannot express.
func ValidateEnrichedRecord(rec *record.Record) error {
	if rec == nil {
		return fmt.Errorf("record is nil")
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if err := ValidateEnrichedPayload(payload); err != nil {
		return err
	}
	return validateSemantics(rec)
}

func loadSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		compiler.AssertFormat = true

		if err := compiler.AddResource("record.schema.json", strings.NewReader(recordSchemaJSON)); err != nil {
			compiledSchemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}

		schema, err := compiler.Compile("record.schema.json")
		if err != nil {
			compiledSchemaErr = fmt.Errorf("compile schema: %w", err)
			return
		}

		compiledSchema = schema
	})

	if compiledSchemaErr != nil {
		return nil, compiledSchemaErr
	}
	if compiledSchema == nil {
		return nil, fmt.Errorf("schema not initialized")
	}
	return compiledSchema, nil
}

func decodeStrictJSON(raw []byte) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("payload is empty")
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}

	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("payload contains trailing content")
	}

	return value, nil
}

func validateSemantics(rec *record.Record) error {
	if strings.TrimSpace(rec.Title) == "" {
		return fmt.Errorf("title must not be empty")
	}
	if rec.Audit.PipelineVersion == "" {
		return fmt.Errorf("record has not been enriched")
	}
	if rec.IsDuplicate && strings.TrimSpace(rec.DuplicateOf) == "" {
		return fmt.Errorf("duplicate record lacks a canonical reference")
	}
	if !rec.IsDuplicate && rec.DuplicateOf != "" {
		return fmt.Errorf("non-duplicate record carries a canonical reference")
	}
	return nil
}
