package cli

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/evsim/internal/experiment"
)

// Error codes for config loading.
const (
	ErrCodeNotFound   = "E_CONFIG_NOT_FOUND"
	ErrCodeParse      = "E_CONFIG_PARSE"
	ErrCodeSchema     = "E_CONFIG_SCHEMA"
	ErrCodeValidation = "E_CONFIG_INVALID"
	ErrCodeGeneric    = "E_ERROR"
)

//go:embed schema.cue
var schemaCUE string

// LoadError represents an error that occurred during config loading.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadConfig reads an experiment configuration from a YAML file.
//
// Loading is structural only: the file is decoded, checked against the
// embedded CUE schema (required fields, scalar kinds, no unknown fields),
// and returned in wire form. Semantic validation — the ordered checks with
// the contractual error messages — is the engine's validation gate, not
// the loader's.
func LoadConfig(path string) (experiment.RawConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return experiment.RawConfig{}, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("config file not found: %s", path)}
	}
	if err != nil {
		return experiment.RawConfig{}, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error reading config file: %v", err)}
	}

	if err := checkSchema(data); err != nil {
		return experiment.RawConfig{}, err
	}

	var raw experiment.RawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return experiment.RawConfig{}, &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("parsing %s: %v", path, err)}
	}

	return raw, nil
}

// checkSchema unifies the decoded document with the embedded CUE schema.
// Uses the CUE Go API directly, never a subprocess.
func checkSchema(data []byte) error {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("parsing YAML: %v", err)}
	}

	ctx := cuecontext.New()

	schemaVal := ctx.CompileString(schemaCUE)
	if err := schemaVal.Err(); err != nil {
		return &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("compiling config schema: %v", err)}
	}
	schema := schemaVal.LookupPath(cue.ParsePath("#Experiment"))
	if !schema.Exists() {
		return &LoadError{Code: ErrCodeGeneric, Message: "config schema is missing #Experiment"}
	}

	unified := schema.Unify(ctx.Encode(doc))
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return &LoadError{Code: ErrCodeSchema, Message: cueerrors.Details(err, nil)}
	}

	return nil
}
