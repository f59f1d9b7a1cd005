package theme

import (
	_ "embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schema []byte

// Lint checks a JSON theme document against the theme schema
// and returns every violation found, in a "field: description"
// form. Unlike Parse, it does not stop at the first problem.
// An error is returned only if data is not valid JSON.
func Lint(data []byte) ([]string, error) {
	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schema), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("theme: lint: %w", err)
	}
	var out []string
	for _, e := range result.Errors() {
		out = append(out, e.String())
	}
	return out, nil
}
