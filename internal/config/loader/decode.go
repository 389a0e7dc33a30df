package loader

import (
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// decode parses data in the given format. Syntax errors become *ParseError
// with the position when the parser reports one.
func decode(format Format, path string, data []byte) (map[string]any, error) {
	m := map[string]any{}
	switch format {
	case YAML:
		if err := yaml.Unmarshal(data, &m); err != nil {
			perr := &ParseError{Path: path, Message: err.Error(), Err: err}
			// yaml.v3 reports positions only in the message.
			fmt.Sscanf(err.Error(), "yaml: line %d:", &perr.Line)
			return nil, perr
		}
	default:
		if err := toml.Unmarshal(data, &m); err != nil {
			perr := &ParseError{Path: path, Message: err.Error(), Err: err}
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				perr.Line, perr.Column = derr.Position()
			}
			return nil, perr
		}
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}
