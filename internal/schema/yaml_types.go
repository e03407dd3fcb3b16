package schema

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML implements custom YAML unmarshaling for Formats.
// Accepts either a single format name or an array of names.
func (fs *Formats) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		if err := node.Decode(&str); err != nil {
			return err
		}

		if str != "" {
			*fs = Formats{Format(str)}
		} else {
			*fs = Formats{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []Format

		if err := node.Decode(&arr); err != nil {
			return err
		}

		*fs = arr

		return nil

	default:
		return fmt.Errorf("line %d: expected format name or list of formats", node.Line)
	}
}

// MarshalYAML outputs a single name if length is 1, otherwise a list.
func (fs Formats) MarshalYAML() (any, error) {
	if len(fs) == 1 {
		return string(fs[0]), nil
	}

	return []Format(fs), nil
}

// UnmarshalYAML accepts a list of lines or a block scalar, which is split
// into one entry per non-blank line.
func (l *Lines) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var out Lines

		for _, line := range strings.Split(node.Value, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				out = append(out, line)
			}
		}

		*l = out

		return nil

	case yaml.SequenceNode:
		var arr []string

		if err := node.Decode(&arr); err != nil {
			return err
		}

		*l = arr

		return nil

	default:
		return fmt.Errorf("line %d: expected a list of lines or a text block", node.Line)
	}
}
