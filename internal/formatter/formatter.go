package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mcncl/jsonorder/internal/config"
	"github.com/mcncl/jsonorder/internal/errors"
	"github.com/mcncl/jsonorder/internal/models"
)

// Formatter renders a JSON value tree as indented text. Members are written
// in the order they appear in each object; nothing is re-sorted here.
type Formatter struct {
	indent       string
	escapeHTML   bool
	finalNewline bool
}

// NewFormatter creates a Formatter with the default layout: four-space
// indent, no HTML escaping and no trailing newline.
func NewFormatter() *Formatter {
	return NewFormatterWithConfig(config.NewConfig().Formatting)
}

// NewFormatterWithConfig creates a Formatter from formatting options.
func NewFormatterWithConfig(cfg config.FormattingConfig) *Formatter {
	return &Formatter{
		indent:       strings.Repeat(" ", cfg.Indent),
		escapeHTML:   cfg.EscapeHTML,
		finalNewline: cfg.FinalNewline,
	}
}

// Format renders v with an encoding/json Encoder. Items are separated by ","
// and keys by ": ", with each item on its own line. Empty arrays and objects
// render as [] and {}. Object members keep the order models.Object holds.
func (f *Formatter) Format(v models.Value) ([]byte, error) {
	if models.KindOf(v) == models.KindInvalid {
		return nil, fmt.Errorf("%w: %T", errors.ErrUnsupportedType, v)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(f.escapeHTML)
	enc.SetIndent("", f.indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	// Encode terminates every value with a newline.
	out := bytes.TrimSuffix(buf.Bytes(), []byte{'\n'})

	// An empty indent makes the Encoder skip indentation entirely, so line
	// breaks are added here.
	if f.indent == "" {
		var indented bytes.Buffer
		if err := json.Indent(&indented, out, "", ""); err != nil {
			return nil, err
		}
		out = indented.Bytes()
	}

	if f.finalNewline {
		out = append(out, '\n')
	}
	return out, nil
}
