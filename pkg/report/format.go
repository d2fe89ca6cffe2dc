package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/jjk-jacky/pacdep/pkg/errors"
)

// Output formats understood by [Write].
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the supported output formats.
var Formats = []string{FormatText, FormatJSON, FormatYAML}

// ValidateFormat rejects unknown output formats.
func ValidateFormat(format string) error {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q: must be one of text, json, yaml", format)
}

// WriteJSON encodes reports as an indented JSON array.
func WriteJSON(w io.Writer, reports []*Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(reports); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// WriteYAML encodes reports as a YAML sequence.
func WriteYAML(w io.Writer, reports []*Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(reports); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// FormatSize renders a byte count with IEC units ("1.5 MiB").
func FormatSize(size int64) string {
	if size < 0 {
		return "-" + humanize.IBytes(uint64(-size))
	}
	return humanize.IBytes(uint64(size))
}

// sizeUnits are the units of [PadSize], as printed by pacman.
var sizeUnits = []string{"B", "KiB", "MiB", "GiB"}

// PadSize renders a byte count in a fixed-width column: six characters of
// number, two decimals above bytes, then the unit.
func PadSize(size int64) string {
	h := float64(size)
	unit := 0
	for h > 1024 && unit < len(sizeUnits)-1 {
		h /= 1024
		unit++
	}
	if unit == 0 {
		return fmt.Sprintf("%6.0f %s", h, sizeUnits[unit])
	}
	return fmt.Sprintf("%6.2f %s", h, sizeUnits[unit])
}
