package xformgen

import (
	"encoding/json"
	"fmt"
	"io"
)

// Format selects how Report renders matrices.
type Format string

const (
	FormatText  Format = "text"  // label, raw line, pretty block, blank line
	FormatLaTeX Format = "latex" // label, pmatrix line, blank line
	FormatJSON  Format = "json"  // one JSON array of MatrixJSON
)

// ParseFormat accepts "text", "latex" or "json"; the empty string is text.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatText:
		return FormatText, nil
	case FormatLaTeX, FormatJSON:
		return Format(s), nil
	}
	return "", fmt.Errorf("xformgen: unknown format %q", s)
}

// Report writes ms to w in format f.
func Report(w io.Writer, ms []NamedMatrix, f Format) error {
	switch f {
	case FormatJSON:
		out := make([]MatrixJSON, len(ms))
		for i, nm := range ms {
			out[i] = nm.Matrix.ToJSON()
			out[i].Name = nm.Name
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case FormatLaTeX:
		for _, nm := range ms {
			if _, err := fmt.Fprintf(w, "%s\n%s\n\n", nm.Name, nm.Matrix.LaTeX()); err != nil {
				return err
			}
		}
		return nil
	case FormatText, "":
		for _, nm := range ms {
			if _, err := fmt.Fprintf(w, "%s\n%s\n%s\n\n", nm.Name, nm.Matrix.String(), Pretty(nm.Matrix)); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("xformgen: unknown format %q", f)
}
