package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/turtacn/Helios-Economics/internal/domain/risk"
	"github.com/turtacn/Helios-Economics/pkg/errors"
)

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newTable returns a tabwriter configured for aligned column output.
func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// money renders a dollar amount with thousands separators, no cents.
func money(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 0, 64)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
		if len(s) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(s); i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < len(s) {
			b.WriteByte(',')
		}
	}
	return b.String()
}

// percent renders a rate as a percentage with two decimals.
func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

// parseOverrides converts repeated "Name=approvalRisk" or
// "Name=approvalRisk:level" flag values into a category override list.
func parseOverrides(values []string) ([]overrideSpec, error) {
	out := make([]overrideSpec, 0, len(values))
	for _, v := range values {
		name, rest, ok := strings.Cut(v, "=")
		if !ok || name == "" {
			return nil, errors.InvalidParam("override must be Name=approvalRisk[:level]").
				WithDetail(v)
		}

		spec := overrideSpec{Name: name}
		rating, levelStr, hasLevel := strings.Cut(rest, ":")
		ar, err := strconv.Atoi(strings.TrimSpace(rating))
		if err != nil {
			return nil, errors.InvalidParam("override approval risk must be an integer").
				WithDetail(v)
		}
		spec.ApprovalRisk = ar

		if hasLevel {
			lvl := risk.Level(strings.ToLower(strings.TrimSpace(levelStr)))
			if !lvl.Valid() {
				return nil, errors.New(errors.ErrCodeRiskLevelInvalid, "invalid risk level").
					WithDetail(v)
			}
			spec.Level = &lvl
		}
		out = append(out, spec)
	}
	return out, nil
}

// overrideSpec is a parsed --override flag value.
type overrideSpec struct {
	Name         string
	ApprovalRisk int
	Level        *risk.Level
}
