package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nkiryanov/offlicense/internal/models"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"

	TimeLayout = "2006-01-02 15:04:05"

	notAvailable = "<N/A - invalid key format>"
	noClock      = "<unavailable>"
)

// Report of a validated license as shown to users
type Report struct {
	Status     string `json:"status" yaml:"status"`
	Identifier string `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	Expiry     *int64 `json:"expiry,omitempty" yaml:"expiry,omitempty"`
	ExpiresAt  string `json:"expires_at" yaml:"expires_at"`
	CheckedAt  string `json:"checked_at" yaml:"checked_at"`
	Reason     string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// NewReport converts validation result, times are formatted in loc
func NewReport(result models.Result, loc *time.Location) Report {
	if loc == nil {
		loc = time.Local
	}

	report := Report{
		Status:    result.Status().String(),
		ExpiresAt: notAvailable,
		CheckedAt: noClock,
	}

	if result.Parsed {
		expiry := result.Record.Expiry
		report.Identifier = result.Record.Identifier
		report.Expiry = &expiry
		report.ExpiresAt = result.Record.ExpiresAt().In(loc).Format(TimeLayout)
	}

	if !result.CheckedAt.IsZero() {
		report.CheckedAt = result.CheckedAt.In(loc).Format(TimeLayout)
	}

	if result.Err != nil {
		report.Reason = result.Err.Error()
	}

	return report
}

func IsFormat(format string) bool {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// Write report in the format
func Write(w io.Writer, format string, report Report) error {
	switch format {
	case FormatText:
		return Text(w, report)
	case FormatJSON:
		return JSON(w, report)
	case FormatYAML:
		return YAML(w, report)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func Text(w io.Writer, report Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintf(tw, "Parsed Expiry:\t%s\n", report.ExpiresAt)
	_, _ = fmt.Fprintf(tw, "Current Time:\t%s\n", report.CheckedAt)
	_, _ = fmt.Fprintf(tw, "Result:\t%s\n", report.Status)

	// Identifier is known only for parsed tokens
	if report.Expiry != nil {
		_, _ = fmt.Fprintf(tw, "Identifier:\t%s\n", report.Identifier)
	}
	if report.Reason != "" {
		_, _ = fmt.Fprintf(tw, "Reason:\t%s\n", report.Reason)
	}

	return tw.Flush()
}

func JSON(w io.Writer, report Report) error {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetIndent("", "  ")

	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("error while encoding report. Err: %w", err)
	}

	_, err := w.Write(buf.Bytes())
	return err
}

func YAML(w io.Writer, report Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("error while encoding report. Err: %w", err)
	}

	return enc.Close()
}
