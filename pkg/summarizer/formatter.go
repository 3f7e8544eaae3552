package summarizer

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Formatter defines the interface for formatting a Summary.
type Formatter interface {
	// Format converts a Summary to a formatted string.
	Format(summary *Summary) string
}

// FormatFunc is a function adapter for the Formatter interface.
type FormatFunc func(summary *Summary) string

// Format implements the Formatter interface.
func (f FormatFunc) Format(summary *Summary) string {
	return f(summary)
}

// ForPath picks JSON for *.json paths and Markdown otherwise.
func ForPath(path string, opts ...Option) Formatter {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return NewJSONFormatter()
	}
	return NewMarkdownFormatter(opts...)
}

// Option configures a MarkdownFormatter.
type Option func(*MarkdownFormatter)

// WithTranslator translates headings and labels.
func WithTranslator(t func(string) string) Option {
	return func(f *MarkdownFormatter) {
		f.t = t
	}
}

// WithVersion adds the tool version to the header line.
func WithVersion(version string) Option {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// MarkdownFormatter renders a Summary as Markdown tables.
type MarkdownFormatter struct {
	t       func(string) string
	version string
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...Option) *MarkdownFormatter {
	f := &MarkdownFormatter{t: func(s string) string { return s }}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *MarkdownFormatter) Format(s *Summary) string {
	var b strings.Builder
	t := f.t

	fmt.Fprintf(&b, "# %s\n\n", t("Search Scenario Summary"))
	fmt.Fprintf(&b, "%s: %s", t("Generated"), s.GeneratedAt.Format(time.RFC3339))
	if f.version != "" {
		fmt.Fprintf(&b, " (searchprobe %s)", f.version)
	}
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Result"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	fmt.Fprintf(&b, "| %s | %s |\n", t("Outcome"), s.Outcome)
	if s.TotalDurationMs > 0 {
		fmt.Fprintf(&b, "| %s | %d ms |\n", t("Total Duration"), s.TotalDurationMs)
	}
	if s.Error != "" {
		fmt.Fprintf(&b, "| %s | %s |\n", t("Error"), escapeCell(s.Error))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Target"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	fmt.Fprintf(&b, "| URL | %s |\n", s.Target.URL)
	fmt.Fprintf(&b, "| %s | `name=%q` |\n", t("Locator"), s.Target.Locator)
	fmt.Fprintf(&b, "| %s | %s |\n\n", t("Query"), escapeCell(s.Target.Query))

	if len(s.Steps) > 0 {
		fmt.Fprintf(&b, "## %s\n\n", t("Steps"))
		fmt.Fprintf(&b, "| %s | %s | %s |\n|---|---|---|\n", t("Step"), t("Duration"), t("Error"))
		for _, step := range s.Steps {
			errCell := "-"
			if step.Failed() {
				errCell = escapeCell(step.Error)
			}
			fmt.Fprintf(&b, "| %s | %d ms | %s |\n", step.Name, step.DurationMs, errCell)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## %s\n\n", t("Settings"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	fmt.Fprintf(&b, "| %s | %s |\n", t("Driver"), s.Settings.Driver)
	fmt.Fprintf(&b, "| %s | %t |\n", t("Headless"), s.Settings.Headless)
	if len(s.Settings.Arguments) > 0 {
		fmt.Fprintf(&b, "| %s | `%s` |\n", t("Arguments"), strings.Join(s.Settings.Arguments, " "))
	}
	fmt.Fprintf(&b, "| %s | %d ms |\n", t("Page Load Timeout"), s.Settings.PageLoadTimeoutMs)
	fmt.Fprintf(&b, "| %s | %d ms |\n", t("Results Timeout"), s.Settings.ResultsTimeoutMs)

	return b.String()
}

// escapeCell keeps a value on one table row.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// NewJSONFormatter renders a Summary as indented JSON.
func NewJSONFormatter() Formatter {
	return FormatFunc(func(s *Summary) string {
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return fmt.Sprintf(`{"error": %q}`, err.Error())
		}
		return string(data) + "\n"
	})
}
