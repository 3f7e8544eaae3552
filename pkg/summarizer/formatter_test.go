package summarizer

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/user/searchprobe/pkg/mocks"
)

func sampleSummary() *Summary {
	s := NewBuilder().
		WithOutcome("completed", nil).
		WithDuration(2345*time.Millisecond).
		WithTarget("https://www.google.com/", "q", "ChromeDriver").
		WithSettings(Settings{
			Driver:            "chromedp",
			Headless:          true,
			Arguments:         []string{"--no-sandbox", "--disable-dev-shm-usage", "--headless=new"},
			PageLoadTimeoutMs: 15000,
			ResultsTimeoutMs:  15000,
		}).
		AddStep("launch", 900, "").
		AddStep("navigate", 700, "").
		Build()
	s.GeneratedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return s
}

func TestMarkdownFormatter(t *testing.T) {
	out := NewMarkdownFormatter().Format(sampleSummary())

	for _, want := range []string{
		"# Search Scenario Summary",
		"Generated: 2024-05-01T12:00:00Z",
		"| Outcome | completed |",
		"| Total Duration | 2345 ms |",
		"| URL | https://www.google.com/ |",
		"| Locator | `name=\"q\"` |",
		"| Query | ChromeDriver |",
		"| launch | 900 ms | - |",
		"| Headless | true |",
		"`--no-sandbox --disable-dev-shm-usage --headless=new`",
		"| Page Load Timeout | 15000 ms |",
		"| Results Timeout | 15000 ms |",
		"| Step | Duration | Error |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "| Error | ") {
		t.Error("successful run should have no error row")
	}
}

func TestMarkdownFormatter_Failure(t *testing.T) {
	s := sampleSummary()
	s.Outcome = "failed"
	s.Error = "locate: element not found: a|b\nmore"
	s.Steps = append(s.Steps, StepInfo{Name: "locate", DurationMs: 2, Error: "not found"})

	out := NewMarkdownFormatter().Format(s)

	if !strings.Contains(out, `| Error | locate: element not found: a\|b more |`) {
		t.Errorf("error row not escaped:\n%s", out)
	}
	if !strings.Contains(out, "| locate | 2 ms | not found |") {
		t.Errorf("failed step row missing:\n%s", out)
	}
}

func TestMarkdownFormatter_WithTranslator(t *testing.T) {
	translator := func(s string) string {
		if s == "Outcome" {
			return "結果"
		}
		return s
	}

	out := NewMarkdownFormatter(WithTranslator(translator)).Format(sampleSummary())

	if !strings.Contains(out, "| 結果 | completed |") {
		t.Errorf("translated label missing:\n%s", out)
	}
}

func TestMarkdownFormatter_WithVersion(t *testing.T) {
	out := NewMarkdownFormatter(WithVersion("v1.2.0")).Format(sampleSummary())
	if !strings.Contains(out, "(searchprobe v1.2.0)") {
		t.Errorf("version missing:\n%s", out)
	}
}

func TestJSONFormatter(t *testing.T) {
	out := NewJSONFormatter().Format(sampleSummary())

	var decoded struct {
		Outcome         string `json:"outcome"`
		TotalDurationMs int64  `json:"total_duration_ms"`
		Target          struct {
			Query string `json:"query"`
		} `json:"target"`
		Steps []struct {
			Name string `json:"name"`
		} `json:"steps"`
		Settings struct {
			PageLoadTimeoutMs int64 `json:"page_load_timeout_ms"`
			ResultsTimeoutMs  int64 `json:"results_timeout_ms"`
		} `json:"settings"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if decoded.Outcome != "completed" || decoded.TotalDurationMs != 2345 {
		t.Errorf("decoded = %+v", decoded)
	}
	if decoded.Target.Query != "ChromeDriver" {
		t.Errorf("query = %q", decoded.Target.Query)
	}
	if len(decoded.Steps) != 2 || decoded.Steps[0].Name != "launch" {
		t.Errorf("steps = %+v", decoded.Steps)
	}
	if decoded.Settings.PageLoadTimeoutMs != 15000 || decoded.Settings.ResultsTimeoutMs != 15000 {
		t.Errorf("settings = %+v, want timeouts in milliseconds", decoded.Settings)
	}
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path     string
		wantJSON bool
	}{
		{"summary.json", true},
		{"out/Summary.JSON", true},
		{"summary.md", false},
		{"summary", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			out := ForPath(tt.path).Format(sampleSummary())
			isJSON := strings.HasPrefix(out, "{")
			if isJSON != tt.wantJSON {
				t.Errorf("ForPath(%q) JSON = %v, want %v", tt.path, isJSON, tt.wantJSON)
			}
		})
	}
}

func TestFormatFunc(t *testing.T) {
	f := FormatFunc(func(s *Summary) string { return s.Outcome })
	if got := f.Format(sampleSummary()); got != "completed" {
		t.Errorf("Format = %q", got)
	}
}

func TestWriter(t *testing.T) {
	fs := mocks.NewFileSystem()
	w := NewWriter(FormatFunc(func(s *Summary) string { return "outcome=" + s.Outcome }), fs)

	if err := w.Write("out/summary.md", sampleSummary()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, ok := fs.GetFile("out/summary.md")
	if !ok {
		t.Fatal("summary not written")
	}
	if string(data) != "outcome=completed" {
		t.Errorf("content = %q", data)
	}
}

func TestWriter_Error(t *testing.T) {
	fs := mocks.NewFileSystem()
	diskFull := errors.New("disk full")
	fs.WriteFileFunc = func(string, []byte) error { return diskFull }

	err := NewWriter(NewMarkdownFormatter(), fs).Write("summary.md", sampleSummary())
	if !errors.Is(err, diskFull) {
		t.Errorf("err = %v, want wrapping disk full", err)
	}
}
