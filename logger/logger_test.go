package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
)

func newBufferLogger(level string) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	cfg := &Config{Level: level, Format: "json", Writer: buf}
	return New(cfg, "test-svc"), buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		m := map[string]interface{}{}
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid JSON log line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	cfg := &Config{
		Level:  "invalid-level",
		Format: "json",
		Output: "stdout",
	}
	l := New(cfg, "test")
	if l == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
}

func TestJSONOutputCarriesFields(t *testing.T) {
	l, buf := newBufferLogger("debug")
	l.WithComponent("di").Info("provider registered", Fields(FieldServiceType, "string", FieldLabel, "greeting"))

	lines := decodeLines(t, buf)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	entry := lines[0]
	if entry["message"] != "provider registered" {
		t.Errorf("unexpected message %v", entry["message"])
	}
	if entry[FieldComponent] != "di" {
		t.Errorf("expected component=di, got %v", entry[FieldComponent])
	}
	if entry[FieldServiceType] != "string" {
		t.Errorf("expected service_type=string, got %v", entry[FieldServiceType])
	}
	if entry["service"] != "test-svc" {
		t.Errorf("expected service=test-svc, got %v", entry["service"])
	}
}

func TestLevelFiltering(t *testing.T) {
	l, buf := newBufferLogger("warn")
	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")
	l.Error("shown too")

	lines := decodeLines(t, buf)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines at warn level, got %d", len(lines))
	}
	if lines[0]["level"] != "warn" {
		t.Errorf("expected first line at warn, got %v", lines[0]["level"])
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error("dropped")
	if l.GetLogger().GetLevel().String() == "" {
		t.Error("expected a level on the nop logger")
	}
}

func TestWithContext(t *testing.T) {
	l, buf := newBufferLogger("info")
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: trace.TraceID{0x01, 0x02},
		SpanID:  trace.SpanID{0x03},
	})
	ctx := ContextWithRequestID(context.Background(), "req-1")
	ctx = trace.ContextWithSpanContext(ctx, sc)
	l.WithContext(ctx).Info("hello")

	entry := decodeLines(t, buf)[0]
	if entry[FieldRequestID] != "req-1" {
		t.Errorf("expected request_id=req-1, got %v", entry[FieldRequestID])
	}
	if entry[FieldTraceID] != sc.TraceID().String() {
		t.Errorf("expected trace_id=%s, got %v", sc.TraceID(), entry[FieldTraceID])
	}
	if entry[FieldSpanID] != sc.SpanID().String() {
		t.Errorf("expected span_id=%s, got %v", sc.SpanID(), entry[FieldSpanID])
	}
}

func TestWithContext_Empty(t *testing.T) {
	l, buf := newBufferLogger("info")
	l.WithContext(context.Background()).Info("bare")

	entry := decodeLines(t, buf)[0]
	for _, k := range []string{FieldRequestID, FieldTraceID, FieldSpanID} {
		if _, ok := entry[k]; ok {
			t.Errorf("expected no %s on a bare context", k)
		}
	}
}

func TestWithFieldsAndError(t *testing.T) {
	l, buf := newBufferLogger("info")
	l.WithFields(map[string]interface{}{"key": "value"}).WithError(fmt.Errorf("boom")).Info("x")

	entry := decodeLines(t, buf)[0]
	if entry["key"] != "value" {
		t.Errorf("expected key=value, got %v", entry["key"])
	}
	if entry["error"] != "boom" {
		t.Errorf("expected error=boom, got %v", entry["error"])
	}
}

func TestInit(t *testing.T) {
	t.Cleanup(func() { SetGlobalLogger(nil) })

	buf := &bytes.Buffer{}
	Init(&Config{Level: "debug", Format: "json", Writer: buf, ServiceName: "init-test"})
	Info("info msg")
	Get("di").Warn("warn msg")

	lines := decodeLines(t, buf)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines through the global logger, got %d", len(lines))
	}
	if lines[1][FieldComponent] != "di" {
		t.Errorf("expected component=di, got %v", lines[1][FieldComponent])
	}
	if lines[0]["service"] != "init-test" {
		t.Errorf("expected service=init-test, got %v", lines[0]["service"])
	}
}

func TestGetGlobalLoggerDefault(t *testing.T) {
	SetGlobalLogger(nil)
	l := GetGlobalLogger()
	if l == nil {
		t.Fatal("expected default global logger to be created")
	}
	if GetGlobalLogger() != l {
		t.Error("expected the default logger to be reused")
	}
}

func TestSetGlobalLogger(t *testing.T) {
	t.Cleanup(func() { SetGlobalLogger(nil) })

	l := NewDefault("custom")
	SetGlobalLogger(l)
	if got := GetGlobalLogger(); got != l {
		t.Error("expected SetGlobalLogger to set the global logger")
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stdout" {
		t.Errorf("expected output 'stdout', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected Timestamp to be true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json", Output: "stdout"}, false},
		{"valid console", Config{Level: "debug", Format: "console", Output: "stderr"}, false},
		{"writer overrides output", Config{Level: "info", Format: "json", Writer: &bytes.Buffer{}}, false},
		{"invalid level", Config{Level: "bad", Format: "json", Output: "stdout"}, true},
		{"invalid format", Config{Level: "info", Format: "xml", Output: "stdout"}, true},
		{"invalid output", Config{Level: "info", Format: "json", Output: "file"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestConsoleLoggerFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New(&Config{Level: "info", Format: "console", NoColor: true, Writer: buf}, "test-svc")
	l.Info("console line")
	out := buf.String()
	if !strings.Contains(out, "[TES][INF]") {
		t.Errorf("expected service and level tags in %q", out)
	}
	if !strings.Contains(out, "console line") {
		t.Errorf("expected message in %q", out)
	}
}

func TestLevelTag(t *testing.T) {
	if got := levelTag("WARN", true); got != "[WRN]" {
		t.Errorf("expected [WRN], got %q", got)
	}
	if got := levelTag("CUSTOM", true); got != "[CUSTOM]" {
		t.Errorf("expected [CUSTOM], got %q", got)
	}
	if got := levelTag("INFO", false); !strings.Contains(got, "[INF]") || !strings.HasPrefix(got, "\033[") {
		t.Errorf("expected colored [INF], got %q", got)
	}
}

func TestGet(t *testing.T) {
	if Get("inspect") == nil {
		t.Fatal("expected a component logger")
	}
}

func TestFields(t *testing.T) {
	tests := []struct {
		name     string
		input    []interface{}
		expected map[string]interface{}
	}{
		{
			"key-value pairs",
			[]interface{}{"op", "save", "id", 42},
			map[string]interface{}{"op": "save", "id": 42},
		},
		{
			"odd number of args",
			[]interface{}{"op", "save", "trailing"},
			map[string]interface{}{"op": "save"},
		},
		{
			"non-string key skipped",
			[]interface{}{123, "value", "key", "val"},
			map[string]interface{}{"key": "val"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Fields(tc.input...)
			if len(result) != len(tc.expected) {
				t.Errorf("expected %d fields, got %d", len(tc.expected), len(result))
			}
			for k, v := range tc.expected {
				if result[k] != v {
					t.Errorf("Fields[%q] = %v, expected %v", k, result[k], v)
				}
			}
		})
	}
}

func TestDurationFields(t *testing.T) {
	fields := DurationFields("factory", 150*time.Millisecond)
	if fields[FieldDuration] != int64(150) {
		t.Errorf("expected duration 150, got %v", fields[FieldDuration])
	}
}
