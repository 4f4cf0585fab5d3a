package logging_test

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/ivlev/pdfoutline/internal/logging"
)

func TestSetLogger(t *testing.T) {
	oldLogger := logging.Logger()
	defer func() { logging.SetLogger(oldLogger) }()

	var buf bytes.Buffer
	logging.SetLogger(logging.NewTextLogger(&buf, true))

	logging.Logger().Debug("page parsed", slog.Int("page", 3))

	if !strings.Contains(buf.String(), "page parsed") || !strings.Contains(buf.String(), "page=3") {
		t.Errorf("expected debug record in output, got %q", buf.String())
	}
}

func TestNewTextLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewTextLogger(&buf, false)

	log.Debug("hidden")
	log.Info("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("debug record written without verbose")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("info record missing")
	}
}

func TestSetLogger_Nil(t *testing.T) {
	oldLogger := logging.Logger()
	defer func() { logging.SetLogger(oldLogger) }()

	logging.SetLogger(nil)

	log := logging.Logger()
	if log == nil {
		t.Fatal("expected Logger() to return non-nil after SetLogger(nil)")
	}
	if log.Handler() != slog.DiscardHandler {
		t.Error("expected Logger() to use slog.DiscardHandler after SetLogger(nil)")
	}
}

func TestLogger_ConcurrentAccess(t *testing.T) {
	oldLogger := logging.Logger()
	defer func() { logging.SetLogger(oldLogger) }()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if n%2 == 0 {
				logging.SetLogger(logging.NewTextLogger(&bytes.Buffer{}, false))
			} else if logging.Logger() == nil {
				t.Error("Logger() returned nil during concurrent access")
			}
		}(i)
	}
	wg.Wait()
}
