package logging

import "testing"

func TestNewNonVerboseIsNoOp(t *testing.T) {
	logger := New(false)
	if logger.Core().Enabled(0) {
		t.Errorf("non-verbose logger should not have any level enabled")
	}
}

func TestNewVerboseProducesDevelopmentLogger(t *testing.T) {
	logger := New(true)
	if logger == nil {
		t.Fatalf("expected a non-nil logger")
	}
	if !logger.Core().Enabled(0) {
		t.Errorf("verbose logger should have info level enabled")
	}
}
