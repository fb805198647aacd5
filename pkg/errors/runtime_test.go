package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestNewRuntimeError(t *testing.T) {
	cause := errors.New("write /dev/tty: broken pipe")
	err := NewRuntimeError("flush frame", "render", cause)

	if err == nil {
		t.Fatal("NewRuntimeError returned nil for a non-nil cause")
	}
	if err.Operation != "flush frame" || err.Component != "render" {
		t.Errorf("fields = (%q, %q)", err.Operation, err.Component)
	}
	if err.Timestamp.IsZero() {
		t.Error("Timestamp is zero")
	}

	msg := err.Error()
	for _, want := range []string{"flush frame", "component=render", "broken pipe"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
}

func TestNewRuntimeError_NilCause(t *testing.T) {
	if err := NewRuntimeError("poll", "decode", nil); err != nil {
		t.Errorf("NewRuntimeError(nil cause) = %v, want nil", err)
	}
	if err := NewRuntimeErrorWithAttrs("resize", "render", nil, map[string]interface{}{"w": 80}); err != nil {
		t.Errorf("NewRuntimeErrorWithAttrs(nil cause) = %v, want nil", err)
	}
}

func TestRuntimeError_EmptyComponent(t *testing.T) {
	err := NewRuntimeError("event loop", "", errors.New("boom"))
	if strings.Contains(err.Error(), "component=") {
		t.Errorf("Error() = %q, component should be omitted", err.Error())
	}
}

func TestRuntimeError_Unwrap(t *testing.T) {
	cause := errors.New("inner")
	err := NewRuntimeError("read", "driver", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is failed to find the cause")
	}
	var re *RuntimeError
	if !errors.As(error(err), &re) || re.Operation != "read" {
		t.Error("errors.As failed to recover the RuntimeError")
	}
}

func TestNewRuntimeErrorWithAttrs(t *testing.T) {
	err := NewRuntimeErrorWithAttrs("resize frames", "render", errors.New("bad size"),
		map[string]interface{}{
			"width":  0,
			"height": 24,
		})
	if err.Attributes["width"] != 0 || err.Attributes["height"] != 24 {
		t.Errorf("Attributes = %v", err.Attributes)
	}
}
