package plugin

import (
	"bytes"
	"strings"
	"testing"
)

func TestDebugfDisabledByDefault(t *testing.T) {
	var buf bytes.Buffer
	old := debugOut
	debugOut = &buf
	defer func() { debugOut = old }()

	SetDebug(false)
	Debugf("should not appear")

	if buf.Len() != 0 {
		t.Errorf("debug output leaked while disabled: %q", buf.String())
	}
}

func TestDebugfEnabled(t *testing.T) {
	var buf bytes.Buffer
	old := debugOut
	debugOut = &buf
	defer func() {
		debugOut = old
		SetDebug(false)
	}()

	SetDebug(true)
	Debugf("probing %s", "mail.example.net")

	got := buf.String()
	if !strings.Contains(got, "DEBUG:") {
		t.Errorf("missing DEBUG prefix: %q", got)
	}
	if !strings.Contains(got, "probing mail.example.net") {
		t.Errorf("missing message: %q", got)
	}
}
