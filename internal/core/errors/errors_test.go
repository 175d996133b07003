package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestDomainErrorFormatting(t *testing.T) {
	err := Newf(CodeMissingData, "coverage unavailable for %s", "core.rs")
	msg := err.Error()
	if !strings.Contains(msg, string(CodeMissingData)) {
		t.Errorf("message %q missing code", msg)
	}
	if !strings.Contains(msg, "core.rs") {
		t.Errorf("message %q missing detail", msg)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk gone")
	err := Wrap(cause, CodeInternal, "loading config")
	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause not reachable via errors.Is")
	}
}

func TestIsCode(t *testing.T) {
	err := New(CodeConfiguration, "bad threshold")
	if !IsCode(err, CodeConfiguration) {
		t.Error("IsCode missed matching code")
	}
	if IsCode(err, CodeInvariant) {
		t.Error("IsCode matched wrong code")
	}
	if IsCode(stderrors.New("plain"), CodeConfiguration) {
		t.Error("IsCode matched foreign error")
	}
}

func TestAddContext(t *testing.T) {
	err := AddContext(New(CodeInvariant, "metrics drift"), CtxStage, "filter")
	var de *DomainError
	if !stderrors.As(err, &de) {
		t.Fatal("expected DomainError")
	}
	if de.Context[CtxStage] != "filter" {
		t.Errorf("context = %v", de.Context)
	}

	// Foreign errors get wrapped rather than lost.
	err = AddContext(stderrors.New("plain"), CtxUnit, "a.rs:1:f")
	if !IsCode(err, CodeInternal) {
		t.Errorf("foreign error wrapped as %v", err)
	}
}
