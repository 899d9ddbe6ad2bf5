package errorx

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeDBError, "数据库错误")

	if !errors.Is(err, cause) {
		t.Fatal("wrapped error must match its cause via errors.Is")
	}
	if GetCode(err) != CodeDBError {
		t.Fatalf("expected code %d, got %d", CodeDBError, GetCode(err))
	}
}

func TestGetCodeThroughFmtWrap(t *testing.T) {
	err := New(CodeNotFound, "资源不存在")
	wrapped := fmt.Errorf("query failed: %w", err)

	if GetCode(wrapped) != CodeNotFound {
		t.Fatalf("expected code %d through %%w chain, got %d", CodeNotFound, GetCode(wrapped))
	}
}

func TestGetCodeFallback(t *testing.T) {
	if GetCode(errors.New("plain")) != CodeServerBusy {
		t.Fatal("non CodeError must fall back to server busy")
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(New(CodeNotFound, "missing")) {
		t.Fatal("CodeNotFound error must be recognized")
	}
	if IsNotFound(New(CodeDBError, "boom")) {
		t.Fatal("other codes must not be treated as not found")
	}
	if IsNotFound(nil) {
		t.Fatal("nil is not a not-found error")
	}
}
