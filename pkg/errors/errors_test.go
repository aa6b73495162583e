package errors

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"
	"time"
)

func TestUIErrorString(t *testing.T) {
	err := &UIError{
		Op:   "element.Update",
		Kind: KindBinding,
		Err:  &BindingError{Path: "Player.Speed", Reason: "object destroyed"},
	}
	got := err.Error()
	want := "element.Update [binding]: binding Player.Speed: object destroyed"
	if got != want {
		t.Errorf("UIError.Error() = %q, want %q", got, want)
	}
}

func TestUIErrorWithElement(t *testing.T) {
	err := &UIError{
		Op:      "builder.Build",
		Kind:    KindUnsupported,
		Element: "*element.IntSlider",
		Err:     &UnsupportedError{What: "*element.IntSlider", By: "builder"},
	}
	if !strings.Contains(err.Error(), "element=*element.IntSlider") {
		t.Errorf("error string %q should contain element name", err.Error())
	}
	var unsupported *UnsupportedError
	if !stderrors.As(err, &unsupported) {
		t.Fatal("expected UIError to unwrap to UnsupportedError")
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindBinding, "binding"},
		{KindReadOnly, "readonly"},
		{KindRebuild, "rebuild"},
		{KindUnsupported, "unsupported"},
		{KindPanic, "panic"},
		{KindConfig, "config"},
		{KindStore, "store"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "boom", Timestamp: time.Now()}
	if got, want := err.Error(), "panic: boom"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
	err.Op = "element.Update"
	if got, want := err.Error(), "panic in element.Update: boom"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestRebuildErrorString(t *testing.T) {
	err := &RebuildError{Element: "*element.Dynamic", Recovered: "nil map"}
	if got, want := err.Error(), "panic in *element.Dynamic rebuild: nil map"; got != want {
		t.Errorf("RebuildError.Error() = %q, want %q", got, want)
	}

	cause := stderrors.New("lookup failed")
	err2 := &RebuildError{Element: "*element.Dynamic", Err: cause}
	if !stderrors.Is(err2, cause) {
		t.Error("RebuildError should unwrap to its cause")
	}

	err3 := &RebuildError{Element: "*element.Dynamic"}
	if got, want := err3.Error(), "unknown error in *element.Dynamic rebuild"; got != want {
		t.Errorf("RebuildError.Error() = %q, want %q", got, want)
	}
}

func TestReport(t *testing.T) {
	var captured *UIError
	handler := &testHandler{onError: func(err *UIError) { captured = err }}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	Report(&UIError{Op: "test.op", Kind: KindConfig, Err: stderrors.New("bad")})

	if captured == nil {
		t.Fatal("expected error to be captured")
	}
	if captured.Op != "test.op" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.op")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestReportRebuildError(t *testing.T) {
	var captured *RebuildError
	handler := &testHandler{onRebuild: func(err *RebuildError) { captured = err }}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	ReportRebuildError(&RebuildError{Element: "*element.Dynamic", Recovered: "x"})
	if captured == nil {
		t.Fatal("expected rebuild error to be captured")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestRecover(t *testing.T) {
	var captured *PanicError
	handler := &testHandler{onPanic: func(err *PanicError) { captured = err }}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if captured == nil {
		t.Fatal("expected panic to be recovered and captured")
	}
	if captured.Op != "test.recover" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.recover")
	}
}

func TestContain(t *testing.T) {
	var panics int
	handler := &testHandler{onPanic: func(*PanicError) { panics++ }}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	if perr := Contain("ok", func() {}); perr != nil {
		t.Errorf("Contain returned %v for a clean call", perr)
	}
	perr := Contain("element.Update", func() { panic("tick failed") })
	if perr == nil || perr.Value != "tick failed" {
		t.Fatalf("Contain = %v, want recovered panic", perr)
	}
	if panics != 1 {
		t.Errorf("handler saw %d panics, want 1", panics)
	}
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if stack == "" {
		t.Error("expected non-empty stack trace")
	}
	if !strings.Contains(stack, "testing") && !strings.Contains(stack, "runtime") {
		t.Errorf("stack trace should contain testing or runtime frames, got: %s", stack)
	}
}

func TestSetHandlerNil(t *testing.T) {
	SetHandler(nil)
	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should set LogHandler, got %T", DefaultHandler)
	}
}

func TestLogHandlerWritesToOut(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Out: &buf}
	h.HandleError(&UIError{Op: "binding.Get", Kind: KindBinding, Err: &BindingError{Path: "X"}})
	h.HandleRebuildError(&RebuildError{Element: "*element.Dynamic", Recovered: "oops"})

	out := buf.String()
	if !strings.Contains(out, "[rosetta error] binding.Get: binding X: source unreachable") {
		t.Errorf("missing error line in %q", out)
	}
	if !strings.Contains(out, "[rosetta rebuild] panic in *element.Dynamic rebuild: oops") {
		t.Errorf("missing rebuild line in %q", out)
	}
}

type testHandler struct {
	onError   func(*UIError)
	onPanic   func(*PanicError)
	onRebuild func(*RebuildError)
}

func (h *testHandler) HandleError(err *UIError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}

func (h *testHandler) HandleRebuildError(err *RebuildError) {
	if h.onRebuild != nil {
		h.onRebuild(err)
	}
}
