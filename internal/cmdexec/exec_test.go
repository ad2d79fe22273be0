package cmdexec

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"mgit/internal/log"
)

func logCtx() context.Context {
	l := log.New(&bytes.Buffer{}, false, false)
	return log.WithLogger(context.Background(), l)
}

func TestRunContext_Success(t *testing.T) {
	t.Parallel()
	err := RunContext(logCtx(), "", "echo", "hello")
	if err != nil {
		t.Errorf("RunContext(echo hello) = %v, want nil", err)
	}
}

func TestRunContext_Failure(t *testing.T) {
	t.Parallel()
	err := RunContext(logCtx(), "", "sh", "-c", "exit 1")
	if err == nil {
		t.Error("RunContext(exit 1) = nil, want error")
	}
}

func TestRunContext_StderrMessage(t *testing.T) {
	t.Parallel()
	err := RunContext(logCtx(), "", "sh", "-c", "echo 'bad thing' >&2; exit 1")
	if err == nil {
		t.Fatal("RunContext = nil, want error")
	}
	if err.Error() != "bad thing" {
		t.Errorf("RunContext error = %q, want %q", err.Error(), "bad thing")
	}
}

func TestRunContext_ContextCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(logCtx())
	cancel()
	err := RunContext(ctx, "", "sleep", "10")
	if err == nil {
		t.Error("RunContext with cancelled context = nil, want error")
	}
	if err != context.Canceled {
		t.Errorf("RunContext error = %v, want context.Canceled", err)
	}
}

func TestRunContext_Dir(t *testing.T) {
	t.Parallel()
	err := RunContext(logCtx(), "/tmp", "pwd")
	if err != nil {
		t.Errorf("RunContext with dir = %v, want nil", err)
	}
}

func TestOutputContext_Success(t *testing.T) {
	t.Parallel()
	out, err := OutputContext(logCtx(), "", "echo", "hello")
	if err != nil {
		t.Fatalf("OutputContext(echo hello) = %v, want nil", err)
	}
	if got := string(out); got != "hello\n" {
		t.Errorf("OutputContext output = %q, want %q", got, "hello\n")
	}
}

func TestOutputContext_StderrMessage(t *testing.T) {
	t.Parallel()
	_, err := OutputContext(logCtx(), "", "sh", "-c", "echo 'error msg' >&2; exit 1")
	if err == nil {
		t.Fatal("OutputContext = nil, want error")
	}
	if err.Error() != "error msg" {
		t.Errorf("OutputContext error = %q, want %q", err.Error(), "error msg")
	}
}

func TestCombinedContext_MergesStreams(t *testing.T) {
	t.Parallel()
	out, code, err := CombinedContext(logCtx(), "", "sh", "-c", "echo out; echo err >&2")
	if err != nil {
		t.Fatalf("CombinedContext = %v, want nil", err)
	}
	if code != 0 {
		t.Errorf("CombinedContext exit code = %d, want 0", code)
	}
	got := string(out)
	if !strings.Contains(got, "out") || !strings.Contains(got, "err") {
		t.Errorf("CombinedContext output = %q, want both streams", got)
	}
}

func TestCombinedContext_NonZeroExitIsNotAnError(t *testing.T) {
	t.Parallel()
	out, code, err := CombinedContext(logCtx(), "", "sh", "-c", "echo 'fatal: boom' >&2; exit 128")
	if err != nil {
		t.Fatalf("CombinedContext = %v, want nil for non-zero exit", err)
	}
	if code != 128 {
		t.Errorf("CombinedContext exit code = %d, want 128", code)
	}
	if !strings.Contains(string(out), "fatal: boom") {
		t.Errorf("CombinedContext output = %q, want captured stderr", out)
	}
}

func TestCombinedContext_StartFailure(t *testing.T) {
	t.Parallel()
	_, code, err := CombinedContext(logCtx(), "", "definitely-not-a-real-binary-mgit")
	if err == nil {
		t.Error("CombinedContext for missing binary = nil, want error")
	}
	if code != -1 {
		t.Errorf("CombinedContext exit code = %d, want -1", code)
	}
}

func TestCombinedContext_ContextCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(logCtx())
	cancel()
	_, code, err := CombinedContext(ctx, "", "sleep", "10")
	if err != context.Canceled {
		t.Errorf("CombinedContext error = %v, want context.Canceled", err)
	}
	if code != -1 {
		t.Errorf("CombinedContext exit code = %d, want -1", code)
	}
}
