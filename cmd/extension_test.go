package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// captureStdout runs f and returns what it wrote to os.Stdout.
func captureStdout(t *testing.T, f func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	old := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = old }()

	f()
	w.Close()
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestExtensionMechanism(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("extensions are shell scripts in this test")
	}
	dir := t.TempDir()
	script := "#!/bin/sh\necho \"user=$" + EnvUser + " verbose=$" + EnvVerbose + " args=$*\"\nexit 3\n"
	if err := os.WriteFile(filepath.Join(dir, "wf-hello"), []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	oldUser := *userID
	*userID = "alice"
	defer func() { *userID = oldUser }()

	var found bool
	var code int
	out := captureStdout(t, func() { found, code = RunExtension("hello", []string{"a", "b"}) })

	if !found {
		t.Fatal("RunExtension() did not find wf-hello")
	}
	if code != 3 {
		t.Errorf("RunExtension() exit code = %d, want 3", code)
	}
	if want := "user=alice verbose=false args=a b"; !strings.Contains(out, want) {
		t.Errorf("extension output = %q, want %q", out, want)
	}
}

func TestExtensionNotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if found, _ := RunExtension("nothing-like-this", nil); found {
		t.Error("RunExtension() found a missing extension")
	}
}
