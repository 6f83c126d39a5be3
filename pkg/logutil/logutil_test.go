package logutil

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/245790/gemini/pkg/must"
	"github.com/245790/gemini/pkg/testutil"
)

func TestSetOutput_AffectsExistingAndNewLoggers(t *testing.T) {
	t.Cleanup(func() { SetOutput(io.Discard) })
	before := GetLogger("[before] ")
	var buf bytes.Buffer
	SetOutput(&buf)
	after := GetLogger("[after] ")

	before.Println("one")
	after.Println("two")

	s := buf.String()
	if !strings.Contains(s, "[before] ") || !strings.Contains(s, "one") ||
		!strings.Contains(s, "[after] ") || !strings.Contains(s, "two") {
		t.Errorf("output = %q", s)
	}
}

func TestSetOutputFile(t *testing.T) {
	t.Cleanup(func() { SetOutput(io.Discard) })
	dir := testutil.TempDir(t)
	fname := filepath.Join(dir, "log")
	logger := GetLogger("[test] ")

	must.OK(SetOutputFile(fname))
	logger.Println("written")
	must.OK(SetOutputFile(""))
	logger.Println("discarded")

	content := must.ReadFileString(fname)
	if !strings.Contains(content, "[test] ") || !strings.Contains(content, "written") {
		t.Errorf("log file = %q", content)
	}
	if strings.Contains(content, "discarded") {
		t.Errorf("log file has output written after switching away: %q", content)
	}
}

func TestSetOutputFile_BadPath(t *testing.T) {
	t.Cleanup(func() { SetOutput(io.Discard) })
	if err := SetOutputFile("/a/bad/path/log"); err == nil {
		t.Errorf("SetOutputFile with bad path returned nil")
	}
}
