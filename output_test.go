package rendernode

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestDumpTree(t *testing.T) {
	child := newLeaf("child", 10, 10, 1)
	child.Properties().SetAlpha(0.5)
	root := newGroup("root", 100, 100, child)

	var buf bytes.Buffer
	if err := root.Dump(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"Start display list (root",
		"Start display list (child",
		"DrawRect",
		"SaveLayerAlpha",
		"ClipRect",
		"Done (root)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "(root") > strings.Index(out, "(child") {
		t.Error("child dumped before root")
	}
}

func TestDumpEmptyNode(t *testing.T) {
	var buf bytes.Buffer
	if err := NewNode("empty").Dump(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "render=false") {
		t.Errorf("dump = %q", buf.String())
	}
}

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) { return 0, errors.New("boom") }

func TestDumpWriteError(t *testing.T) {
	if err := newLeaf("n", 1, 1, 1).Dump(errWriter{}); err == nil {
		t.Error("expected error")
	}
}
