package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/papapumpkin/filelink/internal/filestore"
	"github.com/papapumpkin/filelink/internal/plugin"
	"github.com/papapumpkin/filelink/internal/resolve"
)

func TestPrinter_Levels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := NewWriter(&buf)
	p.Info("hello")
	p.Warn("careful")
	p.Success("done")
	p.Error("bad")

	want := "hello\n⚠ warn: careful\n✓ done\nerror: bad\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestPrinter_ImplementsReporter(t *testing.T) {
	t.Parallel()
	var _ resolve.Reporter = NewWriter(&bytes.Buffer{})
}

func TestPrinter_Extensions(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewWriter(&buf).Extensions(plugin.Report{
		Registered: []plugin.Extension{
			{Name: "fileByImagesPath", Dir: "src/images"},
			{Name: plugin.GenericExtension, Args: []plugin.Arg{{Name: "path", Type: "String!"}}},
		},
		Skipped: []plugin.Skipped{{Err: errors.New("filelink: no 'dirs' passed to plugin options")}},
	})

	out := buf.String()
	for _, want := range []string{"fileByImagesPath", "src/images", "fileByAbsolutePath", "path: String!", "(dirs)", "no 'dirs'"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrinter_Resolved(t *testing.T) {
	t.Parallel()

	a := filestore.NewFile("/site", "assets/a.png", nil)
	tests := []struct {
		name string
		res  resolve.Result
		want []string
	}{
		{"single", resolve.Result{File: &a}, []string{"/site/assets/a.png", a.ID}},
		{"miss", resolve.Result{}, []string{"(no match)"}},
		{"list with gap", resolve.Result{List: true, Files: []*filestore.File{&a, nil}}, []string{"/site/assets/a.png", "- (no match)"}},
		{"empty list", resolve.Result{List: true}, []string{"(empty list)"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			NewWriter(&buf).Resolved("post.md", "cover", "fileByAssetsPath", tt.res)
			out := buf.String()
			if !strings.HasPrefix(out, "post.md cover @fileByAssetsPath\n") {
				t.Errorf("header = %q", out)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
		})
	}
}
