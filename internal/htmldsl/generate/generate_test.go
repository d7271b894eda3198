package generate_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/kilianc/htmldsl/internal/htmldsl/compile"
	"github.com/kilianc/htmldsl/internal/htmldsl/generate"
)

const pageScript = `html { body { p { + "hello" } } }`

// tree creates files below a fresh directory and returns its path.
func tree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

func TestCollectPaths(t *testing.T) {
	root := tree(t, map[string]string{
		"go.mod":                 "module example.com/x\n",
		"a.htmldsl":              pageScript,
		"notes.txt":              "",
		"sub/b.htmldsl":          pageScript,
		"sub/deep/c.htmldsl":     pageScript,
		"vendor/v.htmldsl":       pageScript,
		".hidden/h.htmldsl":      pageScript,
		"node_modules/n.htmldsl": pageScript,
	})
	abs := func(name string) string { return filepath.Join(root, filepath.FromSlash(name)) }

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{name: "recursive", patterns: []string{"./..."}, want: []string{abs("a.htmldsl"), abs("sub/b.htmldsl"), abs("sub/deep/c.htmldsl")}},
		{name: "dir only", patterns: []string{"./sub"}, want: []string{abs("sub/b.htmldsl")}},
		{name: "dir recursive", patterns: []string{"sub/..."}, want: []string{abs("sub/b.htmldsl"), abs("sub/deep/c.htmldsl")}},
		{name: "file", patterns: []string{"./sub/deep/c.htmldsl"}, want: []string{abs("sub/deep/c.htmldsl")}},
		{name: "dedup", patterns: []string{"a.htmldsl", "./a.htmldsl", "."}, want: []string{abs("a.htmldsl")}},
		{name: "blank", patterns: []string{" "}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := generate.CollectPaths(root, tt.patterns)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := generate.CollectPaths(root, []string{"notes.txt"})
	assert.ErrorContains(t, err, "not a .htmldsl file")

	_, err = generate.CollectPaths(root, []string{"missing"})
	assert.Error(t, err)
}

func TestFindModuleRoot(t *testing.T) {
	root := tree(t, map[string]string{
		"go.mod":        "module example.com/x\n",
		"sub/deep/keep": "",
	})

	got, err := generate.FindModuleRoot(filepath.Join(root, "sub", "deep"))
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestFindModuleRootSkipsGoModDirectories(t *testing.T) {
	root := tree(t, map[string]string{
		"go.mod":             "module example.com/x\n",
		"sub/go.mod/keep":    "",
		"sub/deep/x.htmldsl": pageScript,
	})

	got, err := generate.FindModuleRoot(filepath.Join(root, "sub", "deep"))
	require.NoError(t, err)
	assert.Equal(t, root, got)

	got, err = generate.FindModuleRoot(filepath.Join(root, "sub", "go.mod"))
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestFindModuleRootMissing(t *testing.T) {
	dir := t.TempDir()
	if _, err := generate.FindModuleRoot(dir); err == nil {
		t.Skip("a go.mod exists above the temp dir")
	}

	_, err := generate.FindModuleRoot(dir)
	require.ErrorIs(t, err, generate.ErrNoModule)
	assert.Contains(t, err.Error(), dir)
}

func TestRun(t *testing.T) {
	root := tree(t, map[string]string{
		"a.htmldsl":     pageScript,
		"sub/b.htmldsl": `html { head { title { + "b" } } }`,
	})

	g := &generate.Generator{Format: compile.FormatText, Workers: 2, Logger: zaptest.NewLogger(t)}
	results, err := g.Run(context.Background(), root, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, r.Changed)
		assert.Equal(t, r.Source+".txt", r.Output)
	}

	b, err := os.ReadFile(filepath.Join(root, "a.htmldsl.txt"))
	require.NoError(t, err)
	assert.Equal(t, "<html>\n<body>\n<p>\nhello\n</p>\n</body>\n</html>\n", string(b))

	// a second run leaves unchanged outputs alone
	results, err = g.Run(context.Background(), root, []string{"./..."})
	require.NoError(t, err)
	for _, r := range results {
		assert.False(t, r.Changed)
	}
}

func TestRunHTMLWithExtension(t *testing.T) {
	root := tree(t, map[string]string{"a.htmldsl": pageScript})

	g := &generate.Generator{Format: compile.FormatHTML, Extension: ".htm"}
	_, err := g.RunDir(context.Background(), root)
	require.NoError(t, err)

	b, err := os.ReadFile(filepath.Join(root, "a.htmldsl.htm"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(b), "<html><body><p>hello</p></body></html>"))
}

func TestRunJoinsErrors(t *testing.T) {
	root := tree(t, map[string]string{
		"bad1.htmldsl": `html { div {} }`,
		"bad2.htmldsl": `body {}`,
		"good.htmldsl": pageScript,
	})

	g := &generate.Generator{Format: compile.FormatText, Workers: 3}
	results, err := g.Run(context.Background(), root, []string{"."})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad1.htmldsl:1:8: unknown tag <div>")
	assert.Contains(t, err.Error(), "bad2.htmldsl:1:1: root must be <html>")

	require.Len(t, results, 1)
	assert.Equal(t, filepath.Join(root, "good.htmldsl"), results[0].Source)
	assert.FileExists(t, filepath.Join(root, "good.htmldsl.txt"))
	assert.NoFileExists(t, filepath.Join(root, "bad1.htmldsl.txt"))
}

func TestRunCancelled(t *testing.T) {
	root := tree(t, map[string]string{"a.htmldsl": pageScript})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := &generate.Generator{Format: compile.FormatText}
	_, err := g.Run(ctx, root, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, filepath.Join(root, "a.htmldsl.txt"))
}
