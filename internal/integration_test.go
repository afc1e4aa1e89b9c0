package internal_test

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/olehluchkiv/solclass/internal/analyzer"
)

func testdataDir() string {
	// Find the project root by looking for go.mod
	wd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	// We're in internal/, go up one level
	return filepath.Join(filepath.Dir(wd), "testdata")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

// fixture is one testdata archive: the parser output for a Solidity file and
// either the class models it yields or the error it fails with.
type fixture struct {
	source  string
	ast     []byte
	classes []byte
	err     string
}

func loadFixture(t *testing.T, path string) fixture {
	t.Helper()
	ar, err := txtar.ParseFile(path)
	require.NoError(t, err)

	var fx fixture
	for _, line := range strings.Split(string(ar.Comment), "\n") {
		if name, ok := strings.CutPrefix(line, "source: "); ok {
			fx.source = strings.TrimSpace(name)
		}
	}
	require.NotEmpty(t, fx.source, "archive comment must name the source file")

	for _, f := range ar.Files {
		switch f.Name {
		case "ast.json":
			fx.ast = f.Data
		case "classes.json":
			fx.classes = f.Data
		case "error":
			fx.err = strings.TrimSpace(string(f.Data))
		default:
			t.Fatalf("unexpected file %q in %s", f.Name, path)
		}
	}
	require.NotEmpty(t, fx.ast, "archive must contain ast.json")
	require.True(t, (fx.classes == nil) != (fx.err == ""), "archive must contain exactly one of classes.json or error")
	return fx
}

func TestEndToEnd(t *testing.T) {
	files, err := filepath.Glob(filepath.Join(testdataDir(), "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	logger := testLogger()
	for _, path := range files {
		t.Run(strings.TrimSuffix(filepath.Base(path), ".txtar"), func(t *testing.T) {
			fx := loadFixture(t, path)

			classes, err := analyzer.AnalyzeJSON(fx.ast, fx.source, logger)
			if fx.err != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), fx.err)
				assert.Nil(t, classes)
				return
			}
			require.NoError(t, err)

			got := mustMarshal(t, classes)
			assert.JSONEq(t, string(fx.classes), string(got))
		})
	}
}

func TestEndToEnd_FilterKeepsOnlyMatchingClasses(t *testing.T) {
	fx := loadFixture(t, filepath.Join(testdataDir(), "03_library_and_abstract.txtar"))

	classes, err := analyzer.AnalyzeJSON(fx.ast, fx.source, testLogger())
	require.NoError(t, err)
	require.Len(t, classes, 2)

	filtered := analyzer.Filter(classes, analyzer.FilterOptions{HideLibraries: true})
	require.Len(t, filtered, 1)
	assert.Equal(t, "Registry", filtered[0].Name)
	assert.Equal(t, analyzer.ClassAbstract, filtered[0].Stereotype)

	// Set was dropped, so Registry no longer points at it
	for _, a := range filtered[0].Associations {
		assert.NotEqual(t, "Set", a.TargetClassName)
	}
	assert.Len(t, classes[1].Associations, 6, "input models are left untouched")
}

func mustMarshal(t *testing.T, classes []*analyzer.ClassModel) []byte {
	t.Helper()
	data, err := json.Marshal(classes)
	require.NoError(t, err)
	return data
}
