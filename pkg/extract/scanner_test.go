package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProjectFile(t *testing.T, root, relPath, content string) {
	t.Helper()
	path := filepath.Join(root, relPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeProjectFile(t, root, "src/greet.js", `import { defineMessage } from 'react-intl';
const a = defineMessage({ id: "greet", defaultMessage: "Hi" });
`)
	writeProjectFile(t, root, "src/components/toolbar.jsx", `import { FormattedMessage } from 'react-intl';
const el = <FormattedMessage id="toolbar.save" defaultMessage="Save" />;
`)
	writeProjectFile(t, root, "src/util.js", `export const add = (a, b) => a + b;
`)
	writeProjectFile(t, root, "node_modules/react-intl/index.js", `import { defineMessage } from 'react-intl';
const skipped = defineMessage({ id: "dep", defaultMessage: "Dep" });
`)

	return root
}

func TestScan_Project(t *testing.T) {
	root := newTestProject(t)

	result, err := Scan(context.Background(), root)
	require.NoError(t, err)
	assert.Empty(t, result.Errors)

	require.Len(t, result.Catalog.Files, 2)
	// Sorted by path for deterministic output.
	assert.Equal(t, filepath.Join("src", "components", "toolbar.jsx"), result.Catalog.Files[0].Path)
	assert.Equal(t, filepath.Join("src", "greet.js"), result.Catalog.Files[1].Path)

	assert.Equal(t, 3, result.Stats.FilesScanned)
	assert.Equal(t, 2, result.Stats.FilesInScope)
	assert.Equal(t, 1, result.Stats.FilesSkipped)
	assert.Equal(t, 0, result.Stats.FilesFailed)
	assert.Equal(t, 2, result.Stats.MessagesFound)
}

func TestScan_FatalUnitFailsThatFileOnly(t *testing.T) {
	root := newTestProject(t)
	writeProjectFile(t, root, "src/broken.js", `import { defineMessage } from 'react-intl';
const a = defineMessage("nope");
`)

	result, err := Scan(context.Background(), root)
	require.NoError(t, err)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, filepath.Join("src", "broken.js"), result.Errors[0].Path)
	assert.Equal(t, "extraction", result.Errors[0].Phase)
	assert.ErrorIs(t, result.Errors[0].Err, ErrBadCallArgument)

	// The healthy files still extracted.
	assert.Len(t, result.Catalog.Files, 2)
	assert.Equal(t, 1, result.Stats.FilesFailed)
}

func TestScan_WithPatterns(t *testing.T) {
	root := newTestProject(t)

	result, err := Scan(context.Background(), root, WithPatterns([]string{"src/components/**"}))
	require.NoError(t, err)

	require.Len(t, result.Catalog.Files, 1)
	assert.Equal(t, filepath.Join("src", "components", "toolbar.jsx"), result.Catalog.Files[0].Path)
}

func TestScan_WithExcludePatterns(t *testing.T) {
	root := newTestProject(t)

	result, err := Scan(context.Background(), root, WithExcludePatterns([]string{"components"}))
	require.NoError(t, err)

	require.Len(t, result.Catalog.Files, 1)
	assert.Equal(t, filepath.Join("src", "greet.js"), result.Catalog.Files[0].Path)
}

func TestScan_WritesMessagesDir(t *testing.T) {
	root := newTestProject(t)
	out := t.TempDir()

	_, err := Scan(context.Background(), root, WithMessagesDir(out))
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(out, "src", "greet.json"))
	assert.FileExists(t, filepath.Join(out, "src", "components", "toolbar.json"))

	// Out-of-scope files produce no catalog file.
	assert.NoFileExists(t, filepath.Join(out, "src", "util.json"))
}

func TestScan_EmptyProject(t *testing.T) {
	result, err := Scan(context.Background(), t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, result.Catalog.Files)
	assert.Equal(t, 0, result.Stats.FilesScanned)
}

func TestIsSourceFileCandidate(t *testing.T) {
	assert.True(t, isSourceFileCandidate("src/app.js"))
	assert.True(t, isSourceFileCandidate("src/App.tsx"))
	assert.True(t, isSourceFileCandidate("lib/index.mjs"))
	assert.False(t, isSourceFileCandidate("types/global.d.ts"))
	assert.False(t, isSourceFileCandidate("src/app.test.js"))
	assert.False(t, isSourceFileCandidate("src/app.spec.tsx"))
	assert.False(t, isSourceFileCandidate("README.md"))
	assert.False(t, isSourceFileCandidate("styles.css"))
}
