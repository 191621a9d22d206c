package cmd_test

import (
	"os"
	"path/filepath"
	"testing"

	assert "github.com/stretchr/testify/require"

	"github.com/viljami/malli/internal/cmd"
)

func writeFile(t *testing.T, path string, data string) {
	t.Helper()

	assert.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	assert.NoError(t, os.WriteFile(path, []byte(data), 0600))
}

func TestRun(t *testing.T) {
	wd := t.TempDir()

	writeFile(t, filepath.Join(wd, "malli.yaml"), `
version: 1
package:
  path: models/models
schemas:
  - path: schemas/*.json
  - path: schemas/*.yaml
`)

	writeFile(t, filepath.Join(wd, "schemas", "person.json"), `{
		"title": "Person",
		"type": "object",
		"properties": {
			"name": {"type": "string"},
			"age": {"type": "integer"}
		},
		"required": ["name"]
	}`)

	// An untitled document is named after its file.
	writeFile(t, filepath.Join(wd, "schemas", "pet.yaml"), `
type: object
properties:
  species:
    type: string
required:
  - species
`)

	assert.NoError(t, cmd.Run(cmd.Settings{WorkingDir: wd}))

	out, err := os.ReadFile(filepath.Join(wd, "models", "models.go"))
	assert.NoError(t, err)

	src := string(out)
	assert.Contains(t, src, "package models")
	assert.Contains(t, src, "type Person struct")
	assert.Contains(t, src, "type Pet struct")
	assert.Regexp(t, "Species\\s+string\\s+`json:\"species\"`", src)
}

func TestRunFailsOnBadSchema(t *testing.T) {
	wd := t.TempDir()

	writeFile(t, filepath.Join(wd, "malli.yaml"), `
version: 1
package:
  path: models/models
schemas:
  - path: schemas/*.json
`)

	writeFile(t, filepath.Join(wd, "schemas", "bad.json"), `{
		"title": "Bad",
		"type": "object",
		"properties": {"x": {"type": "tuple"}}
	}`)

	err := cmd.Run(cmd.Settings{WorkingDir: wd})
	assert.ErrorContains(t, err, `unsupported schema type "tuple"`)
}

func TestRunFailsWithoutConfig(t *testing.T) {
	err := cmd.Run(cmd.Settings{WorkingDir: t.TempDir()})
	assert.ErrorContains(t, err, "failed to read config file")
}
