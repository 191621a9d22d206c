package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/viljami/malli/compile"
	"github.com/viljami/malli/internal/config"
	"github.com/viljami/malli/internal/gen"
	"github.com/viljami/malli/model"
	"github.com/viljami/malli/schema"
)

const configFile = "malli.yaml"

type Settings struct {
	WorkingDir string
}

func Run(s Settings) error {
	config, err := config.Read(filepath.Join(s.WorkingDir, configFile))
	if err != nil {
		return err
	}

	models, err := compileSchemas(s, *config)
	if err != nil {
		return err
	}

	return gen.GenerateCode(*config, s.WorkingDir, models)
}

// compileSchemas resolves the schema globs from the config and compiles
// every matched document. A document without a title is named after its
// file.
func compileSchemas(s Settings, cfg config.Config) ([]*model.Model, error) {
	models := make([]*model.Model, 0)

	for _, sc := range cfg.Schemas {
		path := filepath.Join(s.WorkingDir, sc.Path)

		files, err := filepath.Glob(path)
		if err != nil {
			return nil, fmt.Errorf(`failed to resolve schema files using glob "%s": %w`, sc.Path, err)
		}

		for _, f := range files {
			node, err := schema.ParseFile(f)
			if err != nil {
				return nil, err
			}

			m, err := compile.Build(node, nil, compile.Options{
				Package: cfg.Package.Path,
			})
			if err != nil {
				return nil, fmt.Errorf(`failed to compile schema file "%s": %w`, f, err)
			}

			if !node.Has("title") {
				m.Name = modelNameFromPath(f)
			}

			models = append(models, m)
		}
	}

	return models, nil
}

func modelNameFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	if base == "" {
		return compile.DefaultModelName
	}

	return strings.ToUpper(base[0:1]) + base[1:]
}
