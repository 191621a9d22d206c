package gen

import (
	"os"
	"path"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/viljami/malli/internal/config"
	"github.com/viljami/malli/model"
)

const modelPkg = "github.com/viljami/malli/model"

// GenerateCode writes one Go file declaring a struct for every compiled
// model, nested models included.
func GenerateCode(cfg config.Config, workingDir string, models []*model.Model) error {
	f := jen.NewFile(path.Base(cfg.Package.Path))

	for _, m := range collectModels(models) {
		genModelStruct(f, m)
	}

	return writeModelsToFile(f, cfg, workingDir)
}

// collectModels flattens the model trees into definition order,
// deduplicated by name. Nested models referenced from several fields
// are emitted once.
func collectModels(models []*model.Model) []*model.Model {
	seen := make(map[string]bool)
	out := make([]*model.Model, 0, len(models))

	var visitModel func(m *model.Model)
	var visitType func(t *model.Type)

	visitModel = func(m *model.Model) {
		if m == nil || seen[m.Name] {
			return
		}

		seen[m.Name] = true
		out = append(out, m)

		for i := range m.Fields {
			visitType(m.Fields[i].Type)
		}
	}

	visitType = func(t *model.Type) {
		if t == nil {
			return
		}

		visitModel(t.Object)
		visitType(t.Items)

		for _, u := range t.Union {
			visitType(u)
		}
		for _, u := range t.AllOf {
			visitType(u)
		}
	}

	for _, m := range models {
		visitModel(m)
	}

	return out
}

func genModelStruct(f *jen.File, m *model.Model) {
	f.Type().Id(goName(m.Name)).StructFunc(func(g *jen.Group) {
		if m.Base != nil {
			g.Id(goName(m.Base.Name))
		}

		for i := range m.Fields {
			fld := &m.Fields[i]

			tag := fld.Name
			if !fld.Required {
				tag += ",omitempty"
			}

			g.Id(goName(fld.Name)).Add(fieldType(fld)).Tag(map[string]string{"json": tag})
		}
	})
	f.Empty()
}

func fieldType(fld *model.Field) *jen.Statement {
	t := goType(fld.Type)

	if !fld.Required && pointerable(fld.Type) {
		return jen.Op("*").Add(t)
	}

	return t
}

func goType(t *model.Type) *jen.Statement {
	switch t.Kind {
	case model.KindString:
		return stringType(t.Format)

	case model.KindInteger:
		return jen.Int64()

	case model.KindNumber:
		return jen.Float64()

	case model.KindBoolean:
		return jen.Bool()

	case model.KindArray:
		if t.Items != nil {
			return jen.Index().Add(goType(t.Items))
		}
		return jen.Index().Id("any")

	case model.KindObject:
		return jen.Id(goName(t.Object.Name))

	case model.KindMap:
		return jen.Map(jen.String()).Id("any")
	}

	// null, any, union and allOf fields carry arbitrary values.
	return jen.Id("any")
}

func stringType(format model.Format) *jen.Statement {
	switch format {
	case model.FormatDate, model.FormatTime, model.FormatDateTime:
		return jen.Qual("time", "Time")

	case model.FormatDuration:
		return jen.Qual("time", "Duration")

	case model.FormatBase64, model.FormatBinary:
		return jen.Index().Byte()

	case model.FormatJSONString:
		return jen.Qual("encoding/json", "RawMessage")

	case model.FormatIPv4, model.FormatIPv6, model.FormatIPAnyAddress:
		return jen.Qual("net/netip", "Addr")

	case model.FormatIPInterface, model.FormatIPNetwork:
		return jen.Qual("net/netip", "Prefix")

	case model.FormatURI, model.FormatHTTPURI, model.FormatFileURI:
		return jen.Op("*").Qual("net/url", "URL")

	case model.FormatUUID, model.FormatUUID1, model.FormatUUID3,
		model.FormatUUID4, model.FormatUUID5:
		return jen.Qual("github.com/google/uuid", "UUID")

	case model.FormatPassword:
		return jen.Qual(modelPkg, "Secret")

	case model.FormatSecretBytes:
		return jen.Qual(modelPkg, "SecretBytes")
	}

	// email, path and dsn formats stay plain strings in Go.
	return jen.String()
}

// pointerable reports whether an optional field of this type gets a
// pointer. Slices, maps and interface-valued fields are already
// nil-able.
func pointerable(t *model.Type) bool {
	switch t.Kind {
	case model.KindArray, model.KindMap, model.KindAny, model.KindNull,
		model.KindUnion, model.KindAllOf:
		return false
	}

	switch t.Format {
	case model.FormatBase64, model.FormatBinary, model.FormatJSONString,
		model.FormatURI, model.FormatHTTPURI, model.FormatFileURI,
		model.FormatSecretBytes:
		return false
	}

	return true
}

func goName(name string) string {
	parts := strings.Split(name, "_")

	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[0:1]) + p[1:]
		}
	}

	return strings.Join(parts, "")
}

func writeModelsToFile(f *jen.File, cfg config.Config, workingDir string) error {
	filePath := path.Join(workingDir, cfg.Package.Path) + ".go"

	if err := os.MkdirAll(path.Dir(filePath), 0700); err != nil {
		return err
	}

	return os.WriteFile(filePath, []byte(f.GoString()), 0600)
}
