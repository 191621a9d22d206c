package model_test

import (
	"encoding/json"
	"fmt"
	"testing"

	assert "github.com/stretchr/testify/require"

	"github.com/viljami/malli/model"
)

func TestTypeEqual(t *testing.T) {
	str := func() *model.Type { return &model.Type{Kind: model.KindString} }

	assert.True(t, str().Equal(str()))
	assert.False(t, str().Equal(&model.Type{Kind: model.KindInteger}))
	assert.False(t, str().Equal(&model.Type{Kind: model.KindString, Nullable: true}))
	assert.False(t, str().Equal(&model.Type{Kind: model.KindString, Format: model.FormatUUID}))

	union := func() *model.Type {
		return &model.Type{
			Kind:  model.KindUnion,
			Union: []*model.Type{str(), {Kind: model.KindInteger}},
		}
	}

	assert.True(t, union().Equal(union()))

	reversed := &model.Type{
		Kind:  model.KindUnion,
		Union: []*model.Type{{Kind: model.KindInteger}, str()},
	}
	assert.False(t, union().Equal(reversed))

	array := func(items *model.Type) *model.Type {
		return &model.Type{Kind: model.KindArray, Items: items}
	}

	assert.True(t, array(str()).Equal(array(str())))
	assert.False(t, array(str()).Equal(array(nil)))
}

func TestModelEqual(t *testing.T) {
	m := func() *model.Model {
		return &model.Model{
			Name: "Person",
			Fields: []model.Field{
				{Name: "name", Required: true, Type: &model.Type{Kind: model.KindString}},
			},
		}
	}

	assert.True(t, m().Equal(m()))

	renamed := m()
	renamed.Name = "Human"
	assert.False(t, m().Equal(renamed))

	optional := m()
	optional.Fields[0].Required = false
	assert.False(t, m().Equal(optional))
}

func TestSecretRedacts(t *testing.T) {
	s := model.Secret("hunter2")

	assert.Equal(t, "**********", s.String())
	assert.Equal(t, "**********", fmt.Sprintf("%v", s))
	assert.Equal(t, "hunter2", s.Reveal())

	out, err := json.Marshal(s)
	assert.NoError(t, err)
	assert.Equal(t, `"**********"`, string(out))

	b := model.SecretBytes("hunter2")
	assert.Equal(t, "**********", b.String())
	assert.Equal(t, []byte("hunter2"), b.Reveal())

	out, err = json.Marshal(b)
	assert.NoError(t, err)
	assert.Equal(t, `"**********"`, string(out))
}

func TestConstraintsEmpty(t *testing.T) {
	assert.True(t, model.Constraints{}.Empty())

	min := 2
	assert.False(t, model.Constraints{MinLength: &min}.Empty())
	assert.False(t, model.Constraints{AllowedSchemes: []string{"http"}}.Empty())
}
