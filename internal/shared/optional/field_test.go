package optional

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patch struct {
	Text    Field[string] `json:"text"`
	Surname Field[string] `json:"surname"`
	Rating  Field[int]    `json:"rating"`
}

func TestFieldPresence(t *testing.T) {
	var p patch
	require.NoError(t, json.Unmarshal([]byte(`{"text":"x","surname":null}`), &p))

	assert.True(t, p.Text.Set)
	assert.True(t, p.Text.Present())
	assert.Equal(t, "x", p.Text.Value)

	assert.True(t, p.Surname.Set)
	assert.True(t, p.Surname.Null)
	assert.False(t, p.Surname.Present())
	assert.Nil(t, p.Surname.Ptr())

	assert.False(t, p.Rating.Set)
	assert.Nil(t, p.Rating.Ptr())
}

func TestFieldRejectsWrongType(t *testing.T) {
	var p patch
	err := json.Unmarshal([]byte(`{"rating":"five"}`), &p)
	require.Error(t, err)
}

func TestFieldMarshal(t *testing.T) {
	out, err := json.Marshal(patch{Text: Field[string]{Value: "hi", Set: true}, Surname: Null[string]()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"hi","surname":null,"rating":null}`, string(out))
}
