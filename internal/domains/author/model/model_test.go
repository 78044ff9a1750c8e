package model

import (
	"encoding/json"
	"strings"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAuthorRequestValidate(t *testing.T) {
	req := CreateAuthorRequest{Name: "  Mark ", Surname: strPtr("  ")}
	req.Normalize()
	require.NoError(t, req.Validate())
	assert.Equal(t, "Mark", req.Name)
	assert.Nil(t, req.Surname)

	missing := CreateAuthorRequest{}
	err := missing.Validate()
	require.Error(t, err)
	var errs validation.Errors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "name")

	long := CreateAuthorRequest{Name: strings.Repeat("я", 33)}
	assert.Error(t, long.Validate())

	exact := CreateAuthorRequest{Name: strings.Repeat("я", 32)}
	assert.NoError(t, exact.Validate())
}

func TestUpdateAuthorRequestPresence(t *testing.T) {
	var req UpdateAuthorRequest
	require.NoError(t, json.Unmarshal([]byte(`{"surname": null}`), &req))
	req.Normalize()
	require.NoError(t, req.Validate())

	patch := req.ToPatch()
	assert.Nil(t, patch.Name)
	assert.True(t, patch.Surname.Set)

	a := patch.Apply(Author{ID: 1, Name: "Mark", Surname: strPtr("Twain")})
	assert.Equal(t, "Mark", a.Name)
	assert.Nil(t, a.Surname)
}

func TestUpdateAuthorRequestRejectsNullName(t *testing.T) {
	var req UpdateAuthorRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name": null}`), &req))
	assert.Error(t, req.Validate())

	var blank UpdateAuthorRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name": "   "}`), &blank))
	blank.Normalize()
	assert.Error(t, blank.Validate())
}

func TestUpdateAuthorRequestEmptySurnameClears(t *testing.T) {
	var req UpdateAuthorRequest
	require.NoError(t, json.Unmarshal([]byte(`{"surname": ""}`), &req))
	req.Normalize()
	assert.True(t, req.Surname.Null)
	assert.True(t, req.ToPatch().Surname.Set)
}

func TestEmptyPatch(t *testing.T) {
	var req UpdateAuthorRequest
	require.NoError(t, json.Unmarshal([]byte(`{}`), &req))
	assert.True(t, req.ToPatch().IsEmpty())
}

func TestNewAuthorFilter(t *testing.T) {
	f, err := NewAuthorFilter("", "", false)
	require.NoError(t, err)
	assert.Equal(t, SortByID, f.SortBy)
	assert.False(t, f.Desc())

	f, err = NewAuthorFilter("Surname", "DESC", true)
	require.NoError(t, err)
	assert.Equal(t, SortBySurname, f.SortBy)
	assert.True(t, f.Desc())
	assert.True(t, f.Deleted)

	_, err = NewAuthorFilter("rating", "asc", false)
	assert.ErrorIs(t, err, ErrInvalidSort)

	_, err = NewAuthorFilter("name", "up", false)
	assert.ErrorIs(t, err, ErrInvalidSort)
}

func TestAuthorNames(t *testing.T) {
	a := Author{Name: "Лев", Surname: strPtr("Толстой")}
	assert.Equal(t, "Лев Толстой", a.FullName())
	assert.Equal(t, "лев толстой", a.SearchName())
	assert.Equal(t, &AuthorResponse{Name: "Лев", Surname: a.Surname}, a.ToResponse())
}

func strPtr(s string) *string { return &s }
