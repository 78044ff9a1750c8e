package model

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"quotes-api/internal/shared/optional"
)

type CreateAuthorRequest struct {
	Name    string  `json:"name"`
	Surname *string `json:"surname,omitempty"`
}

// Normalize trims whitespace; an empty surname means no surname.
func (r *CreateAuthorRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Surname = normalizeSurname(r.Surname)
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.RuneLength(1, MaxNameLength).Error("name must be at most 32 characters"),
		),
		validation.Field(&r.Surname,
			validation.RuneLength(0, MaxSurnameLength).Error("surname must be at most 32 characters"),
		),
	)
}

func (r CreateAuthorRequest) ToAuthor() *Author {
	return &Author{Name: r.Name, Surname: r.Surname}
}

// UpdateAuthorRequest carries only the keys present in the body.
// "surname": null (or "") clears the surname.
type UpdateAuthorRequest struct {
	Name    optional.Field[string] `json:"name"`
	Surname optional.Field[string] `json:"surname"`
}

func (r *UpdateAuthorRequest) Normalize() {
	if r.Name.Present() {
		r.Name.Value = strings.TrimSpace(r.Name.Value)
	}
	if r.Surname.Present() {
		r.Surname.Value = strings.TrimSpace(r.Surname.Value)
		if r.Surname.Value == "" {
			r.Surname = optional.Null[string]()
		}
	}
}

func (r UpdateAuthorRequest) Validate() error {
	return validation.Errors{
		"name":    validateOptionalName(r.Name),
		"surname": validateOptionalSurname(r.Surname),
	}.Filter()
}

func (r UpdateAuthorRequest) ToPatch() AuthorPatch {
	return AuthorPatch{Name: r.Name.Ptr(), Surname: r.Surname}
}

// AuthorPatch is the allow-list of author columns an update may touch.
type AuthorPatch struct {
	Name    *string
	Surname optional.Field[string]
}

func (p AuthorPatch) IsEmpty() bool {
	return p.Name == nil && !p.Surname.Set
}

// Apply returns a copy of a with the patch applied.
func (p AuthorPatch) Apply(a Author) Author {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Surname.Set {
		a.Surname = p.Surname.Ptr()
	}
	return a
}

func validateOptionalName(f optional.Field[string]) error {
	if !f.Set {
		return nil
	}
	if f.Null || f.Value == "" {
		return errors.New("name cannot be empty")
	}
	return validation.Validate(f.Value,
		validation.RuneLength(1, MaxNameLength).Error("name must be at most 32 characters"))
}

func validateOptionalSurname(f optional.Field[string]) error {
	if !f.Present() {
		return nil
	}
	return validation.Validate(f.Value,
		validation.RuneLength(0, MaxSurnameLength).Error("surname must be at most 32 characters"))
}

func normalizeSurname(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
