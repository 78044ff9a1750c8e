package model

import "quotes-api/internal/shared/utils"

const (
	MaxNameLength    = 32
	MaxSurnameLength = 32
)

type Author struct {
	ID        int64   `json:"id" db:"id"`
	Name      string  `json:"name" db:"name"`
	Surname   *string `json:"surname" db:"surname"`
	IsDeleted bool    `json:"is_deleted" db:"is_deleted"`
}

type AuthorResponse struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Surname *string `json:"surname"`
}

// ToResponse converts Author to AuthorResponse
func (a *Author) ToResponse() *AuthorResponse {
	return &AuthorResponse{
		ID:      a.ID,
		Name:    a.Name,
		Surname: a.Surname,
	}
}

// FullName is "name surname", or just the name when there is no surname.
func (a *Author) FullName() string {
	return utils.FullName(a.Name, a.Surname)
}

// SearchName is the folded full name used by case-insensitive author filters.
func (a *Author) SearchName() string {
	return utils.SearchKey(a.Name, a.Surname)
}

func ToResponses(authors []*Author) []*AuthorResponse {
	out := make([]*AuthorResponse, 0, len(authors))
	for _, a := range authors {
		out = append(out, a.ToResponse())
	}
	return out
}
