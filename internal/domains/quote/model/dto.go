package model

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"quotes-api/internal/shared/optional"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// CreateQuoteRequest creates a quote. "author" is accepted as an alias of
// "author_id".
type CreateQuoteRequest struct {
	AuthorID *int64 `json:"author_id"`
	Author   *int64 `json:"author"`
	Text     string `json:"text"`
	Rating   *int   `json:"rating"`
}

// ResolvedAuthorID prefers author_id over the author alias.
func (r CreateQuoteRequest) ResolvedAuthorID() *int64 {
	if r.AuthorID != nil {
		return r.AuthorID
	}
	return r.Author
}

func (r CreateQuoteRequest) Validate() error {
	return validation.Errors{
		"author_id": validateAuthorID(r.ResolvedAuthorID()),
		"text":      validateText(r.Text),
	}.Filter()
}

func (r CreateQuoteRequest) ToQuote() *Quote {
	q := &Quote{Text: r.Text, Rating: DefaultRating}
	if id := r.ResolvedAuthorID(); id != nil {
		q.AuthorID = *id
	}
	if r.Rating != nil {
		q.Rating = ClampRating(*r.Rating)
	}
	return q
}

// CreateAuthorQuoteRequest creates a quote under the author named in the path.
type CreateAuthorQuoteRequest struct {
	Text   string `json:"text"`
	Rating *int   `json:"rating"`
}

func (r CreateAuthorQuoteRequest) Validate() error {
	return validation.Errors{
		"text": validateText(r.Text),
	}.Filter()
}

func (r CreateAuthorQuoteRequest) ToQuote(authorID int64) *Quote {
	q := &Quote{AuthorID: authorID, Text: r.Text, Rating: DefaultRating}
	if r.Rating != nil {
		q.Rating = ClampRating(*r.Rating)
	}
	return q
}

// UpdateQuoteRequest carries only the keys present in the body.
type UpdateQuoteRequest struct {
	AuthorID optional.Field[int64]  `json:"author_id"`
	Author   optional.Field[int64]  `json:"author"`
	Text     optional.Field[string] `json:"text"`
	Rating   optional.Field[int]    `json:"rating"`
}

func (r UpdateQuoteRequest) authorField() optional.Field[int64] {
	if r.AuthorID.Set {
		return r.AuthorID
	}
	return r.Author
}

func (r UpdateQuoteRequest) Validate() error {
	errs := validation.Errors{}

	if author := r.authorField(); author.Set {
		if author.Null {
			errs["author_id"] = errors.New("author_id cannot be null")
		} else if author.Value < 1 {
			errs["author_id"] = errors.New("author_id must be a positive integer")
		}
	}
	if r.Text.Set {
		if r.Text.Null {
			errs["text"] = errors.New("text cannot be null")
		} else {
			errs["text"] = validateText(r.Text.Value)
		}
	}
	if r.Rating.Set && r.Rating.Null {
		errs["rating"] = errors.New("rating cannot be null")
	}
	return errs.Filter()
}

// ToPatch assumes Validate passed. Ratings are clamped here.
func (r UpdateQuoteRequest) ToPatch() QuotePatch {
	patch := QuotePatch{
		AuthorID: r.authorField().Ptr(),
		Text:     r.Text.Ptr(),
	}
	if r.Rating.Present() {
		rating := ClampRating(r.Rating.Value)
		patch.Rating = &rating
	}
	return patch
}

// QuotePatch is the allow-list of quote columns an update may touch.
type QuotePatch struct {
	AuthorID *int64
	Text     *string
	Rating   *int
}

func (p QuotePatch) IsEmpty() bool {
	return p.AuthorID == nil && p.Text == nil && p.Rating == nil
}

// Apply returns a copy of q with the patch applied.
func (p QuotePatch) Apply(q Quote) Quote {
	if p.AuthorID != nil {
		q.AuthorID = *p.AuthorID
	}
	if p.Text != nil {
		q.Text = *p.Text
	}
	if p.Rating != nil {
		q.Rating = ClampRating(*p.Rating)
	}
	return q
}

func validateAuthorID(id *int64) error {
	if id == nil {
		return errors.New("author_id is required")
	}
	if *id < 1 {
		return errors.New("author_id must be a positive integer")
	}
	return nil
}

func validateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.New("text is required")
	}
	return validation.Validate(text,
		validation.RuneLength(1, MaxTextLength).Error("text must be at most 255 characters"))
}
