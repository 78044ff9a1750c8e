package model

import (
	"fmt"
	"strings"
	"time"

	"quotes-api/internal/shared/utils"
)

type Quote struct {
	ID         int64     `json:"id" db:"id"`
	AuthorID   int64     `json:"author_id" db:"author_id"`
	AuthorName string    `json:"author_name" db:"author_name"`
	Text       string    `json:"text" db:"text"`
	Rating     int       `json:"rating" db:"rating"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

type QuoteResponse struct {
	ID         int64  `json:"id"`
	AuthorID   int64  `json:"author_id"`
	AuthorName string `json:"author_name"`
	Text       string `json:"text"`
	Rating     int    `json:"rating"`
	Created    Date   `json:"created"`
}

func (q *Quote) ToResponse() *QuoteResponse {
	return &QuoteResponse{
		ID:         q.ID,
		AuthorID:   q.AuthorID,
		AuthorName: q.AuthorName,
		Text:       q.Text,
		Rating:     q.Rating,
		Created:    Date(q.CreatedAt),
	}
}

func ToResponses(quotes []*Quote) []*QuoteResponse {
	out := make([]*QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, q.ToResponse())
	}
	return out
}

// ClampRating forces a rating into [MinRating, MaxRating].
func ClampRating(rating int) int {
	return utils.Clamp(rating, MinRating, MaxRating)
}

// Date renders as DD.MM.YYYY in JSON.
type Date time.Time

func (d Date) String() string {
	return time.Time(d).Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", raw, err)
	}
	*d = Date(t)
	return nil
}
