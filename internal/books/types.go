package books

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Scalar holds an identifier or ranking that the API may send either as a
// JSON number or a JSON string. Numbers keep their literal text so that 4.5
// displays as "4.5" and 12 as "12".
type Scalar string

// UnmarshalJSON implements json.Unmarshaler.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty value")
	}
	switch trimmed[0] {
	case '"':
		var str string
		if err := json.Unmarshal(trimmed, &str); err != nil {
			return err
		}
		*s = Scalar(str)
		return nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var num json.Number
		if err := json.Unmarshal(trimmed, &num); err != nil {
			return err
		}
		*s = Scalar(num.String())
		return nil
	default:
		return fmt.Errorf("want number or string, got %s", truncateRaw(trimmed))
	}
}

// MarshalJSON writes the value back as a JSON string.
func (s Scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

// String returns the verbatim value.
func (s Scalar) String() string {
	return string(s)
}

// IsZero reports whether the value is blank.
func (s Scalar) IsZero() bool {
	return strings.TrimSpace(string(s)) == ""
}

// Item is one book record as returned by the data endpoint.
type Item struct {
	ID         Scalar `json:"id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	Ranking    Scalar `json:"ranking"`
	ImageURL   string `json:"image_url"`
	AmazonLink string `json:"amazon_link"`
}

// UnmarshalJSON decodes an item, accepting product_url as the purchase link
// when amazon_link is absent. An absent id or ranking stays blank; an
// explicit null is rejected like any other non-scalar.
func (it *Item) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID         Scalar `json:"id"`
		Title      string `json:"title"`
		Author     string `json:"author"`
		Ranking    Scalar `json:"ranking"`
		ImageURL   string `json:"image_url"`
		AmazonLink string `json:"amazon_link"`
		ProductURL string `json:"product_url"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*it = Item{
		ID:         raw.ID,
		Title:      raw.Title,
		Author:     raw.Author,
		Ranking:    raw.Ranking,
		ImageURL:   raw.ImageURL,
		AmazonLink: raw.AmazonLink,
	}
	if strings.TrimSpace(it.AmazonLink) == "" {
		it.AmazonLink = raw.ProductURL
	}
	return nil
}

// Response mirrors the payload returned by the data endpoint.
type Response struct {
	Data *[]Item `json:"data"`
}

// Key returns the value used to tell items apart when rendering.
func (it Item) Key() string {
	return strings.TrimSpace(it.ID.String())
}

func truncateRaw(raw []byte) string {
	const limit = 32
	if len(raw) <= limit {
		return string(raw)
	}
	return string(raw[:limit]) + "..."
}
