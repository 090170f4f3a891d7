package books

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSchema reports a payload that parsed as JSON but does not have the
// expected shape.
var ErrSchema = errors.New("unexpected payload shape")

// Validate checks the decoded envelope and returns its items. A missing or
// null data field is rejected; an empty list is fine.
func Validate(resp Response) ([]Item, error) {
	if resp.Data == nil {
		return nil, fmt.Errorf("%w: missing data field", ErrSchema)
	}
	items := *resp.Data
	seen := make(map[string]int, len(items))
	for i, item := range items {
		key := item.Key()
		if key == "" {
			return nil, fmt.Errorf("%w: item %d has no id", ErrSchema, i)
		}
		if strings.TrimSpace(item.Title) == "" {
			return nil, fmt.Errorf("%w: item %s has no title", ErrSchema, key)
		}
		if strings.TrimSpace(item.Author) == "" {
			return nil, fmt.Errorf("%w: item %s has no author", ErrSchema, key)
		}
		if prev, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: items %d and %d share id %s", ErrSchema, prev, i, key)
		}
		seen[key] = i
	}
	if len(items) == 0 {
		return []Item{}, nil
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out, nil
}
