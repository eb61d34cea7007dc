package match

import "context"

// Filter narrows a history query. Name and Champion match case-insensitive
// substrings against player rows, Role matches a player row exactly, and
// Result matches the match row exactly. Empty fields match everything.
type Filter struct {
	Name     string
	Champion string
	Role     string
	Result   string
}

// IsEmpty reports whether no criterion is set at all.
func (f Filter) IsEmpty() bool {
	return f.Name == "" && f.Champion == "" && f.Role == "" && f.Result == ""
}

// Repository persists and retrieves archived matches.
//
// Save must write the match row and its ten player rows as one atomic
// unit: a failure part-way leaves nothing visible. Reset must likewise
// atomically delete every row and restart identity assignment.
type Repository interface {
	Save(ctx context.Context, record Record) (Record, error)
	List(ctx context.Context, filter Filter) ([]Record, error)
	Reset(ctx context.Context) error
}
