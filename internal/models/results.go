package models

// InsertResult, UpdateResult and DeleteResult mirror the acknowledgement
// documents the store returns, so clients see the same shape regardless of
// which store backs the server.
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

const (
	DefaultPageSize = 9
	MaxPageSize     = 100
	TopFoodsLimit   = 6
)

// Page is a 1-indexed page request.
type Page struct {
	Number int
	Size   int
}

// NewPage clamps number and size into the accepted range.
func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return Page{Number: number, Size: size}
}

func (p Page) Skip() int64 {
	if p.Number < 1 {
		return 0
	}
	return int64(p.Number-1) * int64(p.Size)
}
