package shared

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// QueryOptions are the paging and visibility options common to every filter.
// Soft-deleted rows are excluded unless IncludeDeleted is set.
type QueryOptions struct {
	IncludeDeleted bool
	Limit          int
	Offset         int
	SortBy         string
	SortOrder      SortOrder
}
