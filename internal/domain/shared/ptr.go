package shared

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T { return &v }

// ClonePtr copies the value behind p so callers cannot alias aggregate state.
func ClonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
