package domain

// Optional distinguishes a field that was supplied from one that was left out.
type Optional[T any] struct {
	value   T
	present bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

// None returns an absent Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it was supplied.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

// Present reports whether the field was supplied.
func (o Optional[T]) Present() bool {
	return o.present
}

// TicketPatch is a partial ticket update. Assignee carries a nil pointer when
// the caller explicitly clears it.
type TicketPatch struct {
	Title       Optional[string]
	Description Optional[string]
	Status      Optional[string]
	Assignee    Optional[*string]
}
