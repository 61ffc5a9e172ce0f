package core

// Ordering is one sort key of a listing; a "-" prefix in query strings means descending.
type Ordering struct {
	Field     string
	Ascending bool
}

func (ord Ordering) String() string {
	if ord.Ascending {
		return ord.Field
	}
	return "-" + ord.Field
}
