package github

// Page is one slice of a cursor-paginated listing.
type Page[T any] struct {
	Items     []T
	HasNext   bool
	EndCursor string
}

// Paginate drains a cursor-paginated listing into a single slice, starting
// from an absent cursor and following EndCursor until HasNext is false.
// There is no page bound; termination relies on the server eventually
// reporting the last page.
func Paginate[T any](fetch func(after *string) (Page[T], error)) ([]T, error) {
	var all []T
	var after *string
	for {
		page, err := fetch(after)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Items...)
		if !page.HasNext {
			return all, nil
		}
		cursor := page.EndCursor
		after = &cursor
	}
}
