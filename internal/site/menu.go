package site

import "sort"

// MenuItem is one entry of the navigation bar. Items with Right set are
// pushed to the right-hand side.
type MenuItem struct {
	Pos   int
	Label string
	Path  string
	Right bool
}

// DefaultMenu returns the site navigation sorted by position.
func DefaultMenu() []MenuItem {
	return SortMenu([]MenuItem{
		{Pos: 4, Label: "Informatie", Path: "/informatie", Right: true},
		{Pos: 3, Label: "Statistieken", Path: "/statistieken"},
		{Pos: 0, Label: "Home", Path: "/"},
		{Pos: 2, Label: "Berichten", Path: "/berichten"},
		{Pos: 1, Label: "Archief", Path: "/archief"},
	})
}

// SortMenu returns a copy of items ordered by Pos.
func SortMenu(items []MenuItem) []MenuItem {
	sorted := make([]MenuItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Pos < sorted[j].Pos })
	return sorted
}
