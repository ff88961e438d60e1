// Package hierarchy derives structure from a flat list of categories: root
// sets, children, breadcrumb paths and the navigation level a category
// occupies. Every function is total; missing or dangling references produce
// empty results or LevelUnknown, never an error.
package hierarchy

// Category is one node of the category tree as stored: a typed optional
// parent reference and nothing derived.
type Category struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	ParentID  *string `json:"parent_id,omitempty"`
	SortOrder int     `json:"sort_order"`
}

// IsRoot reports whether the category has no parent.
func (c Category) IsRoot() bool {
	return c.ParentID == nil
}

// Level is the navigation level a category occupies.
type Level string

const (
	LevelMain    Level = "main"
	LevelSub     Level = "sub"
	LevelNested  Level = "nested"
	LevelUnknown Level = "unknown"
)

// RootCategories returns every category without a parent, in input order.
func RootCategories(all []Category) []Category {
	roots := []Category{}
	for _, c := range all {
		if c.IsRoot() {
			roots = append(roots, c)
		}
	}
	return roots
}

// ChildrenOf returns every category whose parent is id, in input order.
func ChildrenOf(all []Category, id string) []Category {
	children := []Category{}
	for _, c := range all {
		if c.ParentID != nil && *c.ParentID == id {
			children = append(children, c)
		}
	}
	return children
}

// PathTo returns the chain from the root down to and including id. An id not
// present in all yields an empty path; a dangling parent ends the chain.
func PathTo(all []Category, id string) []Category {
	current, ok := find(all, id)
	if !ok {
		return []Category{}
	}

	seen := map[string]bool{current.ID: true}
	reversed := []Category{current}
	for current.ParentID != nil {
		parent, ok := find(all, *current.ParentID)
		if !ok || seen[parent.ID] {
			break
		}
		seen[parent.ID] = true
		reversed = append(reversed, parent)
		current = parent
	}

	return reverse(reversed)
}

// ClassifyLevel reports whether c is a main, sub or nested category within all.
func ClassifyLevel(c Category, all []Category) Level {
	if c.ParentID == nil {
		return LevelMain
	}
	parent, ok := find(all, *c.ParentID)
	if !ok {
		return LevelUnknown
	}
	if parent.ParentID == nil {
		return LevelSub
	}
	return LevelNested
}

func find(all []Category, id string) (Category, bool) {
	for _, c := range all {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

func reverse(cats []Category) []Category {
	for i, j := 0, len(cats)-1; i < j; i, j = i+1, j-1 {
		cats[i], cats[j] = cats[j], cats[i]
	}
	return cats
}
