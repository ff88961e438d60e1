package hierarchy

import (
	"sort"
	"strings"
)

// Index is built once per snapshot and answers the same queries as the
// package-level functions without rescanning the slice.
type Index struct {
	all      []Category
	byID     map[string]int
	children map[string][]int
	roots    []int
}

// NewIndex builds the adjacency for all. When ids repeat, the first
// occurrence wins, matching the scan functions.
func NewIndex(all []Category) *Index {
	idx := &Index{
		all:      make([]Category, len(all)),
		byID:     make(map[string]int, len(all)),
		children: make(map[string][]int),
	}
	copy(idx.all, all)

	for i, c := range idx.all {
		if _, dup := idx.byID[c.ID]; !dup {
			idx.byID[c.ID] = i
		}
		if c.ParentID == nil {
			idx.roots = append(idx.roots, i)
			continue
		}
		idx.children[*c.ParentID] = append(idx.children[*c.ParentID], i)
	}
	return idx
}

// Len returns the number of categories in the snapshot.
func (idx *Index) Len() int {
	return len(idx.all)
}

// All returns a copy of the snapshot in input order.
func (idx *Index) All() []Category {
	out := make([]Category, len(idx.all))
	copy(out, idx.all)
	return out
}

// Lookup returns the category with the given id.
func (idx *Index) Lookup(id string) (Category, bool) {
	i, ok := idx.byID[id]
	if !ok {
		return Category{}, false
	}
	return idx.all[i], true
}

// Roots returns the categories without a parent, in input order.
func (idx *Index) Roots() []Category {
	return idx.collect(idx.roots)
}

// Children returns the direct children of id, in input order.
func (idx *Index) Children(id string) []Category {
	return idx.collect(idx.children[id])
}

// Path returns the chain from the root down to and including id.
func (idx *Index) Path(id string) []Category {
	current, ok := idx.Lookup(id)
	if !ok {
		return []Category{}
	}

	seen := map[string]bool{current.ID: true}
	reversed := []Category{current}
	for current.ParentID != nil {
		parent, ok := idx.Lookup(*current.ParentID)
		if !ok || seen[parent.ID] {
			break
		}
		seen[parent.ID] = true
		reversed = append(reversed, parent)
		current = parent
	}
	return reverse(reversed)
}

// Level classifies c against the snapshot.
func (idx *Index) Level(c Category) Level {
	if c.ParentID == nil {
		return LevelMain
	}
	parent, ok := idx.Lookup(*c.ParentID)
	if !ok {
		return LevelUnknown
	}
	if parent.ParentID == nil {
		return LevelSub
	}
	return LevelNested
}

// LevelOf classifies the category with the given id. Unknown ids are
// LevelUnknown.
func (idx *Index) LevelOf(id string) Level {
	c, ok := idx.Lookup(id)
	if !ok {
		return LevelUnknown
	}
	return idx.Level(c)
}

// Descendants returns id followed by the ids of its whole subtree,
// breadth first. An id absent from the snapshot yields nothing.
func (idx *Index) Descendants(id string) []string {
	if _, ok := idx.byID[id]; !ok {
		return []string{}
	}

	seen := map[string]bool{id: true}
	out := []string{id}
	for head := 0; head < len(out); head++ {
		for _, i := range idx.children[out[head]] {
			childID := idx.all[i].ID
			if seen[childID] {
				continue
			}
			seen[childID] = true
			out = append(out, childID)
		}
	}
	return out
}

// Dangling returns the categories whose parent id does not resolve.
func (idx *Index) Dangling() []Category {
	out := []Category{}
	for _, c := range idx.all {
		if c.ParentID == nil {
			continue
		}
		if _, ok := idx.byID[*c.ParentID]; !ok {
			out = append(out, c)
		}
	}
	return out
}

// TreeNode is a category with its resolved children, used for menus.
type TreeNode struct {
	Category
	Level    Level       `json:"level"`
	Children []*TreeNode `json:"children"`
}

// Tree returns the forest rooted at the main categories, siblings ordered by
// SortOrder then name. maxDepth limits the number of levels; zero or less
// means no limit. Categories not reachable from a root are left out.
func (idx *Index) Tree(maxDepth int) []*TreeNode {
	seen := make(map[string]bool, len(idx.all))
	return idx.buildNodes(SortBySortOrder(idx.Roots()), 1, maxDepth, seen)
}

func (idx *Index) buildNodes(cats []Category, depth, maxDepth int, seen map[string]bool) []*TreeNode {
	nodes := make([]*TreeNode, 0, len(cats))
	for _, c := range cats {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true

		node := &TreeNode{Category: c, Level: idx.Level(c), Children: []*TreeNode{}}
		if maxDepth <= 0 || depth < maxDepth {
			node.Children = idx.buildNodes(SortBySortOrder(idx.Children(c.ID)), depth+1, maxDepth, seen)
		}
		nodes = append(nodes, node)
	}
	return nodes
}

func (idx *Index) collect(positions []int) []Category {
	out := make([]Category, 0, len(positions))
	for _, i := range positions {
		out = append(out, idx.all[i])
	}
	return out
}

// SortBySortOrder orders cats in place by SortOrder, then case-insensitive
// name, keeping input order for ties, and returns the slice.
func SortBySortOrder(cats []Category) []Category {
	sort.SliceStable(cats, func(i, j int) bool {
		if cats[i].SortOrder != cats[j].SortOrder {
			return cats[i].SortOrder < cats[j].SortOrder
		}
		return strings.ToLower(cats[i].Name) < strings.ToLower(cats[j].Name)
	})
	return cats
}
