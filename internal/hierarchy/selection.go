package hierarchy

import (
	"errors"
	"strings"
)

// SelectionState is the step reached in the nested-category picker.
type SelectionState int

const (
	NoParentChosen SelectionState = iota
	ParentChosen
	SubcategoryChosen
)

func (s SelectionState) String() string {
	switch s {
	case NoParentChosen:
		return "no_parent_chosen"
	case ParentChosen:
		return "parent_chosen"
	case SubcategoryChosen:
		return "subcategory_chosen"
	}
	return "invalid"
}

var (
	ErrParentNotFound      = errors.New("parent category not found")
	ErrParentNotMain       = errors.New("parent must be a main category")
	ErrNoParentChosen      = errors.New("choose a parent category first")
	ErrSubcategoryMismatch = errors.New("subcategory does not belong to the chosen parent")
)

// Selection walks an admin through picking a main category and then one of
// its subcategories, which becomes the parent of the new nested category.
type Selection struct {
	index       *Index
	parentID    string
	subcategory string
}

// NewSelection starts a selection against the snapshot held by idx.
func NewSelection(idx *Index) *Selection {
	return &Selection{index: idx}
}

// State reports the current step.
func (s *Selection) State() SelectionState {
	switch {
	case s.subcategory != "":
		return SubcategoryChosen
	case s.parentID != "":
		return ParentChosen
	}
	return NoParentChosen
}

// ChooseParent selects a main category. Any previously chosen subcategory is
// cleared, even when the same parent is chosen again.
func (s *Selection) ChooseParent(id string) error {
	c, ok := s.index.Lookup(id)
	if !ok {
		return ErrParentNotFound
	}
	if !c.IsRoot() {
		return ErrParentNotMain
	}
	s.parentID = id
	s.subcategory = ""
	return nil
}

// ChooseSubcategory selects one of the chosen parent's children.
func (s *Selection) ChooseSubcategory(id string) error {
	if s.parentID == "" {
		return ErrNoParentChosen
	}
	c, ok := s.index.Lookup(id)
	if !ok || c.ParentID == nil || *c.ParentID != s.parentID {
		return ErrSubcategoryMismatch
	}
	s.subcategory = id
	return nil
}

// Subcategories lists the children of the chosen parent.
func (s *Selection) Subcategories() []Category {
	if s.parentID == "" {
		return []Category{}
	}
	return s.index.Children(s.parentID)
}

// NestedCategories lists the existing children of the chosen subcategory.
func (s *Selection) NestedCategories() []Category {
	if s.subcategory == "" {
		return []Category{}
	}
	return s.index.Children(s.subcategory)
}

// TargetParentID returns the id the new category will be created under.
func (s *Selection) TargetParentID() (string, bool) {
	if s.subcategory == "" {
		return "", false
	}
	return s.subcategory, true
}

// CanSubmit reports whether a category named name can be created.
func (s *Selection) CanSubmit(name string) bool {
	_, ok := s.TargetParentID()
	return ok && strings.TrimSpace(name) != ""
}
