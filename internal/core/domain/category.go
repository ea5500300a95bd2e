package domain

import "slices"

// A Completeness tells how much of a category has been fetched.
type Completeness int

const (
	CompletenessNone Completeness = iota
	CompletenessPartial
	CompletenessFull
)

func (c Completeness) String() string {
	switch c {
	case CompletenessPartial:
		return "partial"
	case CompletenessFull:
		return "full"
	}
	return "none"
}

type (
	Category struct {
		UniqueID          string
		Name              string
		Description       string
		CategoryPath      []string
		HasOnlineProducts bool
		Completeness      Completeness
	}

	// A CategoryTree holds categories keyed by unique id.
	//
	// Edges map a parent id to its ordered child ids. RootIDs lists the top
	// level categories in order.
	CategoryTree struct {
		Nodes   map[string]Category
		RootIDs []string
		Edges   map[string][]string
	}

	// A CategoryView is a resolved tree node.
	CategoryView struct {
		Category
		ChildIDs []string
		tree     CategoryTree
	}
)

// ParentID returns the unique id of the parent category, if any.
func (c Category) ParentID() (string, bool) {
	if len(c.CategoryPath) < 2 {
		return "", false
	}
	return c.CategoryPath[len(c.CategoryPath)-2], true
}

func (c Category) IsComplete() bool {
	return c.Completeness == CompletenessFull
}

// NewCategoryTree builds a tree out of categories. Parent relations are
// derived from the category path. Later categories with the same id are
// merged monotonically.
func NewCategoryTree(categories ...Category) CategoryTree {
	t := CategoryTree{
		Nodes: make(map[string]Category, len(categories)),
		Edges: make(map[string][]string),
	}
	for _, c := range categories {
		t.add(c)
	}
	return t
}

func (t *CategoryTree) add(c Category) {
	if existing, ok := t.Nodes[c.UniqueID]; ok && existing.Completeness > c.Completeness {
		return
	}
	t.Nodes[c.UniqueID] = c

	parent, ok := c.ParentID()
	if !ok {
		t.RootIDs = appendUnique(t.RootIDs, c.UniqueID)
		return
	}
	t.Edges[parent] = appendUnique(t.Edges[parent], c.UniqueID)
}

// Merge returns a new tree with the nodes of both trees. A node never loses
// completeness: when both trees hold the same id the more complete node wins,
// ties go to other. The receiver and other are left untouched.
func (t CategoryTree) Merge(other CategoryTree) CategoryTree {
	merged := CategoryTree{
		Nodes:   make(map[string]Category, len(t.Nodes)+len(other.Nodes)),
		RootIDs: slices.Clone(t.RootIDs),
		Edges:   make(map[string][]string, len(t.Edges)+len(other.Edges)),
	}
	for id, c := range t.Nodes {
		merged.Nodes[id] = c
	}
	for parent, children := range t.Edges {
		merged.Edges[parent] = slices.Clone(children)
	}

	for id, c := range other.Nodes {
		if existing, ok := merged.Nodes[id]; ok && existing.Completeness > c.Completeness {
			continue
		}
		merged.Nodes[id] = c
	}
	for _, id := range other.RootIDs {
		merged.RootIDs = appendUnique(merged.RootIDs, id)
	}
	for parent, children := range other.Edges {
		for _, child := range children {
			merged.Edges[parent] = appendUnique(merged.Edges[parent], child)
		}
	}
	return merged
}

func (t CategoryTree) Has(id string) bool {
	_, ok := t.Nodes[id]
	return ok
}

func (t CategoryTree) IDs() []string {
	ids := make([]string, 0, len(t.Nodes))
	for id := range t.Nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// View resolves a category. It returns nil for unknown ids.
func (t CategoryTree) View(id string) *CategoryView {
	c, ok := t.Nodes[id]
	if !ok {
		return nil
	}
	return &CategoryView{
		Category: c,
		ChildIDs: slices.Clone(t.Edges[id]),
		tree:     t,
	}
}

// TopLevel returns the views of the root categories.
func (t CategoryTree) TopLevel() []*CategoryView {
	views := make([]*CategoryView, 0, len(t.RootIDs))
	for _, id := range t.RootIDs {
		if v := t.View(id); v != nil {
			views = append(views, v)
		}
	}
	return views
}

func (v *CategoryView) HasChildren() bool {
	return len(v.ChildIDs) != 0
}

func (v *CategoryView) Children() []*CategoryView {
	views := make([]*CategoryView, 0, len(v.ChildIDs))
	for _, id := range v.ChildIDs {
		if child := v.tree.View(id); child != nil {
			views = append(views, child)
		}
	}
	return views
}

// PathCategories returns the loaded categories along the category path,
// from the root down to the category itself.
func (v *CategoryView) PathCategories() []Category {
	path := make([]Category, 0, len(v.CategoryPath))
	for _, id := range v.CategoryPath {
		if c, ok := v.tree.Nodes[id]; ok {
			path = append(path, c)
		}
	}
	return path
}

func appendUnique(ids []string, id string) []string {
	if slices.Contains(ids, id) {
		return ids
	}
	return append(ids, id)
}
