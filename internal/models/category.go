package models

// Category is the top level of a user's hierarchy.
type Category struct {
	ID          int    `json:"id"`
	UserID      int    `json:"-"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ColourID    *int   `json:"colour,omitempty"`
}

// Subcategory always belongs to exactly one category of the same user.
type Subcategory struct {
	ID          int    `json:"id"`
	UserID      int    `json:"-"`
	CategoryID  int    `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ColourID    *int   `json:"colour,omitempty"`
}

// GroupPatch is the partial update shared by categories, subcategories and labels.
type GroupPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ColourID    *int    `json:"colour"`
}

func (p GroupPatch) ApplyCategory(c *Category) {
	p.apply(&c.Name, &c.Description, &c.ColourID)
}

func (p GroupPatch) ApplySubcategory(s *Subcategory) {
	p.apply(&s.Name, &s.Description, &s.ColourID)
}

func (p GroupPatch) ApplyLabel(l *Label) {
	p.apply(&l.Name, &l.Description, &l.ColourID)
}

func (p GroupPatch) apply(name, description *string, colour **int) {
	if p.Name != nil {
		*name = *p.Name
	}
	if p.Description != nil {
		*description = *p.Description
	}
	if p.ColourID != nil {
		v := *p.ColourID
		*colour = &v
	}
}
