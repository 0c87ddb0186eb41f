package models

// Colour is global metadata shared by every user.
type Colour struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"` // #RRGGBB
}

type ColourPatch struct {
	Name *string `json:"name"`
	Code *string `json:"code"`
}

func (p ColourPatch) Apply(c *Colour) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Code != nil {
		c.Code = *p.Code
	}
}
