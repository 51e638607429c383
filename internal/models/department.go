package models

type Department struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Prefix        string   `json:"prefix"`
	Description   string   `json:"description,omitempty"`
	SubCategories []string `json:"sub_categories,omitempty"`
}

func (d Department) Clone() Department {
	if d.SubCategories != nil {
		d.SubCategories = append([]string(nil), d.SubCategories...)
	}
	return d
}
