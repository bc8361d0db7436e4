package model

type Shirt struct {
	ShirtId int      `json:"shirtId"`
	Brand   string   `json:"brand"`
	Color   string   `json:"color"`
	Size    *int     `json:"size,omitempty"`
	Gender  string   `json:"gender"`
	Price   *float64 `json:"price,omitempty"`
}
