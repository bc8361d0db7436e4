package sql

type Shirt struct {
	ID     int
	Brand  string
	Color  string
	Size   *int
	Gender string
	Price  *float64
}
