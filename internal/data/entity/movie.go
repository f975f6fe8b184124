package entity

type Movie struct {
	ID     string  `db:"id" yaml:"id"`
	Title  string  `db:"title" yaml:"title"`
	Rating float64 `db:"rating" yaml:"rating"`
	Rated  string  `db:"rated" yaml:"rated"` // G, PG-13, ...
}
