package entity

type Theater struct {
	ID   string  `db:"id" yaml:"id"`
	Name string  `db:"name" yaml:"name"`
	Area string  `db:"area" yaml:"area"`
	X    float64 `db:"x" yaml:"x"`
	Y    float64 `db:"y" yaml:"y"`

	// Seat grid of the screen; zero means the configured default.
	SeatRows int `db:"seat_rows" yaml:"seat_rows"`
	SeatCols int `db:"seat_cols" yaml:"seat_cols"`
}
