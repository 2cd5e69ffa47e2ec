package domain

// Company headquarters: origin for morning sorting and afternoon starting point.
// Constant for the duration of an optimization run.
type HomeBase struct {
	Location Coordinates
	Address  string
}
