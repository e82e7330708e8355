package entity

// Airline is the reference record used to name a leg's carrier
type Airline struct {
	ID   uint
	Code string
	Name string
}
