package entity

// Timezone maps an airport to the IANA zone its local times are expressed in
type Timezone struct {
	ID          uint
	AirportCode string
	AirportName string
	CityName    string
	TzName      string
}
