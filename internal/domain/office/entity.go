package office

type Office struct {
	ID        string
	Name      string
	Latitude  float64
	Longitude float64
}
