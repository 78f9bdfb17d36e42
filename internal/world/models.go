package world

// Anomaly is a salvageable object placed on the map at generation time.
type Anomaly struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Value     int    `json:"value"`
	Risk      int    `json:"risk"`
	Collected bool   `json:"collected"`
}

// At reports whether the anomaly sits on tile (x, y).
func (a Anomaly) At(x, y int) bool {
	return a.X == x && a.Y == y
}

// Station is a fixed trade location.
type Station struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// At reports whether the station sits on tile (x, y).
func (s Station) At(x, y int) bool {
	return s.X == x && s.Y == y
}

// Layout is everything the generator places for one session.
type Layout struct {
	Anomalies []Anomaly
	Stations  []Station
}

// Offer is one purchasable effect in the station catalog.
type Offer struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Price int    `json:"price"`
}
