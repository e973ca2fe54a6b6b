package models

// Location represents a geographical point with latitude and longitude coordinates.
type Location struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}
