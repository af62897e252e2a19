package models

// Service is an offering of a provider with a fixed duration.
type Service struct {
	ID              string  `bson:"id" json:"id"`
	ProviderID      string  `bson:"providerId" json:"providerId"`
	Name            string  `bson:"name" json:"name"`
	DurationMinutes int     `bson:"durationMinutes" json:"durationMinutes"`
	Price           float64 `bson:"price" json:"price"`
	Currency        string  `bson:"currency" json:"currency"`
	Active          bool    `bson:"active" json:"active"`
}
