package models

import "time"

type Profile struct {
	ProviderName string `bson:"providerName" json:"providerName,omitempty"`
	Email        string `bson:"email" json:"email,omitempty"`
	PhoneNumber  string `bson:"phoneNumber" json:"phoneNumber,omitempty"`
	Status       string `bson:"status" json:"status,omitempty"`
}

// Provider is the booked party. Only the fields the scheduler reads are modelled.
type Provider struct {
	ID           string              `bson:"id" json:"id"`
	Profile      Profile             `bson:"profile" json:"profile"`
	Availability *WeeklyAvailability `bson:"availability,omitempty" json:"availability,omitempty"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt,omitzero"`
}
