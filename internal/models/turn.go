package models

// Direction is the classification of a local heading change
type Direction string

// Direction constants
const (
	DirectionLeft     Direction = "left"
	DirectionRight    Direction = "right"
	DirectionStraight Direction = "straight"
)

// TurnEvent represents a classified turn at the middle sample of a 3-point window
type TurnEvent struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Direction Direction `json:"direction"`
	DeltaDeg  float64   `json:"deltaDeg"` // signed bearing change, negative = left
}
