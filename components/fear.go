package components

// FearState tracks how threatened an entity currently feels.
type FearState struct {
	Level           float32 // [0,1]
	NearbyPredators int32
}
