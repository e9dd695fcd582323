package components

// Sex distinguishes mate-matching roles (§4.10: females seek the
// closest eligible male).
type Sex uint8

const (
	Female Sex = iota
	Male
)
