package domain

// Side is which half of the draft a team occupies.
type Side string

const (
	SideBlue Side = "blue"
	SideRed  Side = "red"
)
