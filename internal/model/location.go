package model

// Location is a user-defined storage area that items are assigned to.
type Location struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Icon string `json:"icon"`
}

// Location types.
const (
	LocationTypeRoom    = "room"
	LocationTypeStorage = "storage"
)

// Defaults for locations created from the name prompt.
const (
	DefaultLocationType = LocationTypeRoom
	DefaultLocationIcon = "home"
)

// UnknownLocationName is shown for items whose location does not exist.
const UnknownLocationName = "未知位置"

// ValidLocationType reports whether t is a known location type.
func ValidLocationType(t string) bool {
	return t == LocationTypeRoom || t == LocationTypeStorage
}
