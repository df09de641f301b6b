package model

// Item is a catalogued possession.
type Item struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	LocationID   string   `json:"location_id"`
	Description  string   `json:"description"`
	Quantity     int      `json:"quantity"`
	Image        string   `json:"image,omitempty"`
	Tags         []string `json:"tags"`
	PurchaseDate string   `json:"purchase_date,omitempty"`
	ExpiryDate   string   `json:"expiry_date,omitempty"`
}

// NewItem carries every item field except the ID. It is the input of the
// add-item flow, filled by hand or pre-filled from an image analysis.
type NewItem struct {
	Name         string   `json:"name" validate:"required,max=200"`
	Category     string   `json:"category" validate:"required,max=100"`
	LocationID   string   `json:"location_id" validate:"max=64"`
	Description  string   `json:"description" validate:"max=2000"`
	Quantity     int      `json:"quantity" validate:"required,min=1"`
	Image        string   `json:"image,omitempty"`
	Tags         []string `json:"tags" validate:"dive,max=50"`
	PurchaseDate string   `json:"purchase_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ExpiryDate   string   `json:"expiry_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// Analysis is the structured record extracted from an item photo.
type Analysis struct {
	Name                 string   `json:"name"`
	Category             string   `json:"category"`
	Description          string   `json:"description"`
	Tags                 []string `json:"tags"`
	SuggestedStorageType string   `json:"suggestedStorageType"`
}
