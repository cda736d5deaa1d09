package models

// Person is a whitelist entry: an owner and the car allowed through the gates.
type Person struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CarNumber string `json:"car_number"`
	CarModel  string `json:"car_model"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}
