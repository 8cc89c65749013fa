package types

// VINLength is the mandatory length of a vehicle identification number.
const VINLength = 17

// Car represents a customer vehicle.
type Car struct {
	// ID is the unique identifier of the car.
	ID int `json:"id" db:"id"`

	// UserID references the owning user.
	UserID int `json:"user_id" db:"user_id"`

	// Brand is the manufacturer name, e.g. "Toyota".
	Brand string `json:"brand" db:"brand"`

	// Model is the vehicle model name, e.g. "Corolla".
	Model string `json:"model" db:"model"`

	// Year is the model year.
	Year int `json:"year" db:"year"`

	// PlateNumber is the registration plate. Unique across all cars.
	PlateNumber string `json:"plate_number" db:"plate_number"`

	// VIN is the 17-character vehicle identification number.
	// Unique across all cars.
	VIN string `json:"vin" db:"vin"`
}

// CarPatch carries a partial update for a car. Nil fields are left untouched.
type CarPatch struct {
	UserID      *int    `json:"user_id"`
	Brand       *string `json:"brand"`
	Model       *string `json:"model"`
	Year        *int    `json:"year"`
	PlateNumber *string `json:"plate_number"`
	VIN         *string `json:"vin"`
}
