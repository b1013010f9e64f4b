package request

// DateLayout is the wire format for rental dates. Periods are day-granular,
// half-open: the end date is the day the car comes back, not a rented day.
const DateLayout = "2006-01-02"

type LocationRequest struct {
	Address string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	ZipCode string `json:"zip_code" validate:"required"`
}

type ExtraRequest struct {
	Name   string  `json:"name" validate:"required,max=100"`
	Amount float64 `json:"amount" validate:"min=0"`
}

type DriverLicenseRequest struct {
	Number     string `json:"number" validate:"required,max=50"`
	ExpiryDate string `json:"expiry_date" validate:"required,datetime=2006-01-02"`
}

type CreateBookingRequest struct {
	CarID         string               `json:"car_id" validate:"required,uuid4"`
	StartDate     string               `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate       string               `json:"end_date" validate:"required,datetime=2006-01-02"`
	Extras        []ExtraRequest       `json:"extras" validate:"omitempty,dive"`
	Pickup        LocationRequest      `json:"pickup_location" validate:"required"`
	Dropoff       LocationRequest      `json:"dropoff_location" validate:"required"`
	DriverLicense DriverLicenseRequest `json:"driver_license" validate:"required"`
	Notes         string               `json:"notes" validate:"max=500"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"required,max=255"`
}

// PaymentCallbackRequest is what the payment collaborator posts back for a
// booking it processed.
type PaymentCallbackRequest struct {
	BookingID  string  `json:"booking_id" validate:"required,uuid4"`
	Outcome    string  `json:"outcome" validate:"required,oneof=success failure"`
	PaymentRef *string `json:"payment_ref,omitempty"`
}
