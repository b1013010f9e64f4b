package entity

type CarStatus string

const (
	CarStatusAvailable    CarStatus = "available"
	CarStatusRented       CarStatus = "rented"
	CarStatusMaintenance  CarStatus = "maintenance"
	CarStatusOutOfService CarStatus = "out_of_service"
)

// Car is the read model the booking core needs from the catalog: existence,
// the daily rate captured at booking time, and whether the car can be rented
// at all. Catalog management lives in another service.
type Car struct {
	Base
	Make         string    `db:"make"`
	Model        string    `db:"model"`
	Year         int       `db:"year"`
	LicensePlate string    `db:"license_plate"`
	PricePerDay  float64   `db:"price_per_day"`
	Status       CarStatus `db:"status"`
}

func (c *Car) Bookable() bool {
	return c.Status == CarStatusAvailable
}
