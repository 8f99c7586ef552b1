package configs

// Auction configures the pricing rules of the slot auction. FloorPrice is
// the minimum allowed clearing price in integer minor currency units; the
// default is the smallest currency unit.
type Auction struct {
	FloorPrice int64 `env:"FLOOR_PRICE" envDefault:"1"`
}
