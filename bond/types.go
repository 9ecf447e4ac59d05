package bond

import "time"

// Cashflow is a single dated cash payment of a bond.
//
// Amounts are in the bond's currency units; coupon and principal are kept
// separate so redemption flows stay identifiable.
type Cashflow struct {
	Date      time.Time
	Coupon    float64
	Principal float64
}

func (c Cashflow) Amount() float64 {
	return c.Coupon + c.Principal
}
