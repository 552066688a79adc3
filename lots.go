package extracto

import "github.com/etnz/extracto/date"

// PurchaseLot is what remains of a single purchase of an instrument.
type PurchaseLot struct {
	Date       date.Date
	Remaining  Quantity
	UnitCost   Money // price per unit, commission excluded
	Commission Money // buy-side commission paid for the whole lot
	// CommissionCharged is set once a sale has absorbed the buy-side
	// commission.
	CommissionCharged bool
}

// lotMatch is the part of a lot consumed by a sale.
type lotMatch struct {
	Lot      PurchaseLot // lot as it was before the sale
	Quantity Quantity
	// ChargeCommission is true for the first sale touching the lot.
	ChargeCommission bool
}

// lots is a FIFO queue of purchase lots, oldest first.
type lots []PurchaseLot

// sell consumes quantityToSell from the oldest lots first.
//
// It returns the consumed portions, the lots left afterwards, and the
// quantity that could not be matched because the queue ran out.
func (l lots) sell(quantityToSell Quantity) (matched []lotMatch, remaining lots, unmatched Quantity) {
	for _, current := range l {
		if quantityToSell.IsNegligible() {
			remaining = append(remaining, current)
			continue
		}
		take := MinQ(current.Remaining, quantityToSell)
		matched = append(matched, lotMatch{
			Lot:              current,
			Quantity:         take,
			ChargeCommission: !current.CommissionCharged,
		})
		quantityToSell = quantityToSell.Sub(take)

		current.Remaining = current.Remaining.Sub(take)
		current.CommissionCharged = true
		if !current.Remaining.IsNegligible() {
			remaining = append(remaining, current)
		}
	}
	if quantityToSell.IsNegligible() {
		quantityToSell = Q(0)
	}
	return matched, remaining, quantityToSell
}

// quantity returns the total quantity held in the lots.
func (l lots) quantity() Quantity {
	var q Quantity
	for _, current := range l {
		q = q.Add(current.Remaining)
	}
	return q
}

// cost returns the total cost of the remaining quantity.
func (l lots) cost() Money {
	var c Money
	for _, current := range l {
		c = c.Add(current.UnitCost.Mul(current.Remaining))
	}
	return c
}
