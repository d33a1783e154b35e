package model

import "github.com/shopspring/decimal"

// PremiumUpcharge is added once per premium entree when a cart is priced.
var PremiumUpcharge = decimal.RequireFromString("1.50")

func PremiumSurcharge(premiumEntrees int) decimal.Decimal {
	if premiumEntrees <= 0 {
		return decimal.Zero
	}
	return PremiumUpcharge.Mul(decimal.NewFromInt(int64(premiumEntrees)))
}
