package ui

import (
	"github.com/dustin/go-humanize"

	"github.com/carsawa/site/listing"
)

// Price renders an amount in Kenyan shillings, e.g. "KES 15,000,000".
func Price(amount int64) string {
	return "KES " + humanize.Comma(amount)
}

// Mileage renders an odometer reading, or "" when unknown.
func Mileage(km int) string {
	if km <= 0 {
		return ""
	}
	return humanize.Comma(int64(km)) + " km"
}

func enquiryText(l listing.Listing) string {
	return "Hi, I'm interested in the " + l.Title() + " listed for " + Price(l.Price) + "."
}
