package filter

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/carsawa/site/listing"
)

var (
	Makes = []string{
		"Audi", "BMW", "Ford", "Honda", "Hyundai", "Kia", "Land Rover", "Lexus", "Mazda",
		"Mercedes-Benz", "Mitsubishi", "Nissan", "Subaru", "Suzuki", "Toyota", "Volkswagen", "Volvo",
	}
	BodyTypes = []BodyType{
		{Type: "SUV", Label: "SUVs"},
		{Type: "Hatchback", Label: "Hatchbacks"},
		{Type: "Sedan", Label: "Saloons"},
		{Type: "Coupe", Label: "Coupes"},
		{Type: "Wagon", Label: "Estate cars"},
		{Type: "Van", Label: "People carriers"},
		{Type: "Sports", Label: "Sports cars"},
		{Type: "Convertible", Label: "Convertibles"},
		{Type: "Pickup", Label: "Pickups"},
	}
	Transmissions = []string{"Automatic", "Manual"}
	FuelTypes     = []string{"Petrol", "Diesel", "Hybrid", "Electric"}
)

// BodyType is a listing body type and the name the site shows for it.
type BodyType struct {
	Type  string
	Label string
}

// CanonicalBodyType maps a body type or its display label, in any case, to
// the type listings carry. Unknown values come back trimmed.
func CanonicalBodyType(s string) string {
	s = strings.TrimSpace(s)
	for _, bt := range BodyTypes {
		if strings.EqualFold(s, bt.Type) || strings.EqualFold(s, bt.Label) {
			return bt.Type
		}
	}
	return s
}

// Criteria is the set of filters a shopper has entered. Every field is
// optional; nil and "" mean "not filtering on this".
type Criteria struct {
	Query        string
	Budget       string
	MinPrice     *int64
	MaxPrice     *int64
	Make         string
	MinYear      *int
	MaxYear      *int
	BodyType     string
	Condition    string
	Transmission string
	FuelType     string
	Status       listing.Status

	// Invalid names the request fields that were dropped because they could not be parsed.
	Invalid []string

	budget *Range
}

// IsEmpty reports whether no criterion is set.
func (c Criteria) IsEmpty() bool {
	return c.Query == "" && c.budget == nil && c.MinPrice == nil && c.MaxPrice == nil &&
		c.Make == "" && c.MinYear == nil && c.MaxYear == nil && c.BodyType == "" &&
		c.Condition == "" && c.Transmission == "" && c.FuelType == "" && c.Status == ""
}

// SetBudget parses and stores a budget bucket. A malformed bucket leaves the
// budget unset and returns the parse error.
func (c *Criteria) SetBudget(bucket string) error {
	r, err := ParseBudget(bucket)
	if err != nil {
		c.Budget, c.budget = "", nil
		return err
	}
	c.Budget, c.budget = strings.TrimSpace(bucket), &r
	return nil
}

// BudgetRange returns the parsed budget, if any.
func (c Criteria) BudgetRange() (Range, bool) {
	if c.budget == nil {
		return Range{}, false
	}
	return *c.budget, true
}

// Equal compares the filter fields, ignoring Invalid.
func (c Criteria) Equal(o Criteria) bool {
	return c.Values().Encode() == o.Values().Encode()
}

// Matches reports whether l satisfies every set criterion.
func Matches(l listing.Listing, c Criteria) bool {
	if c.Query != "" {
		q := strings.ToLower(c.Query)
		if !containsFold(l.Make, q) && !containsFold(l.Model, q) &&
			!containsFold(l.Description, q) && !containsFold(l.Condition, q) {
			return false
		}
	}
	if c.budget != nil && !c.budget.Contains(l.Price) {
		return false
	}
	if c.MinPrice != nil && l.Price < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && l.Price > *c.MaxPrice {
		return false
	}
	if c.Make != "" && !strings.EqualFold(l.Make, c.Make) {
		return false
	}
	if c.MinYear != nil && l.Year < *c.MinYear {
		return false
	}
	if c.MaxYear != nil && l.Year > *c.MaxYear {
		return false
	}
	if c.BodyType != "" && !sameCategory(l.BodyType, c.BodyType) {
		return false
	}
	if c.Condition != "" && !containsFold(l.Condition, strings.ToLower(c.Condition)) {
		return false
	}
	if c.Transmission != "" && !strings.EqualFold(l.Transmission, c.Transmission) {
		return false
	}
	if c.FuelType != "" && !strings.EqualFold(l.FuelType, c.FuelType) {
		return false
	}
	if c.Status != "" && l.Status != c.Status {
		return false
	}
	return true
}

// Apply returns the listings matching c, in their original order.
func Apply(listings []listing.Listing, c Criteria) []listing.Listing {
	if c.IsEmpty() {
		return listings
	}
	var out []listing.Listing
	for _, l := range listings {
		if Matches(l, c) {
			out = append(out, l)
		}
	}
	return out
}

func containsFold(s, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}

// sameCategory compares body types by their canonical type, so the
// "Saloons" option matches a listing typed "Sedan".
func sameCategory(a, b string) bool {
	a = CanonicalBodyType(a)
	return a != "" && strings.EqualFold(a, CanonicalBodyType(b))
}

// Params serializes the set criteria with the remote API's parameter names.
// A budget bucket is sent as minPrice/maxPrice with maxPrice = max-1, which
// keeps the half-open range exact for integer prices.
func (c Criteria) Params() map[string]any {
	p := map[string]any{}
	if c.Query != "" {
		p["query"] = c.Query
	}
	if c.Make != "" {
		p["make"] = c.Make
	}
	if c.MinYear != nil {
		p["minYear"] = *c.MinYear
	}
	if c.MaxYear != nil {
		p["maxYear"] = *c.MaxYear
	}
	if c.budget != nil {
		p["minPrice"] = c.budget.Min
		if !c.budget.Unbounded {
			p["maxPrice"] = c.budget.Max - 1
		}
	}
	if c.MinPrice != nil {
		if cur, ok := p["minPrice"].(int64); !ok || *c.MinPrice > cur {
			p["minPrice"] = *c.MinPrice
		}
	}
	if c.MaxPrice != nil {
		if cur, ok := p["maxPrice"].(int64); !ok || *c.MaxPrice < cur {
			p["maxPrice"] = *c.MaxPrice
		}
	}
	if c.Status != "" {
		p["status"] = string(c.Status)
	}
	if c.BodyType != "" {
		p["bodyType"] = CanonicalBodyType(c.BodyType)
	}
	if c.Condition != "" {
		p["condition"] = c.Condition
	}
	if c.Transmission != "" {
		p["transmission"] = c.Transmission
	}
	if c.FuelType != "" {
		p["fuelType"] = c.FuelType
	}
	return p
}

// Request parameter names used by the site's own forms and links.
const (
	ParamQuery        = "q"
	ParamBudget       = "budget"
	ParamMinPrice     = "min_price"
	ParamMaxPrice     = "max_price"
	ParamMake         = "make"
	ParamMinYear      = "min_year"
	ParamMaxYear      = "max_year"
	ParamBodyType     = "body_type"
	ParamCondition    = "condition"
	ParamTransmission = "transmission"
	ParamFuelType     = "fuel_type"
	ParamStatus       = "status"
)

// FromValues builds Criteria from request parameters. Fields that cannot be
// parsed are left unset and listed in Invalid; they are never coerced to 0.
func FromValues(get func(key string) string) Criteria {
	var c Criteria
	c.Query = strings.TrimSpace(get(ParamQuery))
	c.Make = strings.TrimSpace(get(ParamMake))
	c.BodyType = CanonicalBodyType(get(ParamBodyType))
	c.Condition = strings.TrimSpace(get(ParamCondition))
	c.Transmission = strings.TrimSpace(get(ParamTransmission))
	c.FuelType = strings.TrimSpace(get(ParamFuelType))

	if b := strings.TrimSpace(get(ParamBudget)); b != "" {
		if err := c.SetBudget(b); err != nil {
			c.Invalid = append(c.Invalid, ParamBudget)
		}
	}
	c.MinPrice = parseAmountParam(&c, ParamMinPrice, get(ParamMinPrice))
	c.MaxPrice = parseAmountParam(&c, ParamMaxPrice, get(ParamMaxPrice))
	c.MinYear = parseYearParam(&c, ParamMinYear, get(ParamMinYear))
	c.MaxYear = parseYearParam(&c, ParamMaxYear, get(ParamMaxYear))

	if s := strings.TrimSpace(get(ParamStatus)); s != "" {
		status, err := listing.ParseStatus(s)
		if err != nil {
			c.Invalid = append(c.Invalid, ParamStatus)
		} else {
			c.Status = status
		}
	}
	return c
}

func parseAmountParam(c *Criteria, key, raw string) *int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := ParseAmount(raw)
	if err != nil {
		c.Invalid = append(c.Invalid, key)
		return nil
	}
	return &v
}

func parseYearParam(c *Criteria, key, raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1886 || v > 2100 {
		c.Invalid = append(c.Invalid, key)
		return nil
	}
	return &v
}

// Values is the inverse of FromValues, used to build pagination links.
func (c Criteria) Values() url.Values {
	v := url.Values{}
	set := func(k, s string) {
		if s != "" {
			v.Set(k, s)
		}
	}
	set(ParamQuery, c.Query)
	set(ParamBudget, c.Budget)
	set(ParamMake, c.Make)
	set(ParamBodyType, c.BodyType)
	set(ParamCondition, c.Condition)
	set(ParamTransmission, c.Transmission)
	set(ParamFuelType, c.FuelType)
	set(ParamStatus, string(c.Status))
	if c.MinPrice != nil {
		v.Set(ParamMinPrice, strconv.FormatInt(*c.MinPrice, 10))
	}
	if c.MaxPrice != nil {
		v.Set(ParamMaxPrice, strconv.FormatInt(*c.MaxPrice, 10))
	}
	if c.MinYear != nil {
		v.Set(ParamMinYear, strconv.Itoa(*c.MinYear))
	}
	if c.MaxYear != nil {
		v.Set(ParamMaxYear, strconv.Itoa(*c.MaxYear))
	}
	return v
}
