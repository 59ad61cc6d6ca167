package listing

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Status is the sale state of a listing.
type Status string

const (
	StatusAvailable Status = "available"
	StatusSold      Status = "sold"
)

var ErrUnknownStatus = errors.New("unknown listing status")

// ParseStatus accepts any casing of the known statuses. An empty string means available.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "available":
		return StatusAvailable, nil
	case "sold":
		return StatusSold, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}

// Label returns the display form shown on badges.
func (s Status) Label() string {
	if s == StatusSold {
		return "Sold"
	}
	return "Available"
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Dealer is the seller referenced by listings.
type Dealer struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Location       string `json:"location,omitempty"`
	WhatsAppNumber string `json:"whatsappNumber,omitempty"`
	ProfileImage   string `json:"profileImage,omitempty"`
	Verified       bool   `json:"verified,omitempty"`
}

// Listing is a single vehicle offered for sale. It refers to its dealer by
// DealerID; Dealer is only a display copy and may be nil.
type Listing struct {
	ID           string   `json:"id"`
	Make         string   `json:"make"`
	Model        string   `json:"model"`
	Year         int      `json:"year"`
	Price        int64    `json:"price"`
	Mileage      int      `json:"mileage,omitempty"`
	Transmission string   `json:"transmission,omitempty"`
	FuelType     string   `json:"fuelType,omitempty"`
	EngineSize   string   `json:"engineSize,omitempty"`
	BodyType     string   `json:"bodyType,omitempty"`
	Condition    string   `json:"condition,omitempty"`
	Color        string   `json:"color,omitempty"`
	Description  string   `json:"description,omitempty"`
	ImageURL     string   `json:"imageUrl,omitempty"`
	Images       []string `json:"images,omitempty"`
	Features     []string `json:"features,omitempty"`
	Status       Status   `json:"status"`
	DealerID     string   `json:"dealerId,omitempty"`
	Dealer       *Dealer  `json:"dealer,omitempty"`
}

func (l *Listing) UnmarshalJSON(b []byte) error {
	type plain Listing
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	if p.Status == "" {
		p.Status = StatusAvailable
	}
	if p.DealerID == "" && p.Dealer != nil {
		p.DealerID = p.Dealer.ID
	}
	*l = Listing(p)
	return nil
}

var (
	ErrMissingID     = errors.New("listing id is required")
	ErrNegativePrice = errors.New("price must not be negative")
	ErrInvalidYear   = errors.New("year is out of range")
)

// Validate checks the invariants every listing must hold.
func (l Listing) Validate() error {
	if l.ID == "" {
		return ErrMissingID
	}
	if l.Price < 0 {
		return fmt.Errorf("listing %s: %w", l.ID, ErrNegativePrice)
	}
	if l.Year != 0 && (l.Year < 1886 || l.Year > 2100) {
		return fmt.Errorf("listing %s: %w: %d", l.ID, ErrInvalidYear, l.Year)
	}
	if _, err := ParseStatus(string(l.Status)); err != nil {
		return fmt.Errorf("listing %s: %w", l.ID, err)
	}
	return nil
}

// Name is "Make Model".
func (l Listing) Name() string {
	return strings.TrimSpace(l.Make + " " + l.Model)
}

// Title is "Year Make Model".
func (l Listing) Title() string {
	if l.Year == 0 {
		return l.Name()
	}
	return fmt.Sprintf("%d %s", l.Year, l.Name())
}

func (l Listing) IsAvailable() bool {
	return l.Status != StatusSold
}

// CoverImage returns the main image, falling back to the first gallery image.
func (l Listing) CoverImage() string {
	if l.ImageURL != "" {
		return l.ImageURL
	}
	if len(l.Images) > 0 {
		return l.Images[0]
	}
	return ""
}

// Gallery returns every image once, cover first.
func (l Listing) Gallery() []string {
	seen := map[string]bool{}
	var out []string
	for _, img := range append([]string{l.ImageURL}, l.Images...) {
		if img == "" || seen[img] {
			continue
		}
		seen[img] = true
		out = append(out, img)
	}
	return out
}

// Specs joins the non-empty short specs with a bullet.
func (l Listing) Specs() string {
	var parts []string
	for _, s := range []string{l.Transmission, l.FuelType, l.EngineSize} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " • ")
}

// WhatsAppURL builds a wa.me enquiry link, or "" when the dealer has no number.
func (d Dealer) WhatsAppURL(text string) string {
	number := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, d.WhatsAppNumber)
	if number == "" {
		return ""
	}
	u := "https://wa.me/" + number
	if text != "" {
		u += "?text=" + url.QueryEscape(text)
	}
	return u
}

// Page is one page of a paginated result set.
type Page[T any] struct {
	Items      []T
	Total      int
	Page       int
	TotalPages int
}
