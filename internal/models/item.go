package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/lifestock/internal/constants"
)

type ItemKind = constants.ItemKind

const (
	ItemKindStock = constants.ItemKindStock
	ItemKindCard  = constants.ItemKindCard
	ItemKindPhone = constants.ItemKindPhone
)

// Item is a tracked household thing (stock, membership card, phone line) that owns reminders.
type Item struct {
	ID         string      `json:"id"`
	Kind       ItemKind    `json:"kind"`
	Name       string      `json:"name"`
	Icon       string      `json:"icon,omitempty"`
	Notes      string      `json:"notes,omitempty"`
	ExpiryDate *time.Time  `json:"expiry_date,omitempty"`
	Details    ItemDetails `json:"details"`
	Archived   bool        `json:"archived"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// ItemDetails holds the fields that belong to a single item kind. Fields of
// the other kinds must stay empty.
type ItemDetails struct {
	// stock
	Quantity    *float64 `json:"quantity,omitempty"`
	Unit        string   `json:"unit,omitempty"`
	MinQuantity *float64 `json:"min_quantity,omitempty"`
	Location    string   `json:"location,omitempty"`

	// card
	Balance        *float64 `json:"balance,omitempty"`
	TotalTimes     *int     `json:"total_times,omitempty"`
	RemainingTimes *int     `json:"remaining_times,omitempty"`
	MerchantName   string   `json:"merchant_name,omitempty"`
	MerchantPhone  string   `json:"merchant_phone,omitempty"`

	// phone
	PhoneNumber    string     `json:"phone_number,omitempty"`
	Carrier        string     `json:"carrier,omitempty"`
	MonthlyFee     *float64   `json:"monthly_fee,omitempty"`
	BillingDay     int        `json:"billing_day,omitempty"` // day of month, 1-31
	LastActiveDate *time.Time `json:"last_active_date,omitempty"`
}

func (d ItemDetails) hasStock() bool {
	return d.Quantity != nil || d.Unit != "" || d.MinQuantity != nil || d.Location != ""
}

func (d ItemDetails) hasCard() bool {
	return d.Balance != nil || d.TotalTimes != nil || d.RemainingTimes != nil ||
		d.MerchantName != "" || d.MerchantPhone != ""
}

func (d ItemDetails) hasPhone() bool {
	return d.PhoneNumber != "" || d.Carrier != "" || d.MonthlyFee != nil ||
		d.BillingDay != 0 || d.LastActiveDate != nil
}

// searchText is the free text of the details, without field names.
func (d ItemDetails) searchText() []string {
	return []string{d.Unit, d.Location, d.MerchantName, d.MerchantPhone, d.PhoneNumber, d.Carrier}
}

func (i *Item) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("item id cannot be empty")
	}
	if i.Name == "" {
		return fmt.Errorf("item name cannot be empty")
	}
	switch i.Kind {
	case ItemKindStock, ItemKindCard, ItemKindPhone:
	default:
		return fmt.Errorf("invalid item kind: %q (must be stock, card, or phone)", i.Kind)
	}
	return i.validateDetails()
}

func (i *Item) validateDetails() error {
	d := i.Details
	if i.Kind != ItemKindStock && d.hasStock() {
		return fmt.Errorf("quantity, unit and location only apply to stock items")
	}
	if i.Kind != ItemKindCard && d.hasCard() {
		return fmt.Errorf("balance, usage counts and merchant only apply to card items")
	}
	if i.Kind != ItemKindPhone && d.hasPhone() {
		return fmt.Errorf("phone number, carrier and billing only apply to phone items")
	}

	if d.Quantity != nil && *d.Quantity < 0 {
		return fmt.Errorf("quantity cannot be negative")
	}
	if d.MinQuantity != nil && *d.MinQuantity < 0 {
		return fmt.Errorf("minimum quantity cannot be negative")
	}
	if d.TotalTimes != nil && *d.TotalTimes < 0 {
		return fmt.Errorf("total times cannot be negative")
	}
	if d.RemainingTimes != nil {
		if *d.RemainingTimes < 0 {
			return fmt.Errorf("remaining times cannot be negative")
		}
		if d.TotalTimes != nil && *d.RemainingTimes > *d.TotalTimes {
			return fmt.Errorf("remaining times (%d) exceed total times (%d)", *d.RemainingTimes, *d.TotalTimes)
		}
	}
	if d.MonthlyFee != nil && *d.MonthlyFee < 0 {
		return fmt.Errorf("monthly fee cannot be negative")
	}
	if d.BillingDay < 0 || d.BillingDay > 31 {
		return fmt.Errorf("billing day must be between 1 and 31")
	}
	return nil
}

// IsLowStock reports whether a stock item is at or below its minimum quantity.
func (i *Item) IsLowStock() bool {
	d := i.Details
	return i.Kind == ItemKindStock && d.Quantity != nil && d.MinQuantity != nil && *d.Quantity <= *d.MinQuantity
}

// Matches reports whether query occurs, ignoring case, in the name, the notes
// or any free-text detail.
func (i *Item) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}
	fields := append([]string{i.Name, i.Notes}, i.Details.searchText()...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
