package items

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/lifestock/internal/cli"
	"github.com/julianstephens/lifestock/internal/models"
)

// DetailFlags are the kind-specific item fields shared by add and edit.
// An empty string clears a text field.
type DetailFlags struct {
	Quantity    *float64 `help:"Amount on hand." group:"Stock"`
	Unit        *string  `help:"Unit of the quantity (kg, rolls, bottles)." group:"Stock"`
	MinQuantity *float64 `help:"Quantity at which the item counts as low." group:"Stock"`
	Location    *string  `help:"Where the item is kept." group:"Stock"`

	Balance        *float64 `help:"Stored value left on the card." group:"Card"`
	TotalTimes     *int     `help:"Uses the card was bought with." group:"Card"`
	RemainingTimes *int     `help:"Uses left on the card." group:"Card"`
	Merchant       *string  `help:"Merchant name." group:"Card"`
	MerchantPhone  *string  `help:"Merchant phone number." group:"Card"`

	PhoneNumber *string  `help:"Phone number of the line." group:"Phone"`
	Carrier     *string  `help:"Carrier name." group:"Phone"`
	MonthlyFee  *float64 `help:"Monthly fee." group:"Phone"`
	BillingDay  *int     `help:"Day of month the fee is charged (1-31)." group:"Phone"`
	LastActive  *string  `help:"Date the line was last used; an empty value clears it." group:"Phone"`
}

func (f *DetailFlags) apply(ctx *cli.Context, d *models.ItemDetails) error {
	if f.Quantity != nil {
		d.Quantity = f.Quantity
	}
	if f.Unit != nil {
		d.Unit = *f.Unit
	}
	if f.MinQuantity != nil {
		d.MinQuantity = f.MinQuantity
	}
	if f.Location != nil {
		d.Location = *f.Location
	}
	if f.Balance != nil {
		d.Balance = f.Balance
	}
	if f.TotalTimes != nil {
		d.TotalTimes = f.TotalTimes
	}
	if f.RemainingTimes != nil {
		d.RemainingTimes = f.RemainingTimes
	}
	if f.Merchant != nil {
		d.MerchantName = *f.Merchant
	}
	if f.MerchantPhone != nil {
		d.MerchantPhone = *f.MerchantPhone
	}
	if f.PhoneNumber != nil {
		d.PhoneNumber = *f.PhoneNumber
	}
	if f.Carrier != nil {
		d.Carrier = *f.Carrier
	}
	if f.MonthlyFee != nil {
		d.MonthlyFee = f.MonthlyFee
	}
	if f.BillingDay != nil {
		d.BillingDay = *f.BillingDay
	}
	if f.LastActive != nil {
		if *f.LastActive == "" {
			d.LastActiveDate = nil
		} else {
			t, err := ctx.ParseInstant(*f.LastActive)
			if err != nil {
				return fmt.Errorf("invalid --last-active: %w", err)
			}
			d.LastActiveDate = &t
		}
	}
	return nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// detailLines renders the details that are set, one "Label: value" per line.
func detailLines(ctx *cli.Context, item models.Item) []string {
	d := item.Details
	var lines []string
	add := func(label, value string) {
		lines = append(lines, label+": "+value)
	}

	if d.Quantity != nil {
		qty := formatAmount(*d.Quantity)
		if d.Unit != "" {
			qty += " " + d.Unit
		}
		if d.MinQuantity != nil {
			qty += fmt.Sprintf(" (min %s)", formatAmount(*d.MinQuantity))
		}
		if item.IsLowStock() {
			qty += " - low"
		}
		add("Quantity", qty)
	}
	if d.Location != "" {
		add("Location", d.Location)
	}

	if d.Balance != nil {
		add("Balance", fmt.Sprintf("%.2f", *d.Balance))
	}
	switch {
	case d.RemainingTimes != nil && d.TotalTimes != nil:
		add("Uses left", fmt.Sprintf("%d of %d", *d.RemainingTimes, *d.TotalTimes))
	case d.RemainingTimes != nil:
		add("Uses left", strconv.Itoa(*d.RemainingTimes))
	case d.TotalTimes != nil:
		add("Total uses", strconv.Itoa(*d.TotalTimes))
	}
	if d.MerchantName != "" || d.MerchantPhone != "" {
		merchant := d.MerchantName
		if d.MerchantPhone != "" {
			if merchant == "" {
				merchant = d.MerchantPhone
			} else {
				merchant += " (" + d.MerchantPhone + ")"
			}
		}
		add("Merchant", merchant)
	}

	if d.PhoneNumber != "" {
		add("Number", d.PhoneNumber)
	}
	if d.Carrier != "" {
		add("Carrier", d.Carrier)
	}
	if d.MonthlyFee != nil {
		add("Monthly fee", fmt.Sprintf("%.2f", *d.MonthlyFee))
	}
	if d.BillingDay != 0 {
		add("Billing day", strconv.Itoa(d.BillingDay))
	}
	if d.LastActiveDate != nil {
		add("Last active", ctx.Scheduler.DateOf(*d.LastActiveDate).String())
	}
	return lines
}
