package domain

import (
	"fmt"
	"strings"

	"github.com/estatedesk/backoffice/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Project identifies one of the two developments. Each project has its own
// property table and a disjoint field set.
type Project string

const (
	ProjectLivingWater Project = "LivingWater"
	ProjectHavahills   Project = "Havahills"
)

// DisplayName returns the project name as it appears to operators.
func (p Project) DisplayName() string {
	switch p {
	case ProjectLivingWater:
		return "Living Water Subdivision"
	case ProjectHavahills:
		return "Havahills Estate"
	}
	return string(p)
}

// ParseProject resolves a project from its identifier or display name.
func ParseProject(s string) (Project, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "livingwater", "living water subdivision", "living-water":
		return ProjectLivingWater, nil
	case "havahills", "havahills estate":
		return ProjectHavahills, nil
	}
	return "", fmt.Errorf("%w: unknown project %q", apperrors.ErrValidation, s)
}

// PropertyStatus is the lifecycle state of a lot.
type PropertyStatus string

const (
	StatusAvailable PropertyStatus = "Available"
	StatusReserved  PropertyStatus = "Reserved"
	StatusSold      PropertyStatus = "Sold"
)

// Equals compares statuses case-insensitively, matching how the legacy sheets
// stored the value ("available", "AVAILABLE", ...).
func (s PropertyStatus) Equals(other PropertyStatus) bool {
	return strings.EqualFold(string(s), string(other))
}

// PropertyKey is the composite key identifying a lot within a project.
type PropertyKey struct {
	Block string `json:"block"`
	Lot   string `json:"lot"`
}

func (k PropertyKey) String() string {
	return "Block " + k.Block + " Lot " + k.Lot
}

// Property is the capability interface shared by the two project variants.
// The deal wizard and the reservation committer operate on it without caring
// which project the lot belongs to.
type Property interface {
	Project() Project
	Key() PropertyKey
	Status() PropertyStatus
	SetStatus(PropertyStatus)
	// BuyerName returns the buyer/owner display name; the underlying field
	// name differs by project ("Owner" vs "Buyers Name").
	BuyerName() string
	// Field returns the value of a named field, false if the project's schema
	// has no such field.
	Field(name string) (string, bool)
	// FieldNames lists the project schema's display field names, in sheet order.
	FieldNames() []string
	// SetField sets a named field from its string form. Unknown field names
	// and unparseable values return an error wrapping apperrors.ErrValidation.
	SetField(name, value string) error
	// ClearBuyerFields blanks every buyer-identifying and reservation-metadata
	// field defined for the project's schema.
	ClearBuyerFields()
	// Clone returns a deep value copy, detached from any live query result.
	Clone() Property
}

// ApplyEdits overlays accumulated wizard edits onto a property. The first
// invalid field aborts the overlay.
func ApplyEdits(p Property, edits map[string]string) error {
	for name, value := range edits {
		if err := p.SetField(name, value); err != nil {
			return err
		}
	}
	return nil
}

func parseMoney(field, value string) (decimal.Decimal, error) {
	if strings.TrimSpace(value) == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(value, ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s must be a number, got %q", apperrors.ErrValidation, field, value)
	}
	return d, nil
}

// LivingWaterProperty is a lot in the Living Water Subdivision table.
type LivingWaterProperty struct {
	Block               string
	Lot                 string
	LotArea             decimal.Decimal // sqm
	PricePerSQM         decimal.Decimal
	TCP                 decimal.Decimal // total contract price
	Term                string
	MonthlyAmortization decimal.Decimal
	Owner               string
	Broker              string
	Realty              string
	ReservationDate     string
	DueDate             string
	DateOfSale          string
	LotStatus           PropertyStatus
}

var _ Property = (*LivingWaterProperty)(nil)

func (p *LivingWaterProperty) Project() Project              { return ProjectLivingWater }
func (p *LivingWaterProperty) Key() PropertyKey              { return PropertyKey{Block: p.Block, Lot: p.Lot} }
func (p *LivingWaterProperty) Status() PropertyStatus        { return p.LotStatus }
func (p *LivingWaterProperty) SetStatus(s PropertyStatus)    { p.LotStatus = s }
func (p *LivingWaterProperty) BuyerName() string             { return p.Owner }

func (p *LivingWaterProperty) Field(name string) (string, bool) {
	switch canonicalField(name) {
	case "block":
		return p.Block, true
	case "lot":
		return p.Lot, true
	case "lot area":
		return p.LotArea.String(), true
	case "price per sqm":
		return p.PricePerSQM.String(), true
	case "tcp":
		return p.TCP.String(), true
	case "term":
		return p.Term, true
	case "monthly amortization":
		return p.MonthlyAmortization.String(), true
	case "owner":
		return p.Owner, true
	case "broker":
		return p.Broker, true
	case "realty":
		return p.Realty, true
	case "reservation date":
		return p.ReservationDate, true
	case "due date":
		return p.DueDate, true
	case "date of sale":
		return p.DateOfSale, true
	case "status":
		return string(p.LotStatus), true
	}
	return "", false
}

func (p *LivingWaterProperty) SetField(name, value string) error {
	switch canonicalField(name) {
	case "lot area":
		d, err := parseMoney(name, value)
		if err != nil {
			return err
		}
		p.LotArea = d
	case "price per sqm":
		d, err := parseMoney(name, value)
		if err != nil {
			return err
		}
		p.PricePerSQM = d
	case "tcp":
		d, err := parseMoney(name, value)
		if err != nil {
			return err
		}
		p.TCP = d
	case "monthly amortization":
		d, err := parseMoney(name, value)
		if err != nil {
			return err
		}
		p.MonthlyAmortization = d
	case "term":
		p.Term = value
	case "owner":
		p.Owner = value
	case "broker":
		p.Broker = value
	case "realty":
		p.Realty = value
	case "reservation date":
		p.ReservationDate = value
	case "due date":
		p.DueDate = value
	case "date of sale":
		p.DateOfSale = value
	case "status":
		p.LotStatus = PropertyStatus(value)
	case "block", "lot":
		return fmt.Errorf("%w: field %q identifies the lot and cannot be edited", apperrors.ErrValidation, name)
	default:
		return fmt.Errorf("%w: unknown field %q for %s", apperrors.ErrValidation, name, p.Project().DisplayName())
	}
	return nil
}

func (p *LivingWaterProperty) ClearBuyerFields() {
	p.Owner = ""
	p.Broker = ""
	p.Realty = ""
	p.ReservationDate = ""
	p.DueDate = ""
	p.DateOfSale = ""
	p.Term = ""
	p.MonthlyAmortization = decimal.Zero
}

func (p *LivingWaterProperty) FieldNames() []string {
	return []string{
		"Block", "Lot", "Lot Area", "Price per SQM", "TCP", "Term",
		"Monthly Amortization", "Owner", "Broker", "Realty",
		"Reservation Date", "Due Date", "Date of Sale", "Status",
	}
}

func (p *LivingWaterProperty) Clone() Property {
	cp := *p
	return &cp
}

// HavahillsProperty is a lot in the Havahills Estate table.
type HavahillsProperty struct {
	Block      string
	Lot        string
	LotArea    decimal.Decimal // sqm
	Price      decimal.Decimal
	TCP        decimal.Decimal
	BuyersName string
	Realty     string
	SaleDate   string
	FirstDue   string
	Terms      string
	Amount     decimal.Decimal
	LotStatus  PropertyStatus
}

var _ Property = (*HavahillsProperty)(nil)

func (p *HavahillsProperty) Project() Project           { return ProjectHavahills }
func (p *HavahillsProperty) Key() PropertyKey           { return PropertyKey{Block: p.Block, Lot: p.Lot} }
func (p *HavahillsProperty) Status() PropertyStatus     { return p.LotStatus }
func (p *HavahillsProperty) SetStatus(s PropertyStatus) { p.LotStatus = s }
func (p *HavahillsProperty) BuyerName() string          { return p.BuyersName }

func (p *HavahillsProperty) Field(name string) (string, bool) {
	switch canonicalField(name) {
	case "block":
		return p.Block, true
	case "lot":
		return p.Lot, true
	case "lot area":
		return p.LotArea.String(), true
	case "price":
		return p.Price.String(), true
	case "tcp":
		return p.TCP.String(), true
	case "buyers name":
		return p.BuyersName, true
	case "realty":
		return p.Realty, true
	case "sale date":
		return p.SaleDate, true
	case "first due":
		return p.FirstDue, true
	case "terms":
		return p.Terms, true
	case "amount":
		return p.Amount.String(), true
	case "status":
		return string(p.LotStatus), true
	}
	return "", false
}

func (p *HavahillsProperty) SetField(name, value string) error {
	switch canonicalField(name) {
	case "lot area":
		d, err := parseMoney(name, value)
		if err != nil {
			return err
		}
		p.LotArea = d
	case "price":
		d, err := parseMoney(name, value)
		if err != nil {
			return err
		}
		p.Price = d
	case "tcp":
		d, err := parseMoney(name, value)
		if err != nil {
			return err
		}
		p.TCP = d
	case "amount":
		d, err := parseMoney(name, value)
		if err != nil {
			return err
		}
		p.Amount = d
	case "buyers name":
		p.BuyersName = value
	case "realty":
		p.Realty = value
	case "sale date":
		p.SaleDate = value
	case "first due":
		p.FirstDue = value
	case "terms":
		p.Terms = value
	case "status":
		p.LotStatus = PropertyStatus(value)
	case "block", "lot":
		return fmt.Errorf("%w: field %q identifies the lot and cannot be edited", apperrors.ErrValidation, name)
	default:
		return fmt.Errorf("%w: unknown field %q for %s", apperrors.ErrValidation, name, p.Project().DisplayName())
	}
	return nil
}

func (p *HavahillsProperty) ClearBuyerFields() {
	p.BuyersName = ""
	p.Realty = ""
	p.SaleDate = ""
	p.FirstDue = ""
	p.Terms = ""
	p.Amount = decimal.Zero
}

func (p *HavahillsProperty) FieldNames() []string {
	return []string{
		"Block", "Lot", "Lot Area", "Price", "TCP", "Buyers Name",
		"Realty", "Sale Date", "First Due", "Terms", "Amount", "Status",
	}
}

func (p *HavahillsProperty) Clone() Property {
	cp := *p
	return &cp
}

// canonicalField normalizes a display field name for matching: lowercased,
// separators collapsed ("Buyers Name", "buyers_name" and "buyersName" all match).
func canonicalField(name string) string {
	name = strings.TrimSpace(name)
	var b strings.Builder
	for i, r := range name {
		switch {
		case r == '_' || r == '-':
			b.WriteByte(' ')
		case r >= 'A' && r <= 'Z':
			// split camelCase on the boundary
			if i > 0 && name[i-1] != ' ' && name[i-1] != '_' && name[i-1] != '-' && !(name[i-1] >= 'A' && name[i-1] <= 'Z') {
				b.WriteByte(' ')
			}
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
