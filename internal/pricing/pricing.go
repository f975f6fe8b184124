// Package pricing computes ticket prices, discount eligibility and refund
// amounts. Every function is a pure function of its inputs and the Config the
// Engine was built with.
//
// Rounding: ticket-type multipliers use math.Round (half away from zero);
// percentage discounts round half up on integer currency units; refund amounts
// and service fees are floored.
package pricing

import (
	"fmt"
	"maps"
	"math"
	"sort"
	"strings"
	"time"

	"cinema-ticketing/internal/data/entity"
)

type DiscountType string

const (
	DiscountEarlyBird DiscountType = "EARLY_BIRD"
	DiscountStudent   DiscountType = "STUDENT"
	DiscountGroup     DiscountType = "GROUP"
	DiscountMember    DiscountType = "MEMBER"
)

type Discount struct {
	Code       string       `yaml:"code" json:"code"`
	Name       string       `yaml:"name" json:"name"`
	Percentage int          `yaml:"percentage" json:"percentage"`
	Type       DiscountType `yaml:"type" json:"type"`
}

// DiscountContext carries the situational inputs of a discount decision. It is
// never stored.
type DiscountContext struct {
	ShowDate         time.Time
	Today            time.Time
	Quantity         int
	IsMember         bool
	IdentityVerified bool
}

type Config struct {
	Multipliers map[entity.TicketType]float64 `yaml:"multipliers"`
	AddOns      map[entity.AddOn]int          `yaml:"add_ons"`
	Discounts   []Discount                    `yaml:"discounts"`

	EarlyBirdDays int `yaml:"early_bird_days"`
	GroupMinimum  int `yaml:"group_minimum"`

	// cinema -> "FORMAT-AUDIENCE" -> price
	Fares map[string]map[string]int `yaml:"fares"`
}

// DefaultConfig returns the stock price tables.
func DefaultConfig() Config {
	return Config{
		Multipliers: map[entity.TicketType]float64{
			entity.TicketTypeStandard:  1.00,
			entity.TicketTypeStudent:   0.85,
			entity.TicketTypeEarlyBird: 0.80,
		},
		AddOns: map[entity.AddOn]int{
			entity.AddOnNone:        0,
			entity.AddOnPopcornCola: 120,
			entity.AddOnCoupleSet:   220,
		},
		Discounts: []Discount{
			{Code: "EARLY20", Name: "Early bird (7+ days ahead)", Percentage: 20, Type: DiscountEarlyBird},
			{Code: "STUDENT15", Name: "Student (identity verified)", Percentage: 15, Type: DiscountStudent},
			{Code: "GROUP10", Name: "Group (10+ tickets)", Percentage: 10, Type: DiscountGroup},
			{Code: "MEMBER5", Name: "Member", Percentage: 5, Type: DiscountMember},
		},
		EarlyBirdDays: 7,
		GroupMinimum:  10,
	}
}

type RefundQuote struct {
	DaysUntilShow int `json:"days_until_show"`
	RatePercent   int `json:"rate_percent"`
	Amount        int `json:"refund_amount"`
	ServiceFee    int `json:"service_fee"`
	Net           int `json:"net_refund"`
}

type FareQuote struct {
	Cinema   string `json:"cinema"`
	Format   string `json:"format"`
	Audience string `json:"audience"`
	Price    int    `json:"price"`
}

type Engine struct {
	cfg Config
}

// NewEngine validates cfg and returns an Engine. Missing tables fall back to
// DefaultConfig.
func NewEngine(cfg Config) (*Engine, error) {
	def := DefaultConfig()
	if len(cfg.Multipliers) == 0 {
		cfg.Multipliers = def.Multipliers
	}
	if len(cfg.AddOns) == 0 {
		cfg.AddOns = def.AddOns
	} else {
		cfg.AddOns = maps.Clone(cfg.AddOns)
	}
	if cfg.Discounts == nil {
		cfg.Discounts = def.Discounts
	}
	if cfg.EarlyBirdDays <= 0 {
		cfg.EarlyBirdDays = def.EarlyBirdDays
	}
	if cfg.GroupMinimum <= 0 {
		cfg.GroupMinimum = def.GroupMinimum
	}
	if _, ok := cfg.AddOns[entity.AddOnNone]; !ok {
		cfg.AddOns[entity.AddOnNone] = 0
	}

	for tt, m := range cfg.Multipliers {
		if m <= 0 {
			return nil, fmt.Errorf("multiplier for %s must be positive", tt)
		}
	}
	seen := make(map[string]bool, len(cfg.Discounts))
	for _, d := range cfg.Discounts {
		code := strings.ToUpper(d.Code)
		if code == "" {
			return nil, fmt.Errorf("discount code is required")
		}
		if seen[code] {
			return nil, fmt.Errorf("duplicate discount code %s", d.Code)
		}
		seen[code] = true
		if d.Percentage <= 0 || d.Percentage > 100 {
			return nil, fmt.Errorf("discount %s percentage %d out of range", d.Code, d.Percentage)
		}
	}

	return &Engine{cfg: cfg}, nil
}

// UnitPrice applies the ticket-type multiplier to the showtime base price.
func (e *Engine) UnitPrice(basePrice int, ticketType entity.TicketType) (int, error) {
	m, ok := e.cfg.Multipliers[ticketType]
	if !ok {
		return 0, fmt.Errorf("unknown ticket type %q", ticketType)
	}
	return int(math.Round(float64(basePrice) * m)), nil
}

// AddOnPrice returns the flat price of a meal selection. An empty selection is NONE.
func (e *Engine) AddOnPrice(addOn entity.AddOn) (int, error) {
	if addOn == "" {
		addOn = entity.AddOnNone
	}
	p, ok := e.cfg.AddOns[addOn]
	if !ok {
		return 0, fmt.Errorf("unknown add-on %q", addOn)
	}
	return p, nil
}

func (e *Engine) TicketTypes() []entity.TicketType {
	out := make([]entity.TicketType, 0, len(e.cfg.Multipliers))
	for tt := range e.cfg.Multipliers {
		out = append(out, tt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Discount looks a code up case-insensitively.
func (e *Engine) Discount(code string) (Discount, bool) {
	code = strings.TrimSpace(code)
	for _, d := range e.cfg.Discounts {
		if strings.EqualFold(d.Code, code) {
			return d, true
		}
	}
	return Discount{}, false
}

func (e *Engine) Discounts() []Discount {
	out := make([]Discount, len(e.cfg.Discounts))
	copy(out, e.cfg.Discounts)
	return out
}

// IsApplicable evaluates the predicate of the discount's type against ctx.
func (e *Engine) IsApplicable(d Discount, ctx *DiscountContext) bool {
	if ctx == nil {
		return false
	}
	switch d.Type {
	case DiscountEarlyBird:
		if ctx.ShowDate.IsZero() || ctx.Today.IsZero() {
			return false
		}
		return DaysBetween(ctx.Today, ctx.ShowDate) >= e.cfg.EarlyBirdDays
	case DiscountStudent:
		return ctx.IdentityVerified
	case DiscountGroup:
		return ctx.Quantity >= e.cfg.GroupMinimum
	case DiscountMember:
		return ctx.IsMember
	default:
		return false
	}
}

// IsCodeApplicable reports whether code exists and applies to ctx.
func (e *Engine) IsCodeApplicable(code string, ctx *DiscountContext) bool {
	d, ok := e.Discount(code)
	return ok && e.IsApplicable(d, ctx)
}

func (e *Engine) ApplicableDiscounts(ctx *DiscountContext) []Discount {
	var out []Discount
	for _, d := range e.cfg.Discounts {
		if e.IsApplicable(d, ctx) {
			out = append(out, d)
		}
	}
	return out
}

// Apply returns price reduced by the discount percentage, or price unchanged
// when the code is unknown or not applicable.
func (e *Engine) Apply(price int, code string, ctx *DiscountContext) int {
	d, ok := e.Discount(code)
	if !ok || !e.IsApplicable(d, ctx) {
		return price
	}
	return percentOf(price, 100-d.Percentage)
}

// percentOf rounds half up for non-negative amounts.
func percentOf(amount, percent int) int {
	return (amount*percent + 50) / 100
}

// RefundTier returns the refundable percentage for the number of calendar days
// left before the show.
func RefundTier(daysUntilShow int) int {
	switch {
	case daysUntilShow >= 7:
		return 100
	case daysUntilShow >= 3:
		return 80
	case daysUntilShow >= 1:
		return 50
	default:
		return 0
	}
}

// Refund computes the tiered refund of total. The service fee is a tenth of the
// refund amount, both floored.
func Refund(total, daysUntilShow int) RefundQuote {
	rate := RefundTier(daysUntilShow)
	amount := total * rate / 100
	fee := amount / 10
	return RefundQuote{
		DaysUntilShow: daysUntilShow,
		RatePercent:   rate,
		Amount:        amount,
		ServiceFee:    fee,
		Net:           amount - fee,
	}
}

// Fare returns the listed price of a format/audience combination at a cinema.
func (e *Engine) Fare(cinema, format, audience string) (int, bool) {
	prices, ok := e.cfg.Fares[cinema]
	if !ok {
		return 0, false
	}
	p, ok := prices[fareKey(format, audience)]
	return p, ok
}

// Compare lists the fare of every cinema offering format/audience, cheapest first.
func (e *Engine) Compare(format, audience string) []FareQuote {
	key := fareKey(format, audience)
	var quotes []FareQuote
	for cinema, prices := range e.cfg.Fares {
		if p, ok := prices[key]; ok {
			quotes = append(quotes, FareQuote{
				Cinema:   cinema,
				Format:   strings.ToUpper(format),
				Audience: strings.ToUpper(audience),
				Price:    p,
			})
		}
	}
	sort.Slice(quotes, func(i, j int) bool {
		if quotes[i].Price != quotes[j].Price {
			return quotes[i].Price < quotes[j].Price
		}
		return quotes[i].Cinema < quotes[j].Cinema
	})
	return quotes
}

// LowestFare returns -1 when no cinema lists the combination.
func (e *Engine) LowestFare(format, audience string) int {
	quotes := e.Compare(format, audience)
	if len(quotes) == 0 {
		return -1
	}
	return quotes[0].Price
}

func fareKey(format, audience string) string {
	return strings.ToUpper(format) + "-" + strings.ToUpper(audience)
}

// DaysBetween counts calendar days from the date of from to the date of to,
// both taken in from's location. Negative when to is earlier.
func DaysBetween(from, to time.Time) int {
	loc := from.Location()
	to = to.In(loc)
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
