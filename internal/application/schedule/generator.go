// Package schedule computes installment plans from contract terms. It does no I/O.
package schedule

import (
	"fmt"
	"strings"
	"time"

	"estate-backend/internal/domain"
	"estate-backend/internal/pkg/money"
)

// Frequency is the spacing between regular installments.
type Frequency string

const (
	Monthly    Frequency = "monthly"
	Quarterly  Frequency = "quarterly"
	Semiannual Frequency = "semiannual"
	Annual     Frequency = "annual"
)

var frequencyMonths = map[Frequency]int{
	Monthly:    1,
	Quarterly:  3,
	Semiannual: 6,
	Annual:     12,
}

// ParseFrequency maps the contract type to a Frequency. An empty type means monthly.
func ParseFrequency(s string) (Frequency, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Monthly, nil
	}
	f := Frequency(s)
	if _, ok := frequencyMonths[f]; !ok {
		return "", fmt.Errorf("unknown installment type %q", s)
	}
	return f, nil
}

// Months is the number of calendar months between two regular installments.
func (f Frequency) Months() int {
	if m, ok := frequencyMonths[f]; ok {
		return m
	}
	return 1
}

// Terms are the contract fields the plan depends on.
type Terms struct {
	TotalPrice         float64
	MaintenanceDeposit float64
	DiscountAmount     float64
	DownPayment        float64
	Frequency          Frequency
	Count              int
	ExtraAnnual        int
	AnnualPaymentValue float64
	Start              time.Time
}

// Options switch on the rows that are not part of the regular schedule. Both are off by
// default, in which case the annual payments and the maintenance deposit are deducted
// from the regular pool but no rows are emitted for them.
type Options struct {
	AnnualInstallments     bool
	MaintenanceInstallment bool
}

// Row is one generated installment.
type Row struct {
	Type    string
	Amount  float64
	DueDate time.Time
}

// Plan is the generator's output together with the intermediate pools.
type Plan struct {
	InstallmentBase float64
	AfterDown       float64
	AnnualTotal     float64
	RegularPool     float64
	Rows            []Row
}

// RegularTotal sums the regular rows.
func (p Plan) RegularTotal() float64 {
	amounts := make([]float64, 0, len(p.Rows))
	for _, r := range p.Rows {
		if r.Type != domain.InstallmentTypeExtraAnnual && r.Type != domain.InstallmentTypeMaintenance {
			amounts = append(amounts, r.Amount)
		}
	}
	return money.Sum(amounts...)
}

// Generate builds the plan. Every regular row gets floor(pool/count) at cent precision
// except the last, which takes the residual so the rows add up to the pool exactly.
func Generate(t Terms, opts Options) Plan {
	p := Plan{}
	p.InstallmentBase = money.Round2(t.TotalPrice - t.MaintenanceDeposit)
	p.AfterDown = money.Round2(p.InstallmentBase - t.DiscountAmount - t.DownPayment)
	p.AnnualTotal = money.Round2(float64(t.ExtraAnnual) * t.AnnualPaymentValue)
	p.RegularPool = money.Round2(p.AfterDown - p.AnnualTotal)

	freq := t.Frequency
	if freq == "" {
		freq = Monthly
	}
	step := freq.Months()

	var lastDue time.Time
	if t.Count > 0 && p.RegularPool > 0 {
		base := money.Floor2(p.RegularPool / float64(t.Count))
		var acc float64
		for i := 1; i <= t.Count; i++ {
			amount := base
			if i == t.Count {
				amount = money.Round2(p.RegularPool - acc)
			}
			acc = money.Round2(acc + amount)
			lastDue = t.Start.AddDate(0, step*i, 0)
			p.Rows = append(p.Rows, Row{Type: string(freq), Amount: amount, DueDate: lastDue})
		}
	}

	if opts.AnnualInstallments && t.ExtraAnnual > 0 && t.AnnualPaymentValue > 0 {
		for k := 1; k <= t.ExtraAnnual; k++ {
			p.Rows = append(p.Rows, Row{
				Type:    domain.InstallmentTypeExtraAnnual,
				Amount:  money.Round2(t.AnnualPaymentValue),
				DueDate: t.Start.AddDate(0, 12*k, 0),
			})
		}
	}

	if opts.MaintenanceInstallment && t.MaintenanceDeposit > 0 {
		due := lastDue
		if due.IsZero() {
			due = t.Start.AddDate(0, step, 0)
		}
		p.Rows = append(p.Rows, Row{
			Type:    domain.InstallmentTypeMaintenance,
			Amount:  money.Round2(t.MaintenanceDeposit),
			DueDate: due,
		})
	}
	return p
}
