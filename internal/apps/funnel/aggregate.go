package funnel

import (
	"sort"

	"github.com/shopspring/decimal"
)

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthName returns the English name for a 1-based month, or "" when out of
// range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// effectiveGrossNet returns the gross/net pair used by every aggregate. Deals
// created before gross/net tracking existed carry zeros in both columns; for
// those the deal value stands in for both sides.
func effectiveGrossNet(d *Deal) (gross, net decimal.Decimal) {
	if d.GrossValue.IsZero() && d.NetValue.IsZero() {
		return d.Value, d.Value
	}
	return d.GrossValue, d.NetValue
}

// BuildDashboard aggregates a user's non-archived deals into pipeline totals,
// per-status buckets and a monthly revenue series. Pure function so it can be
// tested without a database.
func BuildDashboard(deals []Deal) *DashboardResponse {
	resp := &DashboardResponse{
		TotalDeals:       len(deals),
		TotalValue:       decimal.Zero,
		ClosedValue:      decimal.Zero,
		TotalGrossValue:  decimal.Zero,
		TotalNetValue:    decimal.Zero,
		ClosedGrossValue: decimal.Zero,
		ClosedNetValue:   decimal.Zero,
	}

	byStatus := make(map[DealStatus][]DealResponse, len(AllStatuses))
	for i := range deals {
		d := &deals[i]
		gross, net := effectiveGrossNet(d)
		resp.TotalValue = resp.TotalValue.Add(d.Value)
		resp.TotalGrossValue = resp.TotalGrossValue.Add(gross)
		resp.TotalNetValue = resp.TotalNetValue.Add(net)
		if d.Status == StatusClosed {
			resp.ClosedDeals++
			resp.ClosedValue = resp.ClosedValue.Add(d.Value)
			resp.ClosedGrossValue = resp.ClosedGrossValue.Add(gross)
			resp.ClosedNetValue = resp.ClosedNetValue.Add(net)
		}
		byStatus[d.Status] = append(byStatus[d.Status], mapDealToResponse(d))
	}

	resp.DealsByStatus = make([]StatusGroup, 0, len(AllStatuses))
	for _, status := range AllStatuses {
		group := byStatus[status]
		if group == nil {
			group = []DealResponse{}
		}
		resp.DealsByStatus = append(resp.DealsByStatus, StatusGroup{
			Status: status,
			Count:  len(group),
			Deals:  group,
		})
	}

	resp.MonthlyRevenues = buildMonthlyRevenues(deals)
	return resp
}

type monthKey struct {
	year  int
	month int
}

// buildMonthlyRevenues groups closed deals by payment month, newest first.
// Closed deals without a payment date cannot be placed on the timeline and
// are left out of this series only.
func buildMonthlyRevenues(deals []Deal) []MonthlyRevenue {
	byMonth := make(map[monthKey]*MonthlyRevenue)
	for i := range deals {
		d := &deals[i]
		if d.Status != StatusClosed || d.PaymentDate == nil {
			continue
		}
		key := monthKey{year: d.PaymentDate.Year(), month: int(d.PaymentDate.Month())}
		entry, ok := byMonth[key]
		if !ok {
			entry = &MonthlyRevenue{
				Year:                   key.year,
				Month:                  key.month,
				MonthName:              MonthName(key.month),
				GrossValue:             decimal.Zero,
				NetValue:               decimal.Zero,
				TotalDiscounts:         decimal.Zero,
				RevenueByPaymentMethod: make(map[string]decimal.Decimal),
			}
			byMonth[key] = entry
		}
		gross, net := effectiveGrossNet(d)
		entry.GrossValue = entry.GrossValue.Add(gross)
		entry.NetValue = entry.NetValue.Add(net)
		entry.TotalDiscounts = entry.TotalDiscounts.Add(gross.Sub(net))
		entry.TotalDeals++

		method := "Outros"
		if d.PaymentMethod != nil {
			method = d.PaymentMethod.String()
		}
		entry.RevenueByPaymentMethod[method] = entry.RevenueByPaymentMethod[method].Add(net)
	}

	months := make([]MonthlyRevenue, 0, len(byMonth))
	for _, entry := range byMonth {
		months = append(months, *entry)
	}
	sort.Slice(months, func(i, j int) bool {
		if months[i].Year != months[j].Year {
			return months[i].Year > months[j].Year
		}
		return months[i].Month > months[j].Month
	})
	return months
}
