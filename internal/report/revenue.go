// Package report derives read-only summaries from already-scoped lease data.
package report

import (
	"github.com/shopspring/decimal"

	"rental-backoffice/internal/models"
)

// LeaseRevenue is one line of the revenue breakdown.
type LeaseRevenue struct {
	LeaseID      string          `json:"leaseId"`
	PropertyName string          `json:"propertyName"`
	TenantName   string          `json:"tenantName"`
	MonthlyRent  decimal.Decimal `json:"monthlyRent"`
	StartDate    string          `json:"startDate"`
	EndDate      string          `json:"endDate"`
}

// RevenueSummary is the total rent across a set of active leases.
type RevenueSummary struct {
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	ActiveLeases int             `json:"activeLeases"`
	Breakdown    []LeaseRevenue  `json:"revenueBreakdown"`
}

const dateLayout = "2006-01-02"

// ComputeRevenue folds monthly rent over the given leases. Callers pass
// leases already filtered to active and scoped to the owner; nothing here
// re-checks status or ownership.
func ComputeRevenue(leases []models.Lease) RevenueSummary {
	total := decimal.Zero
	breakdown := make([]LeaseRevenue, 0, len(leases))

	for _, l := range leases {
		total = total.Add(l.MonthlyRent)

		propertyName := "Unknown Property"
		if l.Property != nil {
			propertyName = l.Property.Name
		}
		tenantName := "Unknown Tenant"
		if l.Tenant != nil {
			tenantName = l.Tenant.Name
		}

		breakdown = append(breakdown, LeaseRevenue{
			LeaseID:      l.ID,
			PropertyName: propertyName,
			TenantName:   tenantName,
			MonthlyRent:  l.MonthlyRent,
			StartDate:    l.StartDate.Format(dateLayout),
			EndDate:      l.EndDate.Format(dateLayout),
		})
	}

	return RevenueSummary{
		TotalRevenue: total,
		ActiveLeases: len(leases),
		Breakdown:    breakdown,
	}
}
