package types

import (
	"fmt"

	"github.com/samber/lo"
)

// BillingRunStatus represents the state of a billing run
type BillingRunStatus string

const (
	BillingRunStatusRunning   BillingRunStatus = "RUNNING"
	BillingRunStatusCompleted BillingRunStatus = "COMPLETED"
	BillingRunStatusFailed    BillingRunStatus = "FAILED"
)

func (s BillingRunStatus) String() string {
	return string(s)
}

func (s BillingRunStatus) Validate() error {
	allowed := []BillingRunStatus{
		BillingRunStatusRunning,
		BillingRunStatusCompleted,
		BillingRunStatusFailed,
	}
	if !lo.Contains(allowed, s) {
		return fmt.Errorf("invalid billing run status: %s", s)
	}
	return nil
}

// BillingStatus summarizes whether any subscriptions are awaiting billing
type BillingStatus string

const (
	BillingStatusPending  BillingStatus = "PENDING"
	BillingStatusUpToDate BillingStatus = "UP_TO_DATE"
)

// BillingItemOutcome records the result of one subscription within a run
type BillingItemOutcome string

const (
	BillingItemOutcomeInvoiced BillingItemOutcome = "INVOICED"
	BillingItemOutcomeSkipped  BillingItemOutcome = "SKIPPED"
	BillingItemOutcomeFailed   BillingItemOutcome = "FAILED"
)

// DefaultInvoiceDueDays is used when the tenant's invoice_config carries no
// due_days override
const DefaultInvoiceDueDays = 15

// BillingRunFilter represents filters for billing run queries
type BillingRunFilter struct {
	*QueryFilter
	*TimeRangeFilter

	// run_status filters by run state
	RunStatus []BillingRunStatus `json:"run_status,omitempty" form:"run_status"`

	// dry_run filters preview-only runs in or out
	DryRun *bool `json:"dry_run,omitempty" form:"dry_run"`
}

func NewBillingRunFilter() *BillingRunFilter {
	return &BillingRunFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

func (f *BillingRunFilter) Validate() error {
	if f.QueryFilter != nil {
		if err := f.QueryFilter.Validate(); err != nil {
			return err
		}
	}
	if f.TimeRangeFilter != nil {
		if err := f.TimeRangeFilter.Validate(); err != nil {
			return err
		}
	}
	for _, status := range f.RunStatus {
		if err := status.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (f *BillingRunFilter) GetLimit() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

func (f *BillingRunFilter) GetOffset() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

func (f *BillingRunFilter) IsUnlimited() bool {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}
