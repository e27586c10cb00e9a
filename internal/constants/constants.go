package constants

const (
	// IncomeToRentMultiple is the UK lettings convention: gross annual
	// income of 30x monthly rent, i.e. 2.5x rent per month.
	IncomeToRentMultiple = 2.5

	// DefaultLeaseTermMonths applies when the caller supplies no end date.
	DefaultLeaseTermMonths = 12

	// MaxOccupancyWriteAttempts bounds the conditional-write loop in the
	// tenancy coordinator before it gives up with a conflict error.
	MaxOccupancyWriteAttempts = 3

	// Cron schedules (robfig/cron syntax).
	ReconcileCronSpec   = "@every 5m"
	LeaseExpiryCronSpec = "30 0 * * *"
)
