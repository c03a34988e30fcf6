package constants

import "time"

const (
	// Property numbers: BT-000001, BT-000002, ... never reused.
	PropertyNumberPrefix = "BT-"
	PropertyNumberWidth  = 6

	// Co-ownership shares are nominal thousandths of the property.
	TotalOwnershipShares = 1000.0
	ShareSumWarnBelow    = 900.0

	// Address-mismatch advisory: probe the first 10 lowercase characters of
	// the extracted address, but only when it is longer than 5 characters.
	AddressProbeLength = 10
	AddressMinLength   = 5

	// Extraction: feed at most this much document text to the model.
	ExtractionTextLimit      = 15000
	DefaultExtractionTimeout = 60 * time.Second

	// DRAFT properties untouched this long are purged by the daily cron.
	DraftRetention = 30 * 24 * time.Hour
)
