package services

import (
	"fmt"
	"strings"

	"github.com/buena/portfolio-service/internal/constants"
	"github.com/buena/portfolio-service/internal/dtos"
)

const (
	AdvisoryUnitSizeZero    = "unit_size_zero"
	AdvisoryShareZero       = "ownership_share_zero"
	AdvisoryShareShortfall  = "ownership_share_shortfall"
	AdvisoryAddressMismatch = "address_mismatch"
)

/*
Advise inspects a normalized unit list and produces non-blocking warnings for
the human reviewer. Nothing here ever rejects a submission.
*/
func Advise(units []dtos.ExtractedUnit, extractedAddress *string, currentAddress string) []dtos.Advisory {
	var warnings []dtos.Advisory

	zeroSize := 0
	zeroShare := 0
	var shareSum float64
	for _, u := range units {
		if u.Size == 0 {
			zeroSize++
		}
		if u.CoOwnershipShare == 0 {
			zeroShare++
		}
		shareSum += u.CoOwnershipShare
	}

	if zeroSize > 0 {
		warnings = append(warnings, dtos.Advisory{
			Code:    AdvisoryUnitSizeZero,
			Message: fmt.Sprintf("%d unit(s) have a size of 0 m²", zeroSize),
		})
	}
	if zeroShare > 0 {
		warnings = append(warnings, dtos.Advisory{
			Code:    AdvisoryShareZero,
			Message: fmt.Sprintf("%d unit(s) have a co-ownership share of 0", zeroShare),
		})
	}
	if shareSum > 0 && shareSum < constants.ShareSumWarnBelow {
		warnings = append(warnings, dtos.Advisory{
			Code: AdvisoryShareShortfall,
			Message: fmt.Sprintf(
				"Co-ownership shares sum to %.0f of %.0f; %.0f missing",
				shareSum, constants.TotalOwnershipShares, constants.TotalOwnershipShares-shareSum,
			),
		})
	}

	if extractedAddress != nil && currentAddress != "" {
		extracted := strings.ToLower(strings.TrimSpace(*extractedAddress))
		// Slice by runes; umlauts near the cut would split under byte slicing.
		runes := []rune(extracted)
		if len(runes) > constants.AddressMinLength {
			probe := extracted
			if len(runes) > constants.AddressProbeLength {
				probe = string(runes[:constants.AddressProbeLength])
			}
			if !strings.Contains(strings.ToLower(currentAddress), probe) {
				warnings = append(warnings, dtos.Advisory{
					Code: AdvisoryAddressMismatch,
					Message: fmt.Sprintf(
						"Extracted address %q does not match the current address %q",
						*extractedAddress, currentAddress,
					),
				})
			}
		}
	}

	return warnings
}
