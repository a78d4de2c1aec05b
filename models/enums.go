package models

import (
	"errors"
	"fmt"
)

// OperationKind is the direction of a case operation. Transfers have no kind
// of their own: a transfer materializes as a Withdrawal leg on the source
// case and a Deposit leg on the destination case.
type OperationKind string

const (
	OperationKindDeposit    OperationKind = "Deposit"
	OperationKindWithdrawal OperationKind = "Withdrawal"
)

type OperationStatus string

const (
	OperationStatusProcessed OperationStatus = "Processed"
	OperationStatusOnHold    OperationStatus = "OnHold"
	OperationStatusConfirmed OperationStatus = "Confirmed"
)

var ErrUnmappedLegacyStatus = errors.New("unmapped legacy status code")

// StatusFromLegacyCode maps a legacy activity status code onto the new
// lifecycle. Codes outside {1,2,3,4} are rejected; the caller skips the
// activity rather than inventing a status.
func StatusFromLegacyCode(code int) (OperationStatus, error) {
	switch code {
	case 1:
		return OperationStatusProcessed, nil
	case 2, 4:
		return OperationStatusOnHold, nil
	case 3:
		return OperationStatusConfirmed, nil
	}
	return "", fmt.Errorf("%w: %d", ErrUnmappedLegacyStatus, code)
}
