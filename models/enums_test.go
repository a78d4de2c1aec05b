package models

import (
	"errors"
	"testing"
)

func TestStatusFromLegacyCode(t *testing.T) {
	cases := []struct {
		code int
		want OperationStatus
	}{
		{1, OperationStatusProcessed},
		{2, OperationStatusOnHold},
		{3, OperationStatusConfirmed},
		{4, OperationStatusOnHold},
	}
	for _, c := range cases {
		got, err := StatusFromLegacyCode(c.code)
		if err != nil {
			t.Errorf("StatusFromLegacyCode(%d): %v", c.code, err)
			continue
		}
		if got != c.want {
			t.Errorf("StatusFromLegacyCode(%d) = %s, want %s", c.code, got, c.want)
		}
	}
}

func TestStatusFromLegacyCodeRejectsUnknown(t *testing.T) {
	for _, code := range []int{0, 5, -1, 99} {
		_, err := StatusFromLegacyCode(code)
		if !errors.Is(err, ErrUnmappedLegacyStatus) {
			t.Errorf("StatusFromLegacyCode(%d): expected ErrUnmappedLegacyStatus, got %v", code, err)
		}
	}
}
