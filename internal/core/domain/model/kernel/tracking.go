package kernel

import (
	"strings"

	"github.com/google/uuid"
)

// TrackingNumber references a shipment with the logistics partner.
type TrackingNumber string

// NewTrackingNumber generates a tracking number such as "TRK3F9A0C1D22B7".
func NewTrackingNumber(prefix string) TrackingNumber {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return TrackingNumber(prefix + strings.ToUpper(raw[:12]))
}

func (t TrackingNumber) String() string {
	return string(t)
}

func (t TrackingNumber) IsEmpty() bool {
	return t == ""
}
