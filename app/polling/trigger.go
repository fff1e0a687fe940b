package polling

import (
	"github.com/vibast-solutions/ms-go-school-fees/app/entity"
	"github.com/vibast-solutions/ms-go-school-fees/app/status"
)

// ShouldPoll is true while any child still owes money or any payment is
// pending or active.
func ShouldPoll(children []entity.ChildSummary, payments []entity.PaymentRecord) bool {
	for _, c := range children {
		if c.PendingAmount != nil && *c.PendingAmount > 0 {
			return true
		}
	}
	for _, p := range payments {
		if status.Classify(p.Status).State.IsOpen() {
			return true
		}
	}
	return false
}
