package polling

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vibast-solutions/ms-go-school-fees/app/entity"
)

func amount(v int64) *int64 { return &v }

func TestShouldPollPayments(t *testing.T) {
	assert.False(t, ShouldPoll(nil, []entity.PaymentRecord{{Status: "SUCCESSFUL"}}))
	assert.True(t, ShouldPoll(nil, []entity.PaymentRecord{{Status: "ACTIVE"}}))
	assert.True(t, ShouldPoll(nil, []entity.PaymentRecord{{Status: "failed"}, {Status: "pending"}}))
	assert.False(t, ShouldPoll(nil, []entity.PaymentRecord{{Status: "CANCELLED"}, {Status: "something_new"}}))
	assert.False(t, ShouldPoll(nil, nil))
}

func TestShouldPollChildren(t *testing.T) {
	assert.True(t, ShouldPoll([]entity.ChildSummary{{PendingAmount: amount(1)}}, nil))
	assert.False(t, ShouldPoll([]entity.ChildSummary{{PendingAmount: amount(0)}, {PendingAmount: nil}}, nil))
	assert.False(t, ShouldPoll([]entity.ChildSummary{{PendingAmount: amount(-10)}}, nil))
}
