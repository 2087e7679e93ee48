package boutique

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckTransition(t *testing.T) {
	allowed := [][2]Status{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCancelled},
		{StatusConfirmed, StatusCompleted},
	}
	for _, tr := range allowed {
		assert.NoError(t, CheckTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}

	denied := [][2]Status{
		{StatusPending, StatusCompleted},
		{StatusConfirmed, StatusPending},
		{StatusCompleted, StatusCancelled},
		{StatusCancelled, StatusPending},
		{StatusCancelled, StatusConfirmed},
		{StatusPending, "Shipped"},
	}
	for _, tr := range denied {
		err := CheckTransition(tr[0], tr[1])
		assert.True(t, IsKind(err, KindValidation), "%s -> %s", tr[0], tr[1])
	}
}

func TestStatusPredicates(t *testing.T) {
	assert.True(t, StatusPending.Active())
	assert.True(t, StatusConfirmed.Active())
	assert.False(t, StatusCompleted.Active())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, Status("Shipped").Valid())
}

func TestRolesWith(t *testing.T) {
	assert.Equal(t, []Role{RoleOwner}, RolesWith(PermManageUsers))
	assert.Equal(t, []Role{RoleOwner, RoleEmployee}, RolesWith(PermManageCatalog))
	assert.Equal(t, []Role{RoleOwner, RoleEmployee, RoleCustomer}, RolesWith(PermPlaceOrders))
	assert.False(t, Role("admin").Valid())
}
