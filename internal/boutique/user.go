package boutique

import "time"

type Role string

const (
	RoleOwner    Role = "owner"
	RoleEmployee Role = "employee"
	RoleCustomer Role = "customer"
)

func (r Role) Valid() bool {
	_, ok := rolePermissions[r]
	return ok
}

type Permission string

const (
	PermManageCatalog Permission = "catalog:manage"
	PermManageOrders  Permission = "orders:manage"
	PermViewDashboard Permission = "dashboard:view"
	PermManageUsers   Permission = "users:manage"
	PermPlaceOrders   Permission = "orders:place"
	PermViewOwnOrders Permission = "orders:own"
)

var rolePermissions = map[Role]map[Permission]bool{
	RoleOwner: {
		PermManageCatalog: true,
		PermManageOrders:  true,
		PermViewDashboard: true,
		PermManageUsers:   true,
		PermPlaceOrders:   true,
		PermViewOwnOrders: true,
	},
	RoleEmployee: {
		PermManageCatalog: true,
		PermManageOrders:  true,
		PermViewDashboard: true,
		PermPlaceOrders:   true,
		PermViewOwnOrders: true,
	},
	RoleCustomer: {
		PermPlaceOrders:   true,
		PermViewOwnOrders: true,
	},
}

var allRoles = []Role{RoleOwner, RoleEmployee, RoleCustomer}

func (r Role) Can(p Permission) bool {
	return rolePermissions[r][p]
}

// RolesWith lists every role holding p, in a stable order.
func RolesWith(p Permission) []Role {
	var out []Role
	for _, r := range allRoles {
		if r.Can(p) {
			out = append(out, r)
		}
	}
	return out
}

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
