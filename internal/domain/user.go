package domain

type User struct {
	ID       string `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	Email    string `db:"email" json:"email"`
	FullName string `db:"full_name" json:"fullName"`
	Hash     string `db:"password_hash" json:"-"`
	Role     string `db:"role" json:"role"` // customer | seller | admin
}

// CanManageOrders reports whether the role may mutate order status
// or view another user's orders.
func (u *User) CanManageOrders() bool {
	return u != nil && (u.Role == "seller" || u.Role == "admin")
}
