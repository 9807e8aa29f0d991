package entity

type User struct {
	Base
	Email        string  `db:"email"`
	PasswordHash string  `db:"password"`
	FirstName    *string `db:"first_name"`
	LastName     *string `db:"last_name"`
}

// UserSummary is the public projection of a user attached to reviews.
// It never carries the password hash.
type UserSummary struct {
	ID        int64   `db:"id"`
	Email     string  `db:"email"`
	FirstName *string `db:"first_name"`
	LastName  *string `db:"last_name"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
