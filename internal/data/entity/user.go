package entity

type User struct {
	Base
	Email         string  `db:"email"`
	DisplayName   *string `db:"display_name"`
	EmailVerified bool    `db:"email_verified"`
	IsActive      bool    `db:"is_active"`
}
