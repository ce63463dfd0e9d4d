package entity

// User represents a row in the users table.
type User struct {
	ID          string `json:"id" db:"id"`
	Email       string `json:"email" db:"email"`
	PhoneNumber string `json:"phone_number" db:"phone_number"`
}

// UserProfile represents a row in the user_profiles table.
type UserProfile struct {
	ID          string `json:"id" db:"id"`
	Email       string `json:"email" db:"email"`
	PhoneNumber string `json:"phone_number" db:"phone_number"`
}

// AuthUser is a user record returned by the auth service admin API.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
