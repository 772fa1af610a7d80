package account

import "time"

// User представляет запись аккаунта.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Пароль не возвращаем в ответах
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Identity is the display identity handed back to the storefront after
// a successful register or login. The name is the local part of the
// email address.
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
