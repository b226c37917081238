package models

// User is a dashboard account. Password holds the bcrypt hash once persisted.
type User struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Email    string `json:"email" yaml:"email"`
	Password string `json:"-" yaml:"password"`
}
