package model

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// User mirrors a row of the `users` table. Username is unique and never
// changes after creation.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"-"`
}

// UserCreate is the POST /users payload.
type UserCreate struct {
	Username string `json:"username" validate:"required,max=255"`
}

func (r *UserCreate) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	return validate.Struct(r)
}

// validate is shared by every request contract in this package.
var validate = validator.New(validator.WithRequiredStructEnabled())
