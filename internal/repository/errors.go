// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow handlers to distinguish a
// missing row from a uniqueness violation without inspecting driver errors.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a lookup matches no row. Handlers translate
// it into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write would violate a uniqueness rule,
// such as a duplicate username or a second problem with the same name for
// one user.
var ErrConflict = errors.New("conflict")

// erDupEntry is MySQL's ER_DUP_ENTRY.
const erDupEntry = 1062

func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == erDupEntry
}
