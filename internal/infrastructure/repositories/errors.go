package repositories

import (
	"errors"

	"github.com/samber/oops"
	"github.com/shubham23mamgain/bringit/domain"
	"gorm.io/gorm"
)

// storeError wraps a driver failure so handlers can log the context and
// answer with a generic 500
func storeError(repo, op string, err error) error {
	return oops.
		In(repo).
		Code(domain.CodeStore).
		With("op", op).
		Wrap(err)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
