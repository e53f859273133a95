package services

import (
	"errors"
	"fmt"

	"learnhub/internal/core/domain"

	"gorm.io/gorm"
)

// storeError tags an unexpected repository failure as retry-safe
func storeError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}

// notFoundOr maps gorm's not found to the given domain error and wraps the rest
func notFoundOr(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return storeError(err)
}
