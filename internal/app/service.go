// Package app contains the use-case services behind the six quote
// operations. Services validate input, enforce caller identity and
// orchestrate the ports; they know nothing about HTTP.
package app

import (
	"strings"

	"github.com/jsamuelsen/quotes-service/internal/domain"
)

// requireText rejects empty or whitespace-only input.
func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return domain.NewValidationError(field, "must not be blank")
	}

	return nil
}
