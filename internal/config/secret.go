package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

// LoadToken returns the converter API token stored for account. A missing
// entry yields an empty token.
func LoadToken(account string) (string, error) {
	token, err := keyring.Get(KeyringService, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrKeyring, err)
	}
	return token, nil
}

// SaveToken stores the converter API token for account.
func SaveToken(account, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New(ErrTokenEmpty)
	}
	if err := keyring.Set(KeyringService, account, token); err != nil {
		return fmt.Errorf("%s: %w", ErrKeyring, err)
	}
	return nil
}

// DeleteToken removes the token for account. Deleting a missing entry succeeds.
func DeleteToken(account string) error {
	err := keyring.Delete(KeyringService, account)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("%s: %w", ErrKeyring, err)
	}
	return nil
}
