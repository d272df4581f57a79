// Package auth manages local accounts, the signed-in identity and course ownership.
//
// Accounts and the current session live in the system keyring.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/mo"
	"github.com/zalando/go-keyring"
)

const (
	service    = "coursecast"
	sessionKey = "session"
)

// account is the keyring record of a registered user.
type account struct {
	User         User   `json:"user"`
	PasswordHash string `json:"passwordHash"`
}

func accountKey(email string) string {
	return "account:" + normalizeEmail(email)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func loadAccount(email string) (mo.Option[*account], error) {
	raw, err := keyring.Get(service, accountKey(email))
	if errors.Is(err, keyring.ErrNotFound) {
		return mo.None[*account](), nil
	}
	if err != nil {
		return mo.None[*account](), fmt.Errorf("read account: %w", err)
	}

	var acc account
	if err := json.Unmarshal([]byte(raw), &acc); err != nil {
		return mo.None[*account](), fmt.Errorf("decode account: %w", err)
	}
	return mo.Some(&acc), nil
}

func saveAccount(acc *account) error {
	raw, err := json.Marshal(acc)
	if err != nil {
		return err
	}
	return keyring.Set(service, accountKey(acc.User.Email), string(raw))
}

func sessionEmail() mo.Option[string] {
	email, err := keyring.Get(service, sessionKey)
	if err != nil || email == "" {
		return mo.None[string]()
	}
	return mo.Some(email)
}

func setSession(email string) error {
	return keyring.Set(service, sessionKey, normalizeEmail(email))
}

func deleteSession() error {
	err := keyring.Delete(service, sessionKey)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
