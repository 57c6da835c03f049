package cli

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// storeKey returns the configured store key, prompting on the terminal
// (without echo) when no flag, config file or environment variable set one.
func (o *RootOptions) storeKey() (string, error) {
	if o.cfg.Key != "" {
		return o.cfg.Key, nil
	}

	fmt.Fprint(os.Stderr, "Store key: ")
	key, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read store key: %w", err)
	}
	if len(key) == 0 {
		return "", errors.New("empty store key")
	}
	return string(key), nil
}
