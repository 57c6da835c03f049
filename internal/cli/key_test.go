package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclip/openclip/internal/config"
)

func TestStoreKey_FromConfig(t *testing.T) {
	o := &RootOptions{cfg: &config.Config{Key: "abc"}}

	key, err := o.storeKey()
	require.NoError(t, err)
	assert.Equal(t, "abc", key)
}

func TestStoreKey_PromptsWhenUnset(t *testing.T) {
	orig := readPassword
	defer func() { readPassword = orig }()
	readPassword = func(fd int) ([]byte, error) { return []byte("typed"), nil }

	o := &RootOptions{cfg: &config.Config{}}

	key, err := o.storeKey()
	require.NoError(t, err)
	assert.Equal(t, "typed", key)
}

func TestStoreKey_EmptyPromptFails(t *testing.T) {
	orig := readPassword
	defer func() { readPassword = orig }()
	readPassword = func(fd int) ([]byte, error) { return nil, nil }

	o := &RootOptions{cfg: &config.Config{}}

	_, err := o.storeKey()
	assert.Error(t, err)
}

func TestStoreKey_ReadErrorPropagates(t *testing.T) {
	orig := readPassword
	defer func() { readPassword = orig }()
	readPassword = func(fd int) ([]byte, error) { return nil, errors.New("no tty") }

	o := &RootOptions{cfg: &config.Config{}}

	_, err := o.storeKey()
	assert.ErrorContains(t, err, "no tty")
}
