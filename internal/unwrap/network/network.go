// Package network lists the EVM networks the wrapped token is deployed on.
package network

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnsupported is returned for networks without a known deployment.
	ErrUnsupported = errors.New("evm network not supported")
	// ErrNotCanonical is returned for networks served by a bridged (non canonical) contract.
	ErrNotCanonical = errors.New("evm network is not canonical")
)

// EVM describes an EVM network hosting the wrapped token.
type EVM struct {
	Name      string
	ChainID   uint64
	Canonical bool
	Mainnet   bool
}

var supported = map[string]EVM{
	"ethereum:mainnet": {Name: "ethereum:mainnet", ChainID: 1, Canonical: true, Mainnet: true},
	"ethereum:sepolia": {Name: "ethereum:sepolia", ChainID: 11155111, Canonical: true},
	"base:sepolia":     {Name: "base:sepolia", ChainID: 84532},
	"celo:alfajores":   {Name: "celo:alfajores", ChainID: 44787},
	"optimism:sepolia": {Name: "optimism:sepolia", ChainID: 11155420},
}

// Lookup returns the settings of a supported network by name.
func Lookup(name string) (EVM, error) {
	n, ok := supported[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return EVM{}, fmt.Errorf("%w: %q", ErrUnsupported, name)
	}
	return n, nil
}

// Canonical returns the settings of name, failing unless the unwrapper may serve it.
func Canonical(name string) (EVM, error) {
	n, err := Lookup(name)
	if err != nil {
		return EVM{}, err
	}
	if !n.Canonical {
		return EVM{}, fmt.Errorf("%w: %s", ErrNotCanonical, n.Name)
	}
	return n, nil
}

// Names returns the supported network names in lexical order.
func Names() []string {
	names := make([]string, 0, len(supported))
	for name := range supported {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
