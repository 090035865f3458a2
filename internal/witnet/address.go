package witnet

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/goodnatureofminers/wit-unwrapper/internal/unwrap/model"
)

// PKHLength is the size of a public key hash.
const PKHLength = 20

const (
	mainnetHRP = "wit"
	testnetHRP = "twit"
)

// ErrUnknownNetwork is returned for addresses with an unexpected human readable part.
var ErrUnknownNetwork = errors.New("unknown witnet network")

// HRP returns the bech32 human readable part used by network.
func HRP(network model.LedgerNetwork) (string, error) {
	switch network {
	case model.LedgerMainnet:
		return mainnetHRP, nil
	case model.LedgerTestnet:
		return testnetHRP, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownNetwork, network)
	}
}

// EncodeAddress encodes a public key hash as a bech32 address of network.
func EncodeAddress(pkh []byte, network model.LedgerNetwork) (string, error) {
	if len(pkh) != PKHLength {
		return "", fmt.Errorf("pkh must be %d bytes, got %d", PKHLength, len(pkh))
	}
	hrp, err := HRP(network)
	if err != nil {
		return "", err
	}
	data, err := bech32.ConvertBits(pkh, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("convert pkh bits: %w", err)
	}
	return bech32.Encode(hrp, data)
}

// DecodeAddress returns the network and public key hash of a bech32 address.
func DecodeAddress(address string) (model.LedgerNetwork, []byte, error) {
	hrp, data, err := bech32.Decode(address)
	if err != nil {
		return "", nil, fmt.Errorf("decode address %q: %w", address, err)
	}
	var network model.LedgerNetwork
	switch hrp {
	case mainnetHRP:
		network = model.LedgerMainnet
	case testnetHRP:
		network = model.LedgerTestnet
	default:
		return "", nil, fmt.Errorf("%w: hrp %q", ErrUnknownNetwork, hrp)
	}
	pkh, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return "", nil, fmt.Errorf("convert address bits: %w", err)
	}
	if len(pkh) != PKHLength {
		return "", nil, fmt.Errorf("address %q carries %d bytes, want %d", address, len(pkh), PKHLength)
	}
	return network, pkh, nil
}
