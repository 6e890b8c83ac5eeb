// Package parser holds the text parsing shared by the signature file readers
// and the command line tool.
package parser

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// ParseBigInt parses a non-negative integer from a JSON or CSV value.
//
// Strings with a 0x prefix, with hex letters, or longer than 20 digits are read
// as hex; other strings are decimal. JSON numbers are decimal.
func ParseBigInt(val interface{}) (*big.Int, error) {
	var z *big.Int
	switch v := val.(type) {
	case string:
		s := strings.TrimSpace(v)
		base := 10
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			s = s[2:]
			base = 16
		} else if strings.ContainsAny(s, "abcdefABCDEF") || len(s) > 20 {
			base = 16
		}
		var ok bool
		if z, ok = new(big.Int).SetString(s, base); !ok {
			return nil, fmt.Errorf("invalid number format: %q", v)
		}

	case json.Number:
		var ok bool
		if z, ok = new(big.Int).SetString(string(v), 10); !ok {
			return nil, fmt.Errorf("invalid number format: %s", v)
		}

	case float64:
		z, _ = new(big.Float).SetFloat64(v).Int(nil)

	case int64:
		z = big.NewInt(v)

	case int:
		z = big.NewInt(int64(v))

	default:
		return nil, fmt.Errorf("unsupported type: %T", val)
	}

	if z.Sign() < 0 {
		return nil, fmt.Errorf("negative number: %v", val)
	}
	return z, nil
}

// DecodeHex decodes a hex string, tolerating a 0x prefix and surrounding
// whitespace.
func DecodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	return b, nil
}

// ParseIntList parses a comma separated list of integers, e.g. "3,6,7".
func ParseIntList(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}
