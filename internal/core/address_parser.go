package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pinball-hwbind/internal/types"
)

// addressSeparator splits the board from the index in board-index notation.
const addressSeparator = "-"

type AddressParser struct{}

func NewAddressParser() AddressParser {
	return AddressParser{}
}

// Parse turns a raw address token into a PhysicalAddress. "<board>-<index>"
// yields an explicit board; a bare "<n>" yields a default-board address to be
// completed against the active platform. The parser is syntax-only and never
// checks ranges.
func (p AddressParser) Parse(token string) (types.PhysicalAddress, error) {
	raw := strings.TrimSpace(token)
	if raw == "" {
		return types.PhysicalAddress{}, malformedAddress(token, "address token is empty")
	}
	if strings.Contains(raw, addressSeparator) {
		parts := strings.Split(raw, addressSeparator)
		if len(parts) != 2 {
			return types.PhysicalAddress{}, malformedAddress(token, "at most one '-' separator is allowed")
		}
		board, err := parseNonNegative(parts[0])
		if err != nil {
			return types.PhysicalAddress{}, malformedAddress(token, "board "+err.Error())
		}
		index, err := parseNonNegative(parts[1])
		if err != nil {
			return types.PhysicalAddress{}, malformedAddress(token, "index "+err.Error())
		}
		return types.PhysicalAddress{Board: types.BoardID(board), Index: index}, nil
	}
	index, err := parseNonNegative(raw)
	if err != nil {
		return types.PhysicalAddress{}, malformedAddress(token, "index "+err.Error())
	}
	return types.PhysicalAddress{Board: types.DefaultBoard, Index: index}, nil
}

// AddressToken renders a raw document value as an address token. Integers
// and strings are accepted; anything else is returned in its printed form
// so that Parse rejects it with the offending value.
func AddressToken(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case uint64:
		return strconv.FormatUint(typed, 10)
	default:
		return fmt.Sprint(typed)
	}
}

func parseNonNegative(raw string) (int, error) {
	if raw == "" {
		return 0, fmt.Errorf("is empty")
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%q is not a non-negative integer", raw)
		}
	}
	if len(raw) > 1 && raw[0] == '0' {
		return 0, fmt.Errorf("%q has a leading zero", raw)
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%q is out of range", raw)
	}
	return value, nil
}

func malformedAddress(token string, reason string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("malformed address %q: %s", token, reason))
}
