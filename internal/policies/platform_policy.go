package policies

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pinball-hwbind/internal/ports"
	"pinball-hwbind/internal/types"
)

var _ ports.PolicyPort = PlatformPolicy{}

// PlatformPolicy answers the platform-specific questions of a resolution
// pass: which board a bare index lands on, whether an address fits the
// board layout, and which rule combinations the platform can dispatch.
type PlatformPolicy struct {
	descriptor types.PlatformDescriptor
	boards     map[types.BoardID]types.BoardSpec
}

func NewPlatformPolicy(descriptor types.PlatformDescriptor) (PlatformPolicy, error) {
	if strings.TrimSpace(descriptor.Name) == "" {
		return PlatformPolicy{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("platform descriptor requires a name")
	}
	if len(descriptor.Boards) == 0 {
		return PlatformPolicy{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("platform %s declares no boards", descriptor.Name))
	}
	boards := make(map[types.BoardID]types.BoardSpec, len(descriptor.Boards))
	for _, board := range descriptor.Boards {
		if board.ID < 0 {
			return PlatformPolicy{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("platform %s board id %d must not be negative", descriptor.Name, board.ID))
		}
		if _, exists := boards[board.ID]; exists {
			return PlatformPolicy{}, errbuilder.New().
				WithCode(errbuilder.CodeAlreadyExists).
				WithMsg(fmt.Sprintf("platform %s declares board %d twice", descriptor.Name, board.ID))
		}
		boards[board.ID] = board
	}
	switch descriptor.DefaultBoardRule {
	case types.DefaultBoardRuleFixed:
		if _, ok := boards[descriptor.DefaultBoard]; !ok {
			return PlatformPolicy{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("platform %s default board %d is not in its layout", descriptor.Name, descriptor.DefaultBoard))
		}
	case types.DefaultBoardRuleFlat:
	default:
		return PlatformPolicy{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("platform %s has unknown default board rule %q", descriptor.Name, descriptor.DefaultBoardRule))
	}
	return PlatformPolicy{descriptor: descriptor, boards: boards}, nil
}

func (p PlatformPolicy) Descriptor() types.PlatformDescriptor {
	return p.descriptor
}

func (p PlatformPolicy) SupportsCrossBoardAutofire() bool {
	return p.descriptor.CrossBoardAutofire
}

// CompleteAddress assigns a board to a default-board address and checks the
// result against the layout. A failed check is returned as a violation so
// the caller can keep resolving the rest of the document; the returned
// address is then the best-effort input address.
func (p PlatformPolicy) CompleteAddress(ref string, token string, kind types.DeviceKind, address types.PhysicalAddress) (types.PhysicalAddress, *types.AddressOutOfRange) {
	channel := kind.Channel()
	if address.IsDefaultBoard() {
		switch p.descriptor.DefaultBoardRule {
		case types.DefaultBoardRuleFixed:
			address.Board = p.descriptor.DefaultBoard
		case types.DefaultBoardRuleFlat:
			return p.completeFlat(ref, token, channel, address.Index)
		}
	}
	board, ok := p.boards[address.Board]
	if !ok {
		return address, &types.AddressOutOfRange{
			DeviceRef: ref,
			Token:     token,
			Board:     address.Board,
			Index:     address.Index,
			Limit:     len(p.descriptor.Boards),
			Reason:    fmt.Sprintf("board %d is not part of platform %s", address.Board, p.descriptor.Name),
		}
	}
	limit := board.Capacity(channel)
	if address.Index >= limit {
		return address, &types.AddressOutOfRange{
			DeviceRef: ref,
			Token:     token,
			Board:     address.Board,
			Index:     address.Index,
			Limit:     limit,
			Reason:    fmt.Sprintf("board %d has %d %s, index %d is out of range", address.Board, limit, channel, address.Index),
		}
	}
	return address, nil
}

// completeFlat walks the boards in layout order, consuming each board's
// capacity for channel until the flat index fits.
func (p PlatformPolicy) completeFlat(ref string, token string, channel types.ChannelClass, index int) (types.PhysicalAddress, *types.AddressOutOfRange) {
	remaining := index
	total := 0
	for _, board := range p.descriptor.Boards {
		capacity := board.Capacity(channel)
		total += capacity
		if remaining < capacity {
			return types.PhysicalAddress{Board: board.ID, Index: remaining}, nil
		}
		remaining -= capacity
	}
	return types.PhysicalAddress{Board: types.DefaultBoard, Index: index}, &types.AddressOutOfRange{
		DeviceRef: ref,
		Token:     token,
		Board:     types.DefaultBoard,
		Index:     index,
		Limit:     total,
		Reason:    fmt.Sprintf("platform %s has %d %s in total, index %d is out of range", p.descriptor.Name, total, channel, index),
	}
}
