package adapters

import (
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/fxamacker/cbor/v2"

	"pinball-hwbind/internal/types"
)

// frameHeaderSize is the big-endian length prefix in front of every frame.
const frameHeaderSize = 4

// maxFrameSize bounds a single binding frame (1 MiB).
const maxFrameSize = 1 << 20

// bindingEncMode encodes binding sets deterministically so that equal sets
// produce byte-identical frames.
var bindingEncMode cbor.EncMode

var bindingDecMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}
	bindingEncMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:      cbor.DupMapKeyEnforcedAPF,
		IndefLength:    cbor.IndefLengthForbidden,
		IntDec:         cbor.IntDecConvertSignedOrFail,
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}
	bindingDecMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR decoder mode: %v", err))
	}
}

// MarshalBindings encodes set as canonical CBOR.
func MarshalBindings(set types.BindingSet) ([]byte, error) {
	data, err := bindingEncMode.Marshal(set)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode binding set").
			WithCause(err)
	}
	return data, nil
}

func UnmarshalBindings(data []byte) (types.BindingSet, error) {
	var set types.BindingSet
	if err := bindingDecMode.Unmarshal(data, &set); err != nil {
		return types.BindingSet{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to decode binding set").
			WithCause(err)
	}
	return set, nil
}

// EncodeFrame returns set as one length-prefixed CBOR frame.
func EncodeFrame(set types.BindingSet) ([]byte, error) {
	payload, err := MarshalBindings(set)
	if err != nil {
		return nil, err
	}
	if len(payload) > maxFrameSize {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("binding frame too large: %d > %d", len(payload), maxFrameSize))
	}
	frame := make([]byte, frameHeaderSize+len(payload))
	binary.BigEndian.PutUint32(frame[:frameHeaderSize], uint32(len(payload)))
	copy(frame[frameHeaderSize:], payload)
	return frame, nil
}

// DecodeFrame is the inverse of EncodeFrame. Trailing bytes are rejected.
func DecodeFrame(frame []byte) (types.BindingSet, error) {
	if len(frame) < frameHeaderSize {
		return types.BindingSet{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("binding frame truncated")
	}
	length := binary.BigEndian.Uint32(frame[:frameHeaderSize])
	if length == 0 || length > maxFrameSize {
		return types.BindingSet{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("binding frame length %d is invalid", length))
	}
	if uint32(len(frame)-frameHeaderSize) != length {
		return types.BindingSet{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("binding frame declares %d bytes, carries %d", length, len(frame)-frameHeaderSize))
	}
	return UnmarshalBindings(frame[frameHeaderSize:])
}
