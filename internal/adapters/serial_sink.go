package adapters

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/goburrow/serial"
	"github.com/rs/zerolog/log"

	"pinball-hwbind/internal/ports"
	"pinball-hwbind/internal/shared"
	"pinball-hwbind/internal/types"
)

const (
	DefaultSerialBaud    = 921600
	DefaultSerialTimeout = 2 * time.Second
)

// SerialOpener opens one serial port for writing.
type SerialOpener func(config *serial.Config) (io.WriteCloser, error)

// SerialSinkAdapter hands a validated binding set to the boards over the
// serial ports named in the platform namespace of the machine config.
type SerialSinkAdapter struct {
	Open    SerialOpener
	Timeout time.Duration
}

func NewSerialSinkAdapter() SerialSinkAdapter {
	return SerialSinkAdapter{
		Open:    openSerialPort,
		Timeout: DefaultSerialTimeout,
	}
}

func openSerialPort(config *serial.Config) (io.WriteCloser, error) {
	return serial.Open(config)
}

// serialOptions are the transport keys read from the platform namespace.
type serialOptions struct {
	Ports []string
	Baud  int
	Debug bool
}

func (a SerialSinkAdapter) Submit(ctx context.Context, set types.BindingSet) error {
	if !set.Validated {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("refusing to submit unvalidated binding set " + set.ID)
	}
	if a.Open == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("serial sink requires a port opener")
	}
	options, err := parseSerialOptions(set.Platform, set.Passthrough)
	if err != nil {
		return err
	}
	frame, err := EncodeFrame(set)
	if err != nil {
		return err
	}
	for _, port := range options.Ports {
		if err := ctx.Err(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg("binding submission canceled").
				WithCause(err)
		}
		if err := a.send(port, options, frame); err != nil {
			return err
		}
		log.Info().
			Str("port", port).
			Str("binding_id", set.ID).
			Int("bytes", len(frame)).
			Msg("binding frame sent")
	}
	return nil
}

func (a SerialSinkAdapter) send(port string, options serialOptions, frame []byte) error {
	conn, err := a.Open(&serial.Config{
		Address:  port,
		BaudRate: options.Baud,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
		Timeout:  a.Timeout,
	})
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to open serial port " + port).
			WithCause(shared.PortError(port, err))
	}
	defer conn.Close()

	if options.Debug {
		log.Debug().Str("port", port).Str("frame", hex.EncodeToString(frame)).Msg("sending")
	}
	written, err := conn.Write(frame)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write to serial port " + port).
			WithCause(shared.PortError(port, err))
	}
	if written != len(frame) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("short write to serial port %s: %d of %d bytes", port, written, len(frame)))
	}
	return nil
}

func parseSerialOptions(platform string, passthrough map[string]any) (serialOptions, error) {
	options := serialOptions{Baud: DefaultSerialBaud}
	switch raw := passthrough["ports"].(type) {
	case string:
		options.Ports = shared.SplitList(raw)
	case []any:
		for _, item := range raw {
			options.Ports = append(options.Ports, shared.SplitList(fmt.Sprint(item))...)
		}
	case []string:
		for _, item := range raw {
			options.Ports = append(options.Ports, shared.SplitList(item)...)
		}
	}
	if len(options.Ports) == 0 {
		return serialOptions{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("platform namespace %q lists no serial ports", platform))
	}
	if raw, ok := passthrough["baud"]; ok {
		baud, err := strconv.Atoi(strings.TrimSpace(fmt.Sprint(raw)))
		if err != nil || baud <= 0 {
			return serialOptions{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("platform namespace %q has invalid baud %v", platform, raw))
		}
		options.Baud = baud
	}
	if raw, ok := passthrough["debug"]; ok {
		debug, isBool := raw.(bool)
		if !isBool {
			debug = strings.EqualFold(strings.TrimSpace(fmt.Sprint(raw)), "true")
		}
		options.Debug = debug
	}
	return options, nil
}

var _ ports.DriverSinkPort = SerialSinkAdapter{}
