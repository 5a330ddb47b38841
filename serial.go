// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.14
//

package govlbl

import (
	"fmt"
	"io"
	"strings"

	"go.bug.st/serial"
)

// PortOpt contains the serial line settings of a live observation stream
type PortOpt struct {
	BaudRate int
	DataBits int
	StopBits int
	Parity   string // N, E or O
}

func NewPortOpt() *PortOpt {
	return &PortOpt{
		BaudRate: 9600,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
	}
}

// Mode converts the settings to the go.bug.st/serial mode
func (o *PortOpt) Mode() (*serial.Mode, error) {
	m := &serial.Mode{
		BaudRate: o.BaudRate,
		DataBits: o.DataBits,
	}
	if m.BaudRate <= 0 {
		return nil, fmt.Errorf("invalid baud rate %d", o.BaudRate)
	}
	if m.DataBits < 5 || m.DataBits > 8 {
		return nil, fmt.Errorf("invalid data bits %d: must be between 5 and 8", o.DataBits)
	}
	switch o.StopBits {
	case 1:
		m.StopBits = serial.OneStopBit
	case 2:
		m.StopBits = serial.TwoStopBits
	default:
		return nil, fmt.Errorf("invalid stop bits %d: supported values are 1 or 2", o.StopBits)
	}
	switch strings.ToUpper(strings.TrimSpace(o.Parity)) {
	case "", "N", "NONE":
		m.Parity = serial.NoParity
	case "E", "EVEN":
		m.Parity = serial.EvenParity
	case "O", "ODD":
		m.Parity = serial.OddParity
	default:
		return nil, fmt.Errorf("unsupported parity %q: expected N, E, or O", o.Parity)
	}
	return m, nil
}

// OpenPort opens a serial port delivering observation records line by line
func OpenPort(path string, opt *PortOpt) (io.ReadCloser, error) {
	if opt == nil {
		opt = NewPortOpt()
	}
	mode, err := opt.Mode()
	if err != nil {
		return nil, err
	}
	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return port, nil
}
