// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nes

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/beevik/go2a03/cpu"
)

const currentSnapshotVersion = 1

const infoString = "go2a03 snapshot"

// Errors
var (
	ErrSnapshotInfo = errors.New("not a go2a03 snapshot")
	ErrSnapshotRAM  = errors.New("snapshot RAM has the wrong size")
)

type snapshot struct {
	Version int
	Info    string
	State   json.RawMessage
}

type consoleState struct {
	CPU       cpu.Snapshot
	Cycles    uint64
	RAM       []byte
	Cartridge []byte `json:",omitempty"`
}

// MakeSnapshot returns the console state as gzip-compressed JSON. The
// cartridge contents are included when the mapper is a CartridgeRAM.
func (c *Console) MakeSnapshot() ([]byte, error) {
	state := consoleState{
		CPU:    c.CPU.Snapshot(),
		Cycles: c.CPU.Cycles,
		RAM:    c.Bus.RAM[:],
	}
	if cart := c.Cartridge(); cart != nil {
		state.Cartridge = cart.Bytes()
	}

	stateJSON, err := json.Marshal(&state)
	if err != nil {
		return nil, err
	}
	snapJSON, err := json.Marshal(&snapshot{
		Version: currentSnapshotVersion,
		Info:    infoString,
		State:   json.RawMessage(stateJSON),
	})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(snapJSON); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LoadSnapshot replaces the console state with a snapshot produced by
// MakeSnapshot. The console is left untouched if the snapshot cannot be
// decoded.
func (c *Console) LoadSnapshot(snapBytes []byte) error {
	reader, err := gzip.NewReader(bytes.NewReader(snapBytes))
	if err != nil {
		return err
	}
	unpacked, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	var snap snapshot
	if err := json.Unmarshal(unpacked, &snap); err != nil {
		return err
	}
	if snap.Info != infoString {
		return ErrSnapshotInfo
	}
	if snap.Version != currentSnapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}

	var state consoleState
	if err := json.Unmarshal(snap.State, &state); err != nil {
		return err
	}
	if len(state.RAM) != len(c.Bus.RAM) {
		return ErrSnapshotRAM
	}

	c.CPU.Restore(state.CPU)
	c.CPU.Cycles = state.Cycles
	copy(c.Bus.RAM[:], state.RAM)
	if cart := c.Cartridge(); cart != nil && state.Cartridge != nil {
		copy(cart.Bytes(), state.Cartridge)
	}
	return nil
}
