package printer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	logInternal "github.com/AlexStarov/labelprinter-GoLang-lib/log"
	"github.com/AlexStarov/labelprinter-GoLang-lib/util"
)

// GATT characteristics of the wireless labelers.
const (
	WriteCharacteristicUUID = "be3dd651-2b3d-42f1-99c1-f0f749dd0678"
	ReadCharacteristicUUID  = "be3dd652-2b3d-42f1-99c1-f0f749dd0678"

	ManufacturerNameUUID = "2a29"
	ModelNumberUUID      = "2a24"
	SerialNumberUUID     = "2a25"
	DeviceNameUUID       = "2a00"
)

var (
	bleEndBytes   = []byte{0x12, 0x34}
	bleStartBytes = []byte{0xFF, 0xF0, 0x12, 0x34}
)

// DefaultBLEChunkSize is used when the link reports no MTU.
const DefaultBLEChunkSize = 498

// maxBLESendAttempts bounds reconnects within one command.
const maxBLESendAttempts = 2

// BLEHeader returns the nine byte frame header announcing body.
func BLEHeader(body []byte) []byte {
	h := make([]byte, 0, 9)
	h = append(h, bleStartBytes...)
	h = append(h, util.IntLowHigh(len(body), 4)...)
	return append(h, util.Checksum8(h))
}

// BLEChunks splits body into chunks of chunkSize bytes and terminates the
// last one with the end marker. An empty body yields the end marker alone.
func BLEChunks(body []byte, chunkSize int) ([][]byte, error) {
	if chunkSize < 1 {
		return nil, fmt.Errorf("%w: chunk size %d", ErrInvalidArgument, chunkSize)
	}
	chunks := util.Batched(body, chunkSize)
	if len(chunks) == 0 {
		return [][]byte{bytes.Clone(bleEndBytes)}, nil
	}
	last := len(chunks) - 1
	chunks[last] = append(bytes.Clone(chunks[last]), bleEndBytes...)
	return chunks, nil
}

// GATTClient is the part of a BLE central connection the labeler needs.
type GATTClient interface {
	Connected() bool
	Reconnect(ctx context.Context) error
	MTU() int
	WriteCharacteristic(uuid string, data []byte, withResponse bool) error
	ReadCharacteristic(uuid string) ([]byte, error)
	Close() error
}

// DeviceInfo holds the standard device information characteristics.
type DeviceInfo struct {
	Manufacturer string
	Model        string
	SerialNumber string
	DeviceName   string
}

// Product joins the device name and the model number.
func (i DeviceInfo) Product() string {
	return strings.TrimSpace(i.DeviceName + " " + i.Model)
}

// BLEConn frames whole commands over a GATTClient. Every Write carries one
// complete command; Read returns the content of the read characteristic.
type BLEConn struct {
	c   GATTClient
	ctx context.Context
	log *zap.SugaredLogger

	mu     sync.Mutex
	closed bool
}

// NewBLEConn wraps an established connection. ctx bounds reconnects.
func NewBLEConn(ctx context.Context, c GATTClient) *BLEConn {
	return &BLEConn{c: c, ctx: ctx, log: logInternal.Named("ble").Sugar()}
}

// Info reads the device information characteristics.
func (b *BLEConn) Info() (DeviceInfo, error) {
	var info DeviceInfo
	for _, f := range []struct {
		uuid string
		dst  *string
	}{
		{ManufacturerNameUUID, &info.Manufacturer},
		{ModelNumberUUID, &info.Model},
		{SerialNumberUUID, &info.SerialNumber},
		{DeviceNameUUID, &info.DeviceName},
	} {
		v, err := b.c.ReadCharacteristic(f.uuid)
		if err != nil {
			return DeviceInfo{}, fmt.Errorf("read characteristic %s: %w", f.uuid, err)
		}
		*f.dst = string(v)
	}
	return info, nil
}

// Execute sends one framed command. Chunks are written with response when
// one is expected, and the read characteristic is returned.
func (b *BLEConn) Execute(ctx context.Context, cmd []byte, response bool) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrNotConnected
	}

	var err error
	for attempt := 1; attempt <= maxBLESendAttempts; attempt++ {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		if !b.c.Connected() {
			b.log.Info("connection lost, reconnecting")
			if err = b.c.Reconnect(ctx); err != nil {
				return nil, fmt.Errorf("reconnect: %w", err)
			}
		}
		if err = b.send(cmd, response); err == nil {
			break
		}
		if b.c.Connected() {
			return nil, err
		}
		b.log.Warnf("send failed on a dropped link (attempt %d): %v", attempt, err)
	}
	if err != nil {
		return nil, err
	}
	if !response {
		return nil, nil
	}
	data, err := b.c.ReadCharacteristic(ReadCharacteristicUUID)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return data, nil
}

// send writes header and chunks. Nothing of a failed send is kept, so a
// retry starts again from the header.
func (b *BLEConn) send(cmd []byte, response bool) error {
	size := b.c.MTU() - 2
	if size < 1 {
		size = DefaultBLEChunkSize
	}
	chunks, err := BLEChunks(cmd, size)
	if err != nil {
		return err
	}
	b.log.Debugf("sending %d byte command in %d chunks", len(cmd), len(chunks))
	if err := b.c.WriteCharacteristic(WriteCharacteristicUUID, BLEHeader(cmd), false); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, chunk := range chunks {
		if err := b.c.WriteCharacteristic(WriteCharacteristicUUID, chunk, response); err != nil {
			return fmt.Errorf("write chunk %d/%d: %w", i+1, len(chunks), err)
		}
	}
	return nil
}

// Write sends p as one command.
func (b *BLEConn) Write(p []byte) (int, error) {
	if _, err := b.Execute(b.ctx, p, false); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Read copies the current value of the read characteristic into p.
func (b *BLEConn) Read(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return 0, ErrNotConnected
	}
	data, err := b.c.ReadCharacteristic(ReadCharacteristicUUID)
	if err != nil {
		return 0, fmt.Errorf("read response: %w", err)
	}
	return copy(p, data), nil
}

func (b *BLEConn) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	if err := b.c.Close(); err != nil && !errors.Is(err, ErrNotConnected) {
		return err
	}
	return nil
}
