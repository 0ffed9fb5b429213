package printer

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/go-ble/ble"

	logInternal "github.com/AlexStarov/labelprinter-GoLang-lib/log"
)

// GoBLEClient adapts a go-ble central connection to GATTClient. The
// platform HCI device must have been installed with ble.SetDefaultDevice.
type GoBLEClient struct {
	addr ble.Addr

	mu        sync.Mutex
	client    ble.Client
	profile   *ble.Profile
	mtu       int
	connected bool
}

// DialBLE connects to the labeler at addr and discovers its profile.
func DialBLE(ctx context.Context, addr string) (*GoBLEClient, error) {
	g := &GoBLEClient{addr: ble.NewAddr(addr)}
	if err := g.Reconnect(ctx); err != nil {
		return nil, err
	}
	return g, nil
}

// OpenBLE dials addr and returns a transport for the legacy command stream,
// along with the device information.
func OpenBLE(ctx context.Context, addr string) (*BLEConn, DeviceInfo, error) {
	g, err := DialBLE(ctx, addr)
	if err != nil {
		return nil, DeviceInfo{}, err
	}
	conn := NewBLEConn(ctx, g)
	info, err := conn.Info()
	if err != nil {
		conn.Close()
		return nil, DeviceInfo{}, err
	}
	logInternal.S().Infof("BLE labeler %s: %s %s (serial %s)", addr, info.Manufacturer, info.Product(), info.SerialNumber)
	return conn, info, nil
}

func (g *GoBLEClient) Reconnect(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client != nil {
		_ = g.client.CancelConnection()
		g.client = nil
	}
	client, err := ble.Dial(ctx, g.addr)
	if err != nil {
		return fmt.Errorf("BLE dial %s: %w", g.addr, err)
	}
	profile, err := client.DiscoverProfile(true)
	if err != nil {
		_ = client.CancelConnection()
		return fmt.Errorf("BLE discover %s: %w", g.addr, err)
	}
	mtu, err := client.ExchangeMTU(ble.MaxMTU)
	if err != nil {
		logInternal.S().Warnf("BLE MTU exchange with %s failed, using default: %v", g.addr, err)
		mtu = ble.DefaultMTU
	}

	g.client, g.profile, g.mtu, g.connected = client, profile, mtu, true
	go g.watch(client)
	return nil
}

func (g *GoBLEClient) watch(client ble.Client) {
	<-client.Disconnected()
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client == client {
		g.connected = false
	}
}

func (g *GoBLEClient) Connected() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.connected
}

func (g *GoBLEClient) MTU() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mtu
}

func (g *GoBLEClient) characteristic(uuid string) (ble.Client, *ble.Characteristic, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client == nil || !g.connected {
		return nil, nil, ErrNotConnected
	}
	u, err := ble.Parse(strings.ToLower(uuid))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: uuid %q: %v", ErrInvalidArgument, uuid, err)
	}
	c := g.profile.FindCharacteristic(ble.NewCharacteristic(u))
	if c == nil {
		return nil, nil, fmt.Errorf("%w: characteristic %s not offered", ErrUnknownDevice, uuid)
	}
	return g.client, c, nil
}

func (g *GoBLEClient) WriteCharacteristic(uuid string, data []byte, withResponse bool) error {
	client, c, err := g.characteristic(uuid)
	if err != nil {
		return err
	}
	return client.WriteCharacteristic(c, data, !withResponse)
}

func (g *GoBLEClient) ReadCharacteristic(uuid string) ([]byte, error) {
	client, c, err := g.characteristic(uuid)
	if err != nil {
		return nil, err
	}
	return client.ReadCharacteristic(c)
}

func (g *GoBLEClient) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client == nil {
		return nil
	}
	err := g.client.CancelConnection()
	g.client, g.connected = nil, false
	return err
}
