package printer

import (
	"fmt"
	"sync"

	"github.com/google/gousb"

	logInternal "github.com/AlexStarov/labelprinter-GoLang-lib/log"
)

type usbConn struct {
	ctx  *gousb.Context
	dev  *gousb.Device
	cfg  *gousb.Config
	intf *gousb.Interface
	out  *gousb.OutEndpoint
	in   *gousb.InEndpoint

	closeOnce sync.Once
}

// OpenUSB opens the first Dymo device matching one of the product ids of
// cfg. The kernel driver is detached while the transport is open. Every
// resource acquired is released again if setup fails.
func OpenUSB(cfg DeviceConfig) (Transport, error) {
	if len(cfg.ProductIDs) == 0 {
		return nil, fmt.Errorf("%w: %s has no USB product id", ErrUnknownDevice, cfg.Name)
	}
	var lastErr error
	for _, pid := range cfg.ProductIDs {
		t, err := OpenUSBDevice(VendorDymo, pid)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// OpenUSBDevice opens vendorID:productID and claims its printer interface,
// falling back to the HID interface.
func OpenUSBDevice(vendorID, productID gousb.ID) (Transport, error) {
	ctx := gousb.NewContext()
	dev, err := ctx.OpenDeviceWithVIDPID(vendorID, productID)
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("open usb %s:%s: %w", vendorID, productID, err)
	}
	if dev == nil {
		ctx.Close()
		return nil, fmt.Errorf("%w: usb %s:%s not found", ErrUnknownDevice, vendorID, productID)
	}

	if err := dev.SetAutoDetach(true); err != nil {
		logInternal.S().Debugf("usb auto detach unavailable: %v", err)
	}

	cfgNum, err := dev.ActiveConfigNum()
	if err != nil {
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("usb active config: %w", err)
	}
	cfg, err := dev.Config(cfgNum)
	if err != nil {
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("usb config %d: %w", cfgNum, err)
	}

	intfNum, alt, err := findInterface(cfg.Desc)
	if err != nil {
		cfg.Close()
		dev.Close()
		ctx.Close()
		return nil, err
	}
	intf, err := cfg.Interface(intfNum, alt)
	if err != nil {
		cfg.Close()
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("usb interface %d: %w", intfNum, err)
	}

	conn := &usbConn{ctx: ctx, dev: dev, cfg: cfg, intf: intf}
	for _, ep := range intf.Setting.Endpoints {
		switch {
		case ep.Direction == gousb.EndpointDirectionOut && conn.out == nil:
			conn.out, err = intf.OutEndpoint(ep.Number)
		case ep.Direction == gousb.EndpointDirectionIn && conn.in == nil:
			conn.in, err = intf.InEndpoint(ep.Number)
		}
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("usb endpoint %s: %w", ep, err)
		}
	}
	if conn.out == nil || conn.in == nil {
		conn.Close()
		return nil, fmt.Errorf("%w: usb interface %d lacks bulk endpoints", ErrUnknownDevice, intfNum)
	}

	logInternal.S().Debugf("usb %s:%s opened on interface %d", vendorID, productID, intfNum)
	return conn, nil
}

func findInterface(desc gousb.ConfigDesc) (int, int, error) {
	for _, class := range []gousb.Class{PrinterInterfaceClass, HIDInterfaceClass} {
		for _, intf := range desc.Interfaces {
			for _, alt := range intf.AltSettings {
				if alt.Class == class {
					return intf.Number, alt.Alternate, nil
				}
			}
		}
	}
	return 0, 0, fmt.Errorf("%w: no printer or HID interface", ErrUnknownDevice)
}

func (u *usbConn) Read(p []byte) (int, error) {
	if u.in != nil {
		return u.in.Read(p)
	}
	return 0, fmt.Errorf("%w: usb read endpoint", ErrNotConnected)
}

func (u *usbConn) Write(p []byte) (int, error) {
	return u.out.Write(p)
}

func (u *usbConn) Close() error {
	u.closeOnce.Do(func() {
		if u.intf != nil {
			u.intf.Close()
		}
		if u.cfg != nil {
			u.cfg.Close()
		}
		if u.dev != nil {
			u.dev.Close()
		}
		if u.ctx != nil {
			u.ctx.Close()
		}
	})
	return nil
}
