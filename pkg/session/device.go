package session

import (
	"fmt"
	"strings"

	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed devices.yaml
var deviceCatalog []byte

// Device is an emulation profile applied to a browser context.
type Device struct {
	Name              string  `yaml:"name"`
	Width             int     `yaml:"width"`
	Height            int     `yaml:"height"`
	DeviceScaleFactor float64 `yaml:"deviceScaleFactor"`
	IsMobile          bool    `yaml:"isMobile"`
	HasTouch          bool    `yaml:"hasTouch"`
	UserAgent         string  `yaml:"userAgent"`
}

type catalog struct {
	Devices []Device `yaml:"devices"`
}

// Devices returns the embedded emulation catalog.
func Devices() ([]Device, error) {
	var c catalog
	if err := yaml.Unmarshal(deviceCatalog, &c); err != nil {
		return nil, fmt.Errorf("session: parse device catalog: %w", err)
	}
	return c.Devices, nil
}

// deviceFromConfig resolves the emulateDevice and deviceName keys into
// a profile. Emulation off means a nil device.
func deviceFromConfig(cfg deviceConfig) (*Device, error) {
	if !cfg.GetBool("emulateDevice", false) {
		return nil, nil
	}
	d, err := LookupDevice(cfg.Get("deviceName", "iPhone X"))
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// deviceConfig is the slice of the config store deviceFromConfig needs.
type deviceConfig interface {
	Get(key, fallback string) string
	GetBool(key string, fallback bool) bool
}

// LookupDevice finds a profile by name, case-insensitively.
func LookupDevice(name string) (Device, error) {
	devices, err := Devices()
	if err != nil {
		return Device{}, err
	}
	for _, d := range devices {
		if strings.EqualFold(d.Name, name) {
			return d, nil
		}
	}
	return Device{}, fmt.Errorf("session: unknown device %q", name)
}
