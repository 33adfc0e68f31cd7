// Package smarthome tracks the on/off state of named devices. It is an
// in-memory stand-in for a real home-automation bridge; the dispatcher only
// depends on the Set/State surface.
package smarthome

import (
	"log"
	"sync"
)

// Controller holds device states behind a RWMutex. Unknown devices are
// created on first use.
type Controller struct {
	mu      sync.RWMutex
	devices map[string]bool
}

// NewController creates an empty device controller
func NewController() *Controller {
	return &Controller{
		devices: make(map[string]bool),
	}
}

// Set switches a device on or off
func (c *Controller) Set(device string, on bool) {
	c.mu.Lock()
	c.devices[device] = on
	c.mu.Unlock()

	state := "off"
	if on {
		state = "on"
	}
	log.Printf("🏠 [SMARTHOME] %s -> %s", device, state)
}

// State reports a device's current state and whether it is known
func (c *Controller) State(device string) (bool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	on, known := c.devices[device]
	return on, known
}

// Devices returns a snapshot of all known device states
func (c *Controller) Devices() map[string]bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]bool, len(c.devices))
	for name, on := range c.devices {
		out[name] = on
	}
	return out
}
