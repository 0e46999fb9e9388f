package gm65d

import "github.com/mdouchement/gm65d/gm65"

// OpenDevice opens the configured port, or discovers the module by its USB identifiers when none is set.
func OpenDevice(d Device) (*gm65.Controller, error) {
	if d.Port == "" {
		return gm65.OpenAuto(d.Options()...)
	}

	return gm65.Open(d.Port, d.Options()...)
}
