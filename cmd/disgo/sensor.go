package main

import (
	"github.com/spf13/cobra"

	"github.com/tturner/disgo/internal/app"
)

type sensorFlags struct {
	sensor   string
	iface    string
	sudo     bool
	insecure bool
}

func addSensorFlags(cmd *cobra.Command, f *sensorFlags) {
	cmd.Flags().StringVar(&f.sensor, "sensor", "", "Sensor: local, user@host[:port] or ssh://user@host?key=... (default from config)")
	cmd.Flags().StringVar(&f.iface, "capture-interface", "", "Interface to capture on (default from config, else any)")
	cmd.Flags().BoolVar(&f.sudo, "sudo", false, "Run tcpdump on the sensor through sudo -n")
	cmd.Flags().BoolVar(&f.insecure, "insecure", false, "Skip SSH host key verification")
}

func (f sensorFlags) options() app.SensorOptions {
	return app.SensorOptions{
		Sensor:    f.sensor,
		Interface: f.iface,
		Sudo:      f.sudo,
		Insecure:  f.insecure,
	}
}
