// Command hcsim simulates a homecontrol device described by a YAML file.
// It announces every node over MQTT and answers set commands by echoing the
// accepted value back as target and state, the way a well behaved device
// would.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/duke1swd/homie5nodes/config"
)

// environment fallbacks for the flags
const (
	envBroker = "MQTTBROKER"
	envDomain = "HOMIETOPIC"
)

type options struct {
	configFile string
	broker     string
	domain     string
	debug      bool
}

func newRootCmd() *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:           "hcsim",
		Short:         "Simulate a homecontrol device over MQTT",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&o.configFile, "config", "c", "device.yaml", "device definition file")
	root.PersistentFlags().StringVar(&o.domain, "domain", os.Getenv(envDomain), "homie domain, overrides the file (env "+envDomain+")")
	root.PersistentFlags().BoolVarP(&o.debug, "debug", "d", false, "debug logging")

	run := newRunCmd(o)
	run.Flags().StringVar(&o.broker, "broker", os.Getenv(envBroker), "MQTT broker URL (env "+envBroker+")")

	root.AddCommand(run, newValidateCmd(o))
	return root
}

func (o *options) load() (*config.Device, error) {
	def, err := config.Load(o.configFile)
	if err != nil {
		return nil, err
	}
	if o.domain != "" {
		def.Domain = o.domain
	}
	return def, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
