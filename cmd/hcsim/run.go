package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/duke1swd/homie5nodes"
	"github.com/duke1swd/homie5nodes/config"
	"github.com/duke1swd/homie5nodes/internal/logging"
	"github.com/duke1swd/homie5nodes/mqtt"
)

const commandQueue = 64

func newRunCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Connect to the broker, announce the device and echo commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := logging.FromEnv(o.debug)
			def, err := o.load()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			will := homie.LastWill(def.Domain, def.ID)
			client, err := mqtt.Connect(ctx, mqtt.Options{
				Broker:   o.broker,
				ClientID: mqtt.NewClientID(def.ID),
				Will:     &will,
				Logger:   log,
			})
			if err != nil {
				return err
			}
			defer client.Close()

			sim, err := newSimulator(def, client, log)
			if err != nil {
				return err
			}
			if err := sim.start(); err != nil {
				return errors.Join(err, sim.stop())
			}
			log.Info("device ready", "root", sim.dev.Root(), "nodes", len(sim.pubs))

			sim.serve(ctx)
			return sim.stop()
		},
	}
}

// simulator owns one device and all of its nodes. Commands from every node
// arrive on a single queue and are answered from serve, never from the
// transport's delivery goroutine.
type simulator struct {
	dev   *homie.Device
	log   *slog.Logger
	descs []*homie.NodeDescription
	pubs  map[string]*homie.Publisher
	disps []*homie.Dispatcher
	cmds  chan homie.Command
}

func newSimulator(def *config.Device, t homie.Transport, log *slog.Logger) (*simulator, error) {
	dev, err := homie.NewDevice(def.Domain, def.ID, t, homie.WithName(deviceName(def)), homie.WithLogger(log))
	if err != nil {
		return nil, err
	}

	s := &simulator{
		dev:  dev,
		log:  dev.Logger(),
		pubs: make(map[string]*homie.Publisher, len(def.Nodes)),
		cmds: make(chan homie.Command, commandQueue),
	}
	// DropOldest keeps Close from waiting on a full queue nobody drains.
	sink := homie.ChannelSink(s.cmds, homie.DropOldest)
	for _, n := range def.Nodes {
		nc, err := n.Config.NodeConfig()
		if err != nil {
			return nil, errors.Join(fmt.Errorf("node %q: %w", n.ID, err), s.closeNodes())
		}
		desc, pub, disp, err := homie.Build(dev, n.ID, nc, sink)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("node %q: %w", n.ID, err), s.closeNodes())
		}
		s.descs = append(s.descs, desc)
		s.pubs[n.ID] = pub
		s.disps = append(s.disps, disp)
	}
	return s, nil
}

// start runs the announcement sequence: init, $description, node attributes,
// default values, ready.
func (s *simulator) start() error {
	if err := s.dev.PublishState(homie.StateInit); err != nil {
		return err
	}
	if err := s.dev.PublishDescription(s.descs...); err != nil {
		return err
	}
	for _, d := range s.descs {
		pub := s.pubs[d.ID()]
		if err := pub.Announce(); err != nil {
			return err
		}
		if err := pub.PublishDefaults(); err != nil {
			return err
		}
	}
	return s.dev.PublishState(homie.StateReady)
}

// serve answers commands until ctx ends.
func (s *simulator) serve(ctx context.Context) {
	errs := make(chan error, commandQueue)
	for _, d := range s.disps {
		go func(d *homie.Dispatcher) {
			for err := range d.Errors() {
				select {
				case errs <- err:
				default:
				}
			}
		}(d)
	}

	for {
		select {
		case c := <-s.cmds:
			if err := s.echo(c); err != nil {
				s.log.Error("echo failed", "node", c.Node, "property", c.Property, "error", err)
			}
		case err := <-errs:
			s.log.Debug("command rejected", "error", err)
		case <-ctx.Done():
			return
		}
	}
}

// echo confirms an accepted command: retained properties get their target
// and then their new state, actions are reported as events.
func (s *simulator) echo(c homie.Command) error {
	pub, ok := s.pubs[c.Node]
	if !ok {
		return fmt.Errorf("command for unknown node %q", c.Node)
	}
	s.log.Debug("command", "node", c.Node, "property", c.Property, "payload", c.Payload)

	p, _ := pub.Description().Property(c.Property)
	if p.Retained {
		if err := pub.PublishTarget(c.Property, c.Value); err != nil {
			return err
		}
	}
	return pub.Publish(c.Property, c.Value)
}

func (s *simulator) closeNodes() error {
	var errs []error
	for _, d := range s.disps {
		errs = append(errs, d.Close())
	}
	return errors.Join(errs...)
}

// stop releases the subscriptions and marks the device disconnected.
func (s *simulator) stop() error {
	return errors.Join(s.closeNodes(), s.dev.PublishState(homie.StateDisconnected))
}
