package homie

import (
	"fmt"
	"sort"
	"strings"
)

// Compile validates cfg and freezes it into a NodeDescription. It stops at
// the first invalid field and returns a *BuildError naming it.
func Compile(nodeID string, cfg NodeConfig) (*NodeDescription, error) {
	if err := validateID(nodeID, false); err != nil {
		return nil, buildErr("node-id", "%v", err)
	}

	n := &NodeDescription{
		id:    nodeID,
		nType: cfg.Type,
		name:  cfg.Name,
		index: make(map[string]int),
	}

	for _, p := range cfg.Properties {
		field := "properties[" + p.ID + "]"
		if err := validateID(p.ID, false); err != nil {
			return nil, buildErr(field, "%v", err)
		}
		if _, dup := n.index[p.ID]; dup {
			return nil, buildErr(field, "duplicate id")
		}
		if !p.Datatype.valid() {
			return nil, buildErr(field+".datatype", "unknown datatype %d", int(p.Datatype))
		}
		c, err := parseFormat(p.Datatype, p.Format)
		if err != nil {
			return nil, buildErr(field+".format", "%v", err)
		}
		if p.Unit != "" && !KnownUnit(p.Unit) {
			return nil, buildErr(field+".unit", "unknown unit %q", p.Unit)
		}
		if p.Default != "" {
			if _, err := c.decode(p.Default); err != nil {
				return nil, buildErr(field+".default", "%v", err)
			}
		}
		n.index[p.ID] = len(n.entries)
		n.entries = append(n.entries, entry{desc: p, c: c})
	}

	for _, a := range cfg.Actions {
		field := "actions[" + a.ID + "]"
		if err := validateID(a.ID, false); err != nil {
			return nil, buildErr(field, "%v", err)
		}
		if _, dup := n.index[a.ID]; dup {
			return nil, buildErr(field, "duplicate id")
		}
		if err := validateCommands(a.Commands); err != nil {
			return nil, buildErr(field+".commands", "%v", err)
		}
		p := a.Property()
		c, err := parseFormat(p.Datatype, p.Format)
		if err != nil {
			return nil, buildErr(field+".commands", "%v", err)
		}
		a.Commands = append([]string(nil), a.Commands...)
		n.index[a.ID] = len(n.entries)
		n.entries = append(n.entries, entry{desc: p, c: c, action: true})
		n.actions = append(n.actions, a)
	}

	if len(n.entries) == 0 {
		return nil, buildErr("properties", "node declares no properties or actions")
	}

	// sorted so the reported field does not depend on map order
	ids := make([]string, 0, len(cfg.Retained))
	for id := range cfg.Retained {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		e, ok := n.lookup(id)
		if !ok {
			return nil, buildErr("retained["+id+"]", "no such property")
		}
		if e.action {
			return nil, buildErr("retained["+id+"]", "actions are never retained")
		}
		e.desc.Retained = cfg.Retained[id]
	}

	return n, nil
}

func validateCommands(commands []string) error {
	if len(commands) == 0 {
		return fmt.Errorf("empty command set")
	}
	seen := make(map[string]bool, len(commands))
	for _, c := range commands {
		switch {
		case c == "":
			return fmt.Errorf("empty command")
		case strings.Contains(c, ","):
			return fmt.Errorf("command %q contains ','", c)
		case seen[c]:
			return fmt.Errorf("duplicate command %q", c)
		}
		seen[c] = true
	}
	return nil
}

// Build compiles cfg and attaches the node to dev. It returns the frozen
// description, a Publisher for outbound values and a Dispatcher that is
// already subscribed to the set topics of the node's settable properties and
// actions. With a nil sink no subscriptions are made.
func Build(dev *Device, nodeID string, cfg NodeConfig, sink Sink) (*NodeDescription, *Publisher, *Dispatcher, error) {
	if dev == nil {
		return nil, nil, nil, buildErr("device", "no device context")
	}

	desc, err := Compile(nodeID, cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	pub := newPublisher(dev, desc)
	disp, err := newDispatcher(dev, desc, sink)
	if err != nil {
		return nil, nil, nil, err
	}

	return desc, pub, disp, nil
}
