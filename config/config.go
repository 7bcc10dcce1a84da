// Package config reads device definition files: a device identity plus the
// list of typed nodes it carries.
//
//	device:
//	  id: living-room
//	  name: Living room
//	nodes:
//	  - id: ceiling
//	    type: dimmer
//	    range: {min: 0, max: 255}
//	  - type: numeric
//	    sensor: temperature
//
// Every node entry takes the fields of its type's configuration in package
// nodes. Omitted fields keep the type's defaults, unknown fields are errors.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/duke1swd/homie5nodes"
	"github.com/duke1swd/homie5nodes/nodes"
)

var (
	ErrUnknownType = errors.New("unknown node type")
	ErrDuplicateID = errors.New("duplicate node id")
	ErrNoNodes     = errors.New("device has no nodes")
)

// Device is a parsed device definition.
type Device struct {
	ID     string
	Name   string
	Domain string
	Nodes  []Node
}

// Node is one entry of the nodes list. Config holds a pointer to the
// type's configuration struct.
type Node struct {
	ID     string
	Config nodes.Configurer
}

func (n Node) Kind() nodes.Kind { return n.Config.Kind() }

type file struct {
	Device struct {
		ID     string `yaml:"id"`
		Name   string `yaml:"name"`
		Domain string `yaml:"domain"`
	} `yaml:"device"`
	Nodes []yaml.Node `yaml:"nodes"`
}

// Load reads and parses the definition at path.
func Load(path string) (*Device, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Parse parses a definition. It checks identifiers and node types but does
// not compile the nodes.
func Parse(data []byte) (*Device, error) {
	var f file
	if err := strictDecode(data, &f); err != nil {
		return nil, err
	}

	if !homie.ValidID(f.Device.ID) {
		return nil, fmt.Errorf("device.id %q: %w", f.Device.ID, homie.ErrInvalidConfig)
	}
	if len(f.Nodes) == 0 {
		return nil, ErrNoNodes
	}

	d := &Device{ID: f.Device.ID, Name: f.Device.Name, Domain: f.Device.Domain}
	seen := make(map[string]bool, len(f.Nodes))
	for i := range f.Nodes {
		n, err := parseNode(&f.Nodes[i])
		if err != nil {
			return nil, fmt.Errorf("nodes[%d] (line %d): %w", i, f.Nodes[i].Line, err)
		}
		if seen[n.ID] {
			return nil, fmt.Errorf("nodes[%d] (line %d): %q: %w", i, f.Nodes[i].Line, n.ID, ErrDuplicateID)
		}
		seen[n.ID] = true
		d.Nodes = append(d.Nodes, n)
	}
	return d, nil
}

// parseNode splits the id and type keys off a node entry and decodes the
// rest into the default configuration of that type.
func parseNode(v *yaml.Node) (Node, error) {
	if v.Kind != yaml.MappingNode {
		return Node{}, fmt.Errorf("node entry must be a mapping")
	}

	var id, typ string
	rest := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i := 0; i+1 < len(v.Content); i += 2 {
		k, val := v.Content[i], v.Content[i+1]
		switch k.Value {
		case "id":
			id = val.Value
		case "type":
			typ = val.Value
		default:
			rest.Content = append(rest.Content, k, val)
		}
	}

	kind, ok := nodes.ParseKind(typ)
	if !ok {
		return Node{}, fmt.Errorf("%q: %w", typ, ErrUnknownType)
	}
	if id == "" {
		id = kind.DefaultID()
	}
	if !homie.ValidID(id) {
		return Node{}, fmt.Errorf("id %q: %w", id, homie.ErrInvalidConfig)
	}

	cfg, _ := nodes.NewConfig(kind)
	if len(rest.Content) > 0 {
		// node.Decode does not honour KnownFields, so go through bytes
		data, err := yaml.Marshal(rest)
		if err != nil {
			return Node{}, err
		}
		if err := strictDecode(data, cfg); err != nil {
			return Node{}, fmt.Errorf("%s %q: %w", kind, id, err)
		}
	}
	return Node{ID: id, Config: cfg}, nil
}

func strictDecode(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(out)
}
