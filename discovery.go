package homie

import (
	"bytes"
	"encoding/json"
	"hash/fnv"
	"strconv"
	"strings"
)

// attributes returns the retained discovery messages of a node: node level
// $name, $type and $properties, then per property $name, $datatype, $format,
// $unit, $settable and $retained. Optional attributes are left out when empty.
func attributes(dev *Device, n *NodeDescription) []Message {
	var msgs []Message
	add := func(payload string, parts ...string) {
		msgs = append(msgs, Message{Topic: dev.Topic(parts...), Payload: payload, Retained: true})
	}

	if n.name != "" {
		add(n.name, n.id, "$name")
	}
	if n.nType != "" {
		add(n.nType, n.id, "$type")
	}
	add(strings.Join(n.IDs(), ","), n.id, "$properties")

	for _, e := range n.entries {
		p := e.desc
		if p.Name != "" {
			add(p.Name, n.id, p.ID, "$name")
		}
		add(p.Datatype.String(), n.id, p.ID, "$datatype")
		if p.Format != "" {
			add(p.Format, n.id, p.ID, "$format")
		}
		if p.Unit != "" {
			add(p.Unit, n.id, p.ID, "$unit")
		}
		add(strconv.FormatBool(p.Settable), n.id, p.ID, "$settable")
		add(strconv.FormatBool(p.Retained), n.id, p.ID, "$retained")
	}
	return msgs
}

type field struct {
	key string
	val any
}

// object is a JSON object that keeps its key order.
type object []field

func (o object) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := json.Marshal(f.key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.val)
		if err != nil {
			return nil, err
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func (n *NodeDescription) object() object {
	props := make(object, 0, len(n.entries))
	for _, e := range n.entries {
		p := e.desc
		po := object{}
		if p.Name != "" {
			po = append(po, field{"name", p.Name})
		}
		po = append(po, field{"datatype", p.Datatype.String()})
		if p.Format != "" {
			po = append(po, field{"format", p.Format})
		}
		if p.Unit != "" {
			po = append(po, field{"unit", p.Unit})
		}
		po = append(po, field{"settable", p.Settable}, field{"retained", p.Retained})
		props = append(props, field{p.ID, po})
	}

	o := object{}
	if n.name != "" {
		o = append(o, field{"name", n.name})
	}
	if n.nType != "" {
		o = append(o, field{"type", n.nType})
	}
	return append(o, field{"properties", props})
}

// MarshalJSON renders the node as it appears in a $description document.
func (n *NodeDescription) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.object())
}

// MarshalDeviceDescription renders the Homie 5 $description document for a
// device made of nodes. Nodes and properties keep their order. The version
// field is a hash of the rest of the document, so it changes whenever the
// description does.
func MarshalDeviceDescription(name string, nodes ...*NodeDescription) ([]byte, error) {
	seen := make(map[string]bool, len(nodes))
	no := make(object, 0, len(nodes))
	for _, n := range nodes {
		if n == nil {
			return nil, buildErr("nodes", "nil node description")
		}
		if seen[n.id] {
			return nil, buildErr("nodes["+n.id+"]", "duplicate node id")
		}
		seen[n.id] = true
		no = append(no, field{n.id, n.object()})
	}

	body := object{{"homie", ProtocolVersion}}
	if name != "" {
		body = append(body, field{"name", name})
	}
	body = append(body, field{"nodes", no})

	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	h := fnv.New32a()
	h.Write(b)

	doc := object{{"homie", ProtocolVersion}, {"version", int64(h.Sum32())}}
	return json.Marshal(append(doc, body[1:]...))
}
