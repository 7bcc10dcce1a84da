package homie

// NodeConfig is the generic input to the node builder. The per-type
// configurations in package nodes produce one of these.
type NodeConfig struct {
	Type       string // node type tag, e.g. homie-homecontrol/v1/type=switch
	Name       string
	Properties []PropertyDescriptor
	Actions    []ActionDescriptor

	// Retained overrides the retained flag of individual properties by id.
	// Actions are never retained and can not be overridden.
	Retained map[string]bool
}

type entry struct {
	desc   PropertyDescriptor
	c      constraint
	action bool
}

// NodeDescription is the compiled, immutable schema of one node. Properties
// keep their declaration order, followed by the actions in theirs.
type NodeDescription struct {
	id      string
	nType   string
	name    string
	entries []entry
	actions []ActionDescriptor
	index   map[string]int
}

func (n *NodeDescription) ID() string   { return n.id }
func (n *NodeDescription) Type() string { return n.nType }
func (n *NodeDescription) Name() string { return n.name }

// Properties returns the declared properties, actions excluded.
func (n *NodeDescription) Properties() []PropertyDescriptor {
	var out []PropertyDescriptor
	for _, e := range n.entries {
		if !e.action {
			out = append(out, e.desc)
		}
	}
	return out
}

// Actions returns copies of the declared actions.
func (n *NodeDescription) Actions() []ActionDescriptor {
	out := make([]ActionDescriptor, len(n.actions))
	for i, a := range n.actions {
		a.Commands = append([]string(nil), a.Commands...)
		out[i] = a
	}
	return out
}

// IDs returns every property and action id in publication order.
func (n *NodeDescription) IDs() []string {
	out := make([]string, len(n.entries))
	for i, e := range n.entries {
		out[i] = e.desc.ID
	}
	return out
}

// Property looks up a property or the enum property carrying an action.
func (n *NodeDescription) Property(id string) (PropertyDescriptor, bool) {
	i, ok := n.index[id]
	if !ok {
		return PropertyDescriptor{}, false
	}
	return n.entries[i].desc, true
}

// IsAction reports whether id names an action of this node.
func (n *NodeDescription) IsAction(id string) bool {
	i, ok := n.index[id]
	return ok && n.entries[i].action
}

func (n *NodeDescription) lookup(id string) (*entry, bool) {
	i, ok := n.index[id]
	if !ok {
		return nil, false
	}
	return &n.entries[i], true
}
