package homie

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shutterConfig() NodeConfig {
	return NodeConfig{
		Type: "homie-homecontrol/v1/type=shutter",
		Name: "Shutter",
		Properties: []PropertyDescriptor{
			NewProperty("position", DtInteger).WithFormat("0:100").WithUnit(UnitPercent).AsSettable(true),
		},
		Actions: []ActionDescriptor{
			NewAction("action", "open", "close", "stop"),
		},
	}
}

func TestCompile(t *testing.T) {
	n, err := Compile("shutter1", shutterConfig())
	require.NoError(t, err)

	assert.Equal(t, "shutter1", n.ID())
	assert.Equal(t, "homie-homecontrol/v1/type=shutter", n.Type())
	assert.Equal(t, []string{"position", "action"}, n.IDs())
	assert.Len(t, n.Properties(), 1)
	assert.Len(t, n.Actions(), 1)

	p, ok := n.Property("action")
	require.True(t, ok)
	assert.Equal(t, DtEnum, p.Datatype)
	assert.Equal(t, "open,close,stop", p.Format)
	assert.True(t, p.Settable)
	assert.False(t, p.Retained)
	assert.True(t, n.IsAction("action"))
	assert.False(t, n.IsAction("position"))

	_, ok = n.Property("missing")
	assert.False(t, ok)
}

func TestCompileIsFrozen(t *testing.T) {
	cfg := shutterConfig()
	n, err := Compile("shutter1", cfg)
	require.NoError(t, err)

	cfg.Properties[0].Format = "0:10"
	cfg.Actions[0].Commands[0] = "jump"
	n.Actions()[0].Commands[1] = "jump"

	p, _ := n.Property("position")
	assert.Equal(t, "0:100", p.Format)
	assert.Equal(t, []string{"open", "close", "stop"}, n.Actions()[0].Commands)
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		cfg   func(*NodeConfig)
		field string
	}{
		{"empty node id", "", nil, "node-id"},
		{"bad node id", "Shutter", nil, "node-id"},
		{"bad property id", "n", func(c *NodeConfig) { c.Properties[0].ID = "pos_ition" }, "properties[pos_ition]"},
		{"duplicate id", "n", func(c *NodeConfig) { c.Actions[0].ID = "position" }, "actions[position]"},
		{"bad datatype", "n", func(c *NodeConfig) { c.Properties[0].Datatype = Datatype(99) }, "properties[position].datatype"},
		{"max below min", "n", func(c *NodeConfig) { c.Properties[0].Format = "100:0" }, "properties[position].format"},
		{"zero step", "n", func(c *NodeConfig) { c.Properties[0].Format = "0:100:0" }, "properties[position].format"},
		{"enum format on integer", "n", func(c *NodeConfig) { c.Properties[0].Format = "a,b" }, "properties[position].format"},
		{"unknown unit", "n", func(c *NodeConfig) { c.Properties[0].Unit = "furlong" }, "properties[position].unit"},
		{"bad default", "n", func(c *NodeConfig) { c.Properties[0].Default = "200" }, "properties[position].default"},
		{"empty enum", "n", func(c *NodeConfig) { c.Actions[0].Commands = nil }, "actions[action].commands"},
		{"duplicate command", "n", func(c *NodeConfig) { c.Actions[0].Commands = []string{"open", "open"} }, "actions[action].commands"},
		{"comma in command", "n", func(c *NodeConfig) { c.Actions[0].Commands = []string{"open,close"} }, "actions[action].commands"},
		{"empty node", "n", func(c *NodeConfig) { c.Properties, c.Actions = nil, nil }, "properties"},
		{"retain unknown", "n", func(c *NodeConfig) { c.Retained = map[string]bool{"nope": true} }, "retained[nope]"},
		{"retain action", "n", func(c *NodeConfig) { c.Retained = map[string]bool{"action": true} }, "retained[action]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := shutterConfig()
			if tt.cfg != nil {
				tt.cfg(&cfg)
			}
			n, err := Compile(tt.id, cfg)
			assert.Nil(t, n)
			require.ErrorIs(t, err, ErrInvalidConfig)

			var be *BuildError
			require.True(t, errors.As(err, &be))
			assert.Equal(t, tt.field, be.Field)
		})
	}
}

func TestCompileFirstError(t *testing.T) {
	cfg := shutterConfig()
	cfg.Properties[0].Format = "100:0"
	cfg.Actions[0].Commands = nil
	cfg.Retained = map[string]bool{"zzz": true, "aaa": false}

	_, err := Compile("n", cfg)
	var be *BuildError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "properties[position].format", be.Field)

	cfg = shutterConfig()
	cfg.Retained = map[string]bool{"zzz": true, "aaa": false}
	_, err = Compile("n", cfg)
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "retained[aaa]", be.Field)
}

func TestCompileRetainedOverride(t *testing.T) {
	cfg := shutterConfig()
	cfg.Retained = map[string]bool{"position": false}

	n, err := Compile("n", cfg)
	require.NoError(t, err)
	p, _ := n.Property("position")
	assert.False(t, p.Retained)
}

func TestCompileRetainedDefault(t *testing.T) {
	n, err := Compile("n", NodeConfig{Properties: []PropertyDescriptor{
		NewProperty("made", DtInteger),
		{ID: "literal", Datatype: DtInteger},
	}})
	require.NoError(t, err)

	p, _ := n.Property("made")
	assert.True(t, p.Retained)
	p, _ = n.Property("literal")
	assert.False(t, p.Retained)
}

func TestBuildNeedsDevice(t *testing.T) {
	_, _, _, err := Build(nil, "n", shutterConfig(), nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
