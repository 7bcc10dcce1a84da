package homie_test

// test the publication of things.

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/duke1swd/homie5nodes"
	"github.com/duke1swd/homie5nodes/internal/transporttest"
)

func createTestDevice(t *testing.T) (*homie.Device, *transporttest.Recorder) {
	t.Helper()
	rec := transporttest.NewRecorder()
	d, err := homie.NewDevice("testing", "test-device-0000", rec, homie.WithName("Test Device 0"))
	require.NoError(t, err)
	return d, rec
}

func switchConfig() homie.NodeConfig {
	return homie.NodeConfig{
		Type: "homie-homecontrol/v1/type=switch",
		Name: "On/Off switch",
		Properties: []homie.PropertyDescriptor{
			homie.NewProperty("state", homie.DtBoolean).WithName("State").WithFormat("off,on").AsSettable(true),
		},
		Actions: []homie.ActionDescriptor{
			homie.NewAction("action", "toggle"),
		},
	}
}

func TestNewDevice(t *testing.T) {
	rec := transporttest.NewRecorder()

	d, err := homie.NewDevice("", "dev1", rec)
	require.NoError(t, err)
	assert.Equal(t, "homie/5/dev1", d.Root())
	assert.Equal(t, "homie/5/dev1/n/p/set", d.Topic("n", "p", "set"))

	_, err = homie.NewDevice("homie", "Dev1", rec)
	assert.ErrorIs(t, err, homie.ErrInvalidConfig)

	_, err = homie.NewDevice("homie", "dev1", nil)
	assert.ErrorIs(t, err, homie.ErrInvalidConfig)
}

func TestPublishSwitch(t *testing.T) {
	d, rec := createTestDevice(t)
	_, pub, disp, err := homie.Build(d, "switch1", switchConfig(), nil)
	require.NoError(t, err)
	defer disp.Close()

	require.NoError(t, pub.Publish("state", true))

	assert.Equal(t, []homie.Message{
		{Topic: "testing/5/test-device-0000/switch1/state", Payload: "true", Retained: true},
	}, rec.Messages())
}

func TestPublishIdempotent(t *testing.T) {
	d, rec := createTestDevice(t)
	_, pub, _, err := homie.Build(d, "switch1", switchConfig(), nil)
	require.NoError(t, err)

	require.NoError(t, pub.Publish("state", false))
	require.NoError(t, pub.Publish("state", false))

	msgs := rec.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, msgs[0], msgs[1])
}

func TestPublishDimmerOutOfRange(t *testing.T) {
	d, rec := createTestDevice(t)
	cfg := homie.NodeConfig{
		Properties: []homie.PropertyDescriptor{
			homie.NewProperty("brightness", homie.DtInteger).WithFormat("0:100:1").WithUnit(homie.UnitPercent).AsSettable(true),
		},
	}
	_, pub, _, err := homie.Build(d, "dimmer1", cfg, nil)
	require.NoError(t, err)

	err = pub.Publish("brightness", 150)
	require.ErrorIs(t, err, homie.ErrOutOfRange)

	var pe *homie.PublishError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "brightness", pe.Property)

	var ee *homie.EncodeError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, homie.EncodeOutOfRange, ee.Kind)

	assert.Empty(t, rec.Messages())
}

func TestPublishUnknownProperty(t *testing.T) {
	d, rec := createTestDevice(t)
	_, pub, _, err := homie.Build(d, "switch1", switchConfig(), nil)
	require.NoError(t, err)

	assert.ErrorIs(t, pub.Publish("brightness", 1), homie.ErrUnknownProperty)
	assert.ErrorIs(t, pub.PublishRaw("state", "maybe"), homie.ErrMalformed)
	assert.Empty(t, rec.Messages())
}

func TestPublishAction(t *testing.T) {
	d, rec := createTestDevice(t)
	_, pub, _, err := homie.Build(d, "switch1", switchConfig(), nil)
	require.NoError(t, err)

	require.NoError(t, pub.Publish("action", "toggle"))
	m, ok := rec.Last("testing/5/test-device-0000/switch1/action")
	require.True(t, ok)
	assert.Equal(t, "toggle", m.Payload)
	assert.False(t, m.Retained)

	assert.ErrorIs(t, pub.PublishTarget("action", "toggle"), homie.ErrNotRetained)
}

func TestPublishTarget(t *testing.T) {
	d, rec := createTestDevice(t)
	_, pub, _, err := homie.Build(d, "switch1", switchConfig(), nil)
	require.NoError(t, err)

	require.NoError(t, pub.PublishTarget("state", true))
	m, ok := rec.Last("testing/5/test-device-0000/switch1/state/$target")
	require.True(t, ok)
	assert.Equal(t, "true", m.Payload)
	assert.True(t, m.Retained)
}

func TestPublishTransportError(t *testing.T) {
	mt := new(transporttest.MockTransport)
	boom := errors.New("broker gone")
	mt.On("Publish", "homie/5/dev/switch1/state", "true", true).Return(boom)

	d, err := homie.NewDevice("", "dev", mt)
	require.NoError(t, err)
	_, pub, _, err := homie.Build(d, "switch1", switchConfig(), nil)
	require.NoError(t, err)

	err = pub.Publish("state", true)
	assert.ErrorIs(t, err, homie.ErrTransport)
	assert.ErrorIs(t, err, boom)

	var te *homie.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "homie/5/dev/switch1/state", te.Topic)
	mt.AssertExpectations(t)
}

func TestAnnounce(t *testing.T) {
	d, rec := createTestDevice(t)
	_, pub, _, err := homie.Build(d, "switch1", switchConfig(), nil)
	require.NoError(t, err)

	require.NoError(t, pub.Announce())

	const base = "testing/5/test-device-0000/switch1"
	assert.Equal(t, map[string]string{
		base + "/$name":            "On/Off switch",
		base + "/$type":            "homie-homecontrol/v1/type=switch",
		base + "/$properties":      "state,action",
		base + "/state/$name":      "State",
		base + "/state/$datatype":  "boolean",
		base + "/state/$format":    "off,on",
		base + "/state/$settable":  "true",
		base + "/state/$retained":  "true",
		base + "/action/$datatype": "enum",
		base + "/action/$format":   "toggle",
		base + "/action/$settable": "true",
		base + "/action/$retained": "false",
	}, rec.Retained())
}

func TestPublishDefaults(t *testing.T) {
	d, rec := createTestDevice(t)
	cfg := switchConfig()
	cfg.Properties[0] = cfg.Properties[0].WithDefault("false")

	_, pub, _, err := homie.Build(d, "switch1", cfg, nil)
	require.NoError(t, err)
	require.NoError(t, pub.PublishDefaults())

	assert.Equal(t, []homie.Message{
		{Topic: "testing/5/test-device-0000/switch1/state", Payload: "false", Retained: true},
	}, rec.Messages())
}

func TestDescription(t *testing.T) {
	d, rec := createTestDevice(t)
	desc, _, _, err := homie.Build(d, "switch1", switchConfig(), nil)
	require.NoError(t, err)

	require.NoError(t, d.PublishDescription(desc))
	m, ok := rec.Last("testing/5/test-device-0000/$description")
	require.True(t, ok)
	assert.True(t, m.Retained)

	var doc struct {
		Homie   string `json:"homie"`
		Version int64  `json:"version"`
		Name    string `json:"name"`
		Nodes   map[string]struct {
			Type       string `json:"type"`
			Properties map[string]struct {
				Datatype string `json:"datatype"`
				Format   string `json:"format"`
				Settable bool   `json:"settable"`
				Retained bool   `json:"retained"`
			} `json:"properties"`
		} `json:"nodes"`
	}
	require.NoError(t, json.Unmarshal([]byte(m.Payload), &doc))
	assert.Equal(t, "5.0", doc.Homie)
	assert.Equal(t, "Test Device 0", doc.Name)
	assert.NotZero(t, doc.Version)

	sw := doc.Nodes["switch1"]
	assert.Equal(t, "homie-homecontrol/v1/type=switch", sw.Type)
	assert.Equal(t, "boolean", sw.Properties["state"].Datatype)
	assert.True(t, sw.Properties["state"].Retained)
	assert.Equal(t, "toggle", sw.Properties["action"].Format)
	assert.False(t, sw.Properties["action"].Retained)

	// key order follows declaration order
	assert.Regexp(t, `^\{"homie":"5.0","version":\d+,"name":"Test Device 0","nodes":\{"switch1":\{"name":"On/Off switch","type":"[^"]+","properties":\{"state":.*"action":`, m.Payload)
}

func TestDescriptionVersion(t *testing.T) {
	a, err := homie.Compile("switch1", switchConfig())
	require.NoError(t, err)
	cfg := switchConfig()
	cfg.Name = "Other"
	b, err := homie.Compile("switch1", cfg)
	require.NoError(t, err)

	one, err := homie.MarshalDeviceDescription("dev", a)
	require.NoError(t, err)
	two, err := homie.MarshalDeviceDescription("dev", a)
	require.NoError(t, err)
	other, err := homie.MarshalDeviceDescription("dev", b)
	require.NoError(t, err)

	assert.Equal(t, one, two)
	assert.NotEqual(t, version(t, one), version(t, other))

	_, err = homie.MarshalDeviceDescription("dev", a, a)
	assert.ErrorIs(t, err, homie.ErrInvalidConfig)
}

func version(t *testing.T, doc []byte) int64 {
	var v struct {
		Version int64 `json:"version"`
	}
	require.NoError(t, json.Unmarshal(doc, &v))
	return v.Version
}

func TestAlerts(t *testing.T) {
	d, rec := createTestDevice(t)

	require.NoError(t, d.SetAlert("hc-battery-low", "battery below 10%"))
	assert.Equal(t, map[string]string{
		"testing/5/test-device-0000/$alert/hc-battery-low": "battery below 10%",
	}, rec.Retained())

	require.NoError(t, d.ClearAlert("hc-battery-low"))
	assert.Empty(t, rec.Retained())

	assert.ErrorIs(t, d.SetAlert("Bad_ID", "x"), homie.ErrInvalidConfig)
	assert.ErrorIs(t, d.SetAlert("ok", ""), homie.ErrInvalidConfig)
}

func TestPublishState(t *testing.T) {
	mt := new(transporttest.MockTransport)
	mt.On("Publish", "homie/5/dev/$state", mock.Anything, true).Return(nil).Twice()

	d, err := homie.NewDevice("", "dev", mt)
	require.NoError(t, err)
	require.NoError(t, d.PublishState(homie.StateInit))
	require.NoError(t, d.PublishState(homie.StateReady))

	mt.AssertNumberOfCalls(t, "Publish", 2)
	mt.AssertCalled(t, "Publish", "homie/5/dev/$state", "ready", true)
}

func TestLastWill(t *testing.T) {
	assert.Equal(t, homie.Message{Topic: "homie/5/dev/$state", Payload: "lost", Retained: true}, homie.LastWill("", "dev"))
	assert.Equal(t, "testing/5/dev/$state", homie.LastWill("testing", "dev").Topic)
}
