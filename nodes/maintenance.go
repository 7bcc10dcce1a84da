package nodes

import (
	"errors"
	"time"

	"github.com/duke1swd/homie5nodes"
)

const (
	MaintenanceDefaultName  = "Maintenance information"
	MaintenanceLowBatteryID = "low-battery"
	MaintenanceBatteryID    = "battery-level"
	MaintenanceLastUpdateID = "last-update"
	MaintenanceReachableID  = "reachable"
)

type MaintenanceConfig struct {
	Common       `yaml:",inline"`
	LowBattery   bool `yaml:"low-battery"`
	BatteryLevel bool `yaml:"battery-level"`
	LastUpdate   bool `yaml:"last-update"`
	Reachable    bool `yaml:"reachable"`

	// UnreachableOnClose publishes reachable=false when the node is closed.
	UnreachableOnClose bool `yaml:"unreachable-on-close"`

	// RaiseAlerts mirrors low battery and unreachability as device alerts.
	RaiseAlerts bool `yaml:"raise-alerts"`
}

func DefaultMaintenanceConfig() MaintenanceConfig {
	return MaintenanceConfig{LowBattery: true, LastUpdate: true, Reachable: true}
}

func (c MaintenanceConfig) Kind() Kind { return KindMaintenance }

func (c MaintenanceConfig) NodeConfig() (homie.NodeConfig, error) {
	if c.UnreachableOnClose && !c.Reachable {
		return homie.NodeConfig{}, invalid("unreachable-on-close", "requires the reachable property")
	}

	var props []homie.PropertyDescriptor
	if c.LowBattery {
		props = append(props, homie.NewProperty(MaintenanceLowBatteryID, homie.DtBoolean).WithName("Low battery indicator"))
	}
	if c.BatteryLevel {
		props = append(props, homie.NewProperty(MaintenanceBatteryID, homie.DtInteger).
			WithName("Battery level").
			WithFormat(homie.IntRange(0, 100).String()).
			WithUnit(homie.UnitPercent))
	}
	if c.LastUpdate {
		props = append(props, homie.NewProperty(MaintenanceLastUpdateID, homie.DtDatetime).WithName("Last update"))
	}
	if c.Reachable {
		props = append(props, homie.NewProperty(MaintenanceReachableID, homie.DtBoolean).WithName("Reachable"))
	}
	return c.Common.apply(homie.NodeConfig{
		Type:       KindMaintenance.TypeTag(),
		Name:       MaintenanceDefaultName,
		Properties: props,
	}), nil
}

// Maintenance reports the health of the device behind the node.
type Maintenance struct {
	base
	onClose bool
	alerts  bool
}

func NewMaintenance(dev *homie.Device, id string, cfg MaintenanceConfig) (*Maintenance, error) {
	b, err := newBase(dev, id, cfg, nil)
	if err != nil {
		return nil, err
	}
	return &Maintenance{base: b, onClose: cfg.UnreachableOnClose, alerts: cfg.RaiseAlerts}, nil
}

func (m *Maintenance) LowBattery(low bool) error {
	if err := m.pub.Publish(MaintenanceLowBatteryID, low); err != nil {
		return err
	}
	return m.alert(AlertBatteryLow, low, "battery low")
}

func (m *Maintenance) BatteryLevel(percent int64) error {
	return m.pub.Publish(MaintenanceBatteryID, percent)
}

func (m *Maintenance) LastUpdate(t time.Time) error {
	return m.pub.Publish(MaintenanceLastUpdateID, t)
}

func (m *Maintenance) Reachable(ok bool) error {
	if err := m.pub.Publish(MaintenanceReachableID, ok); err != nil {
		return err
	}
	return m.alert(AlertUnreachable, !ok, "device not reachable")
}

func (m *Maintenance) alert(a Alert, raised bool, msg string) error {
	if !m.alerts {
		return nil
	}
	if raised {
		return m.dev.SetAlert(a.String(), msg)
	}
	return m.dev.ClearAlert(a.String())
}

// Close marks the device unreachable when configured to, then releases the
// node's subscriptions.
func (m *Maintenance) Close() error {
	var err error
	if m.onClose {
		err = m.pub.Publish(MaintenanceReachableID, false)
	}
	return errors.Join(err, m.base.Close())
}
