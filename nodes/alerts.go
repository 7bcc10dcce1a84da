package nodes

// Alert is a well-known device alert id. Devices may raise other ids too.
type Alert string

const (
	AlertBatteryLow      Alert = "hc-battery-low"
	AlertBatteryCritical Alert = "hc-battery-critical"
	AlertUnreachable     Alert = "hc-unreachable"
	AlertUpdateOverdue   Alert = "hc-update-overdue"
	AlertConfigError     Alert = "hc-config-error"
	AlertSensorFault     Alert = "hc-sensor-fault"
	AlertTamper          Alert = "hc-tamper"
	AlertCommError       Alert = "hc-comm-error"
)

var alerts = []Alert{
	AlertBatteryLow, AlertBatteryCritical, AlertUnreachable, AlertUpdateOverdue,
	AlertConfigError, AlertSensorFault, AlertTamper, AlertCommError,
}

func (a Alert) String() string { return string(a) }

// ParseAlert recognises the well-known alert ids.
func ParseAlert(id string) (Alert, bool) {
	for _, a := range alerts {
		if string(a) == id {
			return a, true
		}
	}
	return "", false
}
