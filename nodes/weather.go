package nodes

import (
	"github.com/duke1swd/homie5nodes"
)

const (
	WeatherDefaultName   = "Weather clima sensor"
	WeatherTemperatureID = "temperature"
	WeatherHumidityID    = "humidity"
	WeatherPressureID    = "pressure"
)

type WeatherConfig struct {
	Common      `yaml:",inline"`
	Temperature bool   `yaml:"temperature"`
	Humidity    bool   `yaml:"humidity"`
	Pressure    bool   `yaml:"pressure"`
	TempUnit    string `yaml:"temp-unit"`
}

func DefaultWeatherConfig() WeatherConfig {
	return WeatherConfig{Temperature: true, Humidity: true, TempUnit: homie.UnitCelsius}
}

func (c WeatherConfig) Kind() Kind { return KindWeather }

func (c WeatherConfig) NodeConfig() (homie.NodeConfig, error) {
	var props []homie.PropertyDescriptor
	if c.Temperature {
		if err := checkTempUnit(c.TempUnit); err != nil {
			return homie.NodeConfig{}, err
		}
		props = append(props, homie.NewProperty(WeatherTemperatureID, homie.DtFloat).WithName("Current temperature").WithUnit(c.TempUnit))
	}
	if c.Humidity {
		props = append(props, homie.NewProperty(WeatherHumidityID, homie.DtInteger).WithName("Current humidity").WithUnit(homie.UnitPercent))
	}
	if c.Pressure {
		props = append(props, homie.NewProperty(WeatherPressureID, homie.DtFloat).WithName("Current pressure").WithUnit(homie.UnitKilopascal))
	}
	return c.Common.apply(homie.NodeConfig{
		Type:       KindWeather.TypeTag(),
		Name:       WeatherDefaultName,
		Properties: props,
	}), nil
}

func checkTempUnit(unit string) error {
	if unit != homie.UnitCelsius && unit != homie.UnitFahrenheit {
		return invalid("temp-unit", "unit %q is neither %s nor %s", unit, homie.UnitCelsius, homie.UnitFahrenheit)
	}
	return nil
}

type Weather struct {
	base
}

func NewWeather(dev *homie.Device, id string, cfg WeatherConfig) (*Weather, error) {
	b, err := newBase(dev, id, cfg, nil)
	if err != nil {
		return nil, err
	}
	return &Weather{base: b}, nil
}

func (w *Weather) Temperature(t float64) error { return w.pub.Publish(WeatherTemperatureID, t) }
func (w *Weather) Humidity(h int64) error      { return w.pub.Publish(WeatherHumidityID, h) }
func (w *Weather) Pressure(kpa float64) error  { return w.pub.Publish(WeatherPressureID, kpa) }
