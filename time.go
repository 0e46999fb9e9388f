package gm65d

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.yaml.in/yaml/v4"
)

// Duration accepts either a Go duration string ("1.5s") or a bare number of seconds.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return nil
	}

	var v any
	err := json.Unmarshal(data, &v)
	if err != nil {
		return err
	}

	switch v := v.(type) {
	case float64:
		d.Duration = seconds(v)
		return nil
	case string:
		return d.parse(v)
	default:
		return fmt.Errorf("invalid duration: %s", data)
	}
}

func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if tag := value.ShortTag(); tag == "!!int" || tag == "!!float" {
		f, err := strconv.ParseFloat(value.Value, 64)
		if err != nil {
			return err
		}

		d.Duration = seconds(f)
		return nil
	}

	var str string
	err := value.Decode(&str)
	if err != nil {
		return err
	}

	return d.parse(str)
}

func (d *Duration) parse(str string) (err error) {
	if str == "" {
		return nil
	}

	d.Duration, err = time.ParseDuration(str)
	return err
}

func seconds(f float64) time.Duration {
	return time.Duration(f * float64(time.Second))
}
