package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// PGInterval holds a duration stored as a Postgres-style interval string.
type PGInterval time.Duration

func (d *PGInterval) Scan(value interface{}) error {
	var str string
	switch v := value.(type) {
	case string:
		str = v
	case []byte:
		str = string(v)
	default:
		return fmt.Errorf("cannot scan %T into PGInterval", value)
	}

	if str == "" || str == "00:00:00" {
		*d = PGInterval(0)
		return nil
	}

	// Postgres renders intervals either as "01:02:03" or as "X seconds".
	if strings.Contains(str, ":") {
		parts := strings.Split(str, ":")
		if len(parts) != 3 {
			return fmt.Errorf("invalid interval format: %s", str)
		}
		h, m, s := parts[0], parts[1], parts[2]
		parsed, err := time.ParseDuration(fmt.Sprintf("%sh%sm%ss", h, m, s))
		if err != nil {
			return err
		}
		*d = PGInterval(parsed)
		return nil
	} else if strings.Contains(str, "seconds") {
		var seconds int64
		_, err := fmt.Sscanf(str, "%d seconds", &seconds)
		if err != nil {
			return fmt.Errorf("invalid seconds format: %s, %v", str, err)
		}
		*d = PGInterval(time.Duration(seconds) * time.Second)
		return nil
	}

	return fmt.Errorf("unrecognized interval format: %s", str)
}

func (d PGInterval) Value() (driver.Value, error) {
	seconds := int64(time.Duration(d).Seconds())
	return fmt.Sprintf("%d seconds", seconds), nil
}

func (d PGInterval) Duration() time.Duration {
	return time.Duration(d)
}

func (d PGInterval) String() string {
	duration := time.Duration(d)
	hours := int(duration.Hours())
	minutes := int(duration.Minutes()) % 60
	seconds := int(duration.Seconds()) % 60

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

func (d PGInterval) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *PGInterval) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return d.Scan(s)
}
