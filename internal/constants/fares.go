package constants

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// FareMap stores a flight's per-tier base fares as a JSONB column so the
// same value scans cleanly through both gorm and sqlx.
type FareMap map[CabinTier]float64

// Scan implements the sql.Scanner interface
func (f *FareMap) Scan(src interface{}) error {
	if src == nil {
		*f = FareMap{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("FareMap: cannot scan type %T", src)
	}
	return json.Unmarshal(data, f)
}

// Value implements the driver.Valuer interface
func (f FareMap) Value() (driver.Value, error) {
	if f == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(f)
}

// ClassDistribution stores an aircraft's per-tier seat counts as JSONB.
type ClassDistribution map[CabinTier]int

// Scan implements the sql.Scanner interface
func (c *ClassDistribution) Scan(src interface{}) error {
	if src == nil {
		*c = ClassDistribution{}
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("ClassDistribution: cannot scan type %T", src)
	}
	return json.Unmarshal(data, c)
}

// Value implements the driver.Valuer interface
func (c ClassDistribution) Value() (driver.Value, error) {
	if c == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(c)
}
