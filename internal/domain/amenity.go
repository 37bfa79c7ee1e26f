package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Amenity 三态：有 / 无 / 不知道。库里存可空布尔。
type Amenity int8

const (
	AmenityUnknown Amenity = iota
	AmenityYes
	AmenityNo
)

func (a Amenity) String() string {
	switch a {
	case AmenityYes:
		return "Yes"
	case AmenityNo:
		return "No"
	default:
		return "I don't know"
	}
}

func (a Amenity) Known() bool { return a == AmenityYes || a == AmenityNo }

// Value 写库：Yes→true, No→false, Unknown→NULL
func (a Amenity) Value() (driver.Value, error) {
	switch a {
	case AmenityYes:
		return true, nil
	case AmenityNo:
		return false, nil
	default:
		return nil, nil
	}
}

func (a *Amenity) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*a = AmenityUnknown
	case bool:
		*a = amenityOf(v)
	case int64:
		*a = amenityOf(v != 0)
	case []byte:
		return a.scanText(string(v))
	case string:
		return a.scanText(v)
	default:
		return fmt.Errorf("amenity: cannot scan %T", src)
	}
	return nil
}

func (a *Amenity) scanText(s string) error {
	switch s {
	case "1", "t", "true", "TRUE":
		*a = AmenityYes
	case "0", "f", "false", "FALSE":
		*a = AmenityNo
	case "":
		*a = AmenityUnknown
	default:
		return fmt.Errorf("amenity: cannot scan %q", s)
	}
	return nil
}

func (a Amenity) MarshalJSON() ([]byte, error) {
	switch a {
	case AmenityYes:
		return []byte("true"), nil
	case AmenityNo:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

func (a *Amenity) UnmarshalJSON(b []byte) error {
	var v *bool
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if v == nil {
		*a = AmenityUnknown
		return nil
	}
	*a = amenityOf(*v)
	return nil
}

// GormDataType 让 AutoMigrate 建成 boolean 列
func (Amenity) GormDataType() string { return "boolean" }

func amenityOf(b bool) Amenity {
	if b {
		return AmenityYes
	}
	return AmenityNo
}
