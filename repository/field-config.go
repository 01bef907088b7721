package repository

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"tagcat/utils"

	"gorm.io/datatypes"
)

type PrecisionType string
type Status string
type Component string
type InputType string
type SelectMode string

const (
	PrecisionLong  PrecisionType = "LONG"
	PrecisionShort PrecisionType = "SHORT"
)

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

const (
	ComponentInput  Component = "input"
	ComponentSelect Component = "select"
)

const (
	InputText   InputType = "text"
	InputNumber InputType = "number"
)

const (
	SelectOptions SelectMode = "options"
	SelectQuery   SelectMode = "query"
)

var PrecisionTypes = []PrecisionType{PrecisionLong, PrecisionShort}
var Statuses = []Status{StatusActive, StatusInactive}
var Components = []Component{ComponentInput, ComponentSelect}
var InputTypes = []InputType{InputText, InputNumber}
var SelectModes = []SelectMode{SelectOptions, SelectQuery}

// KnownGroups maps the fixed taxonomy buckets to their display labels.
var KnownGroups = map[string]string{
	"ball":   "Ball",
	"player": "Player",
	"game":   "Game",
}

// OptionValue is either a string or a number. The JSON kind it was decoded
// from is kept so numbers round-trip as numbers.
type OptionValue struct {
	Text     string
	IsNumber bool
}

func StringValue(s string) OptionValue {
	return OptionValue{Text: s}
}

func NumberValue(n json.Number) OptionValue {
	return OptionValue{Text: n.String(), IsNumber: true}
}

func (v OptionValue) String() string {
	return v.Text
}

func (v OptionValue) IsZero() bool {
	return v.Text == ""
}

func (v OptionValue) MarshalJSON() ([]byte, error) {
	if v.IsNumber {
		return []byte(v.Text), nil
	}
	return json.Marshal(v.Text)
}

func (v *OptionValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = OptionValue{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = StringValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("option value must be a string or a number")
	}
	*v = NumberValue(n)
	return nil
}

type Option struct {
	Label    string      `json:"label"`
	Value    OptionValue `json:"value"`
	Disabled bool        `json:"disabled,omitempty"`
	Id       string      `json:"id,omitempty"`
}

// FieldConfig is one metadata field definition. Component decides which of
// Type or Mode/Multiple/Options/Query are meaningful.
type FieldConfig struct {
	Component Component  `json:"component"`
	Key       string     `json:"key"`
	Label     string     `json:"label"`
	Required  bool       `json:"required,omitempty"`
	ReadOnly  bool       `json:"readOnly,omitempty"`
	Type      InputType  `json:"type,omitempty"`
	Mode      SelectMode `json:"mode,omitempty"`
	Multiple  bool       `json:"multiple,omitempty"`
	Options   []Option   `json:"options,omitempty"`
	Query     string     `json:"query,omitempty"`
}

func (f FieldConfig) IsInput() bool {
	return f.Component == ComponentInput
}

func (f FieldConfig) IsSelect() bool {
	return f.Component == ComponentSelect
}

type FieldConfigs []FieldConfig

func (c FieldConfigs) Keys() []string {
	return utils.Map(c, func(field FieldConfig) string { return field.Key })
}

func (c FieldConfigs) Value() (driver.Value, error) {
	if c == nil {
		c = FieldConfigs{}
	}
	return datatypes.NewJSONType(c).Value()
}

func (c *FieldConfigs) Scan(value any) error {
	var j datatypes.JSONType[FieldConfigs]
	if err := j.Scan(value); err != nil {
		return err
	}
	*c = j.Data()
	if *c == nil {
		*c = FieldConfigs{}
	}
	return nil
}

type SubCategory struct {
	Label  string       `json:"label"`
	Config FieldConfigs `json:"config"`
}

// SubCategories is keyed by the sub-category key. Renaming a key is a
// delete followed by an insert.
type SubCategories map[string]SubCategory

func (s SubCategories) Value() (driver.Value, error) {
	if s == nil {
		s = SubCategories{}
	}
	return datatypes.NewJSONType(s).Value()
}

func (s *SubCategories) Scan(value any) error {
	var j datatypes.JSONType[SubCategories]
	if err := j.Scan(value); err != nil {
		return err
	}
	*s = j.Data()
	if *s == nil {
		*s = SubCategories{}
	}
	return nil
}
