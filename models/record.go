package models

import "time"

// FieldType enumerates the value types a collection schema can declare.
type FieldType string

const (
	FieldString FieldType = "string"
	FieldNumber FieldType = "number"
	FieldBool   FieldType = "bool"
)

// FieldDef declares a constraint on one named record field.
// Min/Max apply to number fields only; Default fills an omitted
// optional field at save time.
type FieldDef struct {
	Name     string      `json:"name" yaml:"name" validate:"required,fieldname"`
	Type     FieldType   `json:"type" yaml:"type" validate:"required,fieldtype"`
	Required bool        `json:"required" yaml:"required"`
	Default  interface{} `json:"default,omitempty" yaml:"default,omitempty"`
	Min      *float64    `json:"min,omitempty" yaml:"min,omitempty"`
	Max      *float64    `json:"max,omitempty" yaml:"max,omitempty"`
}

type Collection struct {
	Name      string     `json:"name"`
	Fields    []FieldDef `json:"fields,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type Record struct {
	Key        string                 `json:"key"`
	Collection string                 `json:"collection"`
	Fields     map[string]interface{} `json:"fields"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

type CreateCollectionRequest struct {
	Name   string     `json:"name" validate:"required,collectionname,max=64"`
	Fields []FieldDef `json:"fields,omitempty" validate:"dive"`
}

type SaveRecordRequest struct {
	Key    string                 `json:"key,omitempty" validate:"omitempty,recordkey,max=128"`
	Fields map[string]interface{} `json:"fields" validate:"required"`
}

type QueryRequest struct {
	Collection string        `json:"collection" validate:"required,collectionname"`
	Expression string        `json:"expression" validate:"required,max=1024"`
	Params     []interface{} `json:"params,omitempty"`
	Limit      int           `json:"limit,omitempty" validate:"omitempty,gte=1,lte=1000"`
}
