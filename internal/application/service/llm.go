package service

import (
	"context"
)

type SchemaType string

const (
	TypeObject  SchemaType = "object"
	TypeArray   SchemaType = "array"
	TypeString  SchemaType = "string"
	TypeInteger SchemaType = "integer"
	TypeNumber  SchemaType = "number"
	TypeBoolean SchemaType = "boolean"
)

// Schema is a provider-neutral description of the JSON a model must return.
// Adapters translate it into their native structured-output format.
type Schema struct {
	Type        SchemaType         `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Nullable    bool               `json:"nullable,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

type StructuredRequest struct {
	// Instruction is sent as the system prompt where the provider supports one.
	Instruction string
	Prompt      string
	Schema      *Schema
}

type LLMService interface {
	// GenerateStructured returns the raw model text, expected to be JSON matching req.Schema.
	GenerateStructured(ctx context.Context, req StructuredRequest) (string, error)
}
