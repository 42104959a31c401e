// Package argtypes provides the built-in argument-value parsers for
// command trees: booleans, bounded numerics, and three string flavors.
//
// Numeric constructors take optional bounds: none for the full range,
// one for a minimum, two for a minimum and maximum. Values outside the
// declared bounds fail with a positioned range error and the cursor
// restored to the start of the value.
package argtypes

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/psaab/cmdgraph/pkg/cmderr"
	"github.com/psaab/cmdgraph/pkg/dispatch"
	"github.com/psaab/cmdgraph/pkg/reader"
)

// Range error templates, one pair per numeric type.
var (
	ErrIntTooLow      = cmderr.NewType("Integer must not be less than %v, found %v")
	ErrIntTooHigh     = cmderr.NewType("Integer must not be more than %v, found %v")
	ErrInt64TooLow    = cmderr.NewType("Long must not be less than %v, found %v")
	ErrInt64TooHigh   = cmderr.NewType("Long must not be more than %v, found %v")
	ErrFloat32TooLow  = cmderr.NewType("Float must not be less than %v, found %v")
	ErrFloat32TooHigh = cmderr.NewType("Float must not be more than %v, found %v")
	ErrFloat64TooLow  = cmderr.NewType("Double must not be less than %v, found %v")
	ErrFloat64TooHigh = cmderr.NewType("Double must not be more than %v, found %v")
)

// BoolType parses the words true and false.
type BoolType struct{}

// Bool returns the boolean argument type.
func Bool() BoolType { return BoolType{} }

func (BoolType) Parse(rd *reader.StringReader, _ *dispatch.ContextBuilder) (any, error) {
	return rd.ReadBool()
}

func (BoolType) Suggest(_ context.Context, _ *dispatch.CommandContext, sb *dispatch.SuggestionsBuilder) (*dispatch.Suggestions, error) {
	if strings.HasPrefix("true", sb.RemainingLower()) {
		sb.Suggest("true")
	}
	if strings.HasPrefix("false", sb.RemainingLower()) {
		sb.Suggest("false")
	}
	return sb.Build(), nil
}

func (BoolType) Examples() []string { return []string{"true", "false"} }

func (BoolType) String() string { return "bool()" }

// GetBool returns the bound boolean argument name.
func GetBool(c *dispatch.CommandContext, name string) (bool, error) {
	return dispatch.GetArgument[bool](c, name)
}

// IntType parses a bounded integer.
type IntType struct {
	Min int
	Max int
}

// Int returns an integer argument type. Bounds: none, min, or min+max.
func Int(bounds ...int) IntType {
	t := IntType{Min: math.MinInt, Max: math.MaxInt}
	if len(bounds) > 0 {
		t.Min = bounds[0]
	}
	if len(bounds) > 1 {
		t.Max = bounds[1]
	}
	return t
}

func (t IntType) Parse(rd *reader.StringReader, _ *dispatch.ContextBuilder) (any, error) {
	start := rd.Cursor()
	value, err := rd.ReadInt()
	if err != nil {
		return nil, err
	}
	if value < t.Min {
		rd.SetCursor(start)
		return nil, ErrIntTooLow.CreateWithContext(rd, t.Min, value)
	}
	if value > t.Max {
		rd.SetCursor(start)
		return nil, ErrIntTooHigh.CreateWithContext(rd, t.Max, value)
	}
	return value, nil
}

func (IntType) Suggest(_ context.Context, _ *dispatch.CommandContext, sb *dispatch.SuggestionsBuilder) (*dispatch.Suggestions, error) {
	return dispatch.EmptySuggestions(), nil
}

func (IntType) Examples() []string { return []string{"0", "123", "-123"} }

func (t IntType) String() string {
	switch {
	case t.Min == math.MinInt && t.Max == math.MaxInt:
		return "integer()"
	case t.Max == math.MaxInt:
		return fmt.Sprintf("integer(%d)", t.Min)
	default:
		return fmt.Sprintf("integer(%d, %d)", t.Min, t.Max)
	}
}

// GetInt returns the bound integer argument name.
func GetInt(c *dispatch.CommandContext, name string) (int, error) {
	return dispatch.GetArgument[int](c, name)
}

// Int64Type parses a bounded 64-bit integer.
type Int64Type struct {
	Min int64
	Max int64
}

// Int64 returns a 64-bit integer argument type.
func Int64(bounds ...int64) Int64Type {
	t := Int64Type{Min: math.MinInt64, Max: math.MaxInt64}
	if len(bounds) > 0 {
		t.Min = bounds[0]
	}
	if len(bounds) > 1 {
		t.Max = bounds[1]
	}
	return t
}

func (t Int64Type) Parse(rd *reader.StringReader, _ *dispatch.ContextBuilder) (any, error) {
	start := rd.Cursor()
	value, err := rd.ReadInt64()
	if err != nil {
		return nil, err
	}
	if value < t.Min {
		rd.SetCursor(start)
		return nil, ErrInt64TooLow.CreateWithContext(rd, t.Min, value)
	}
	if value > t.Max {
		rd.SetCursor(start)
		return nil, ErrInt64TooHigh.CreateWithContext(rd, t.Max, value)
	}
	return value, nil
}

func (Int64Type) Suggest(_ context.Context, _ *dispatch.CommandContext, sb *dispatch.SuggestionsBuilder) (*dispatch.Suggestions, error) {
	return dispatch.EmptySuggestions(), nil
}

func (Int64Type) Examples() []string {
	return []string{"0", "123", "-123", "9223372036854775807"}
}

func (t Int64Type) String() string {
	switch {
	case t.Min == math.MinInt64 && t.Max == math.MaxInt64:
		return "longArg()"
	case t.Max == math.MaxInt64:
		return fmt.Sprintf("longArg(%d)", t.Min)
	default:
		return fmt.Sprintf("longArg(%d, %d)", t.Min, t.Max)
	}
}

// GetInt64 returns the bound 64-bit integer argument name.
func GetInt64(c *dispatch.CommandContext, name string) (int64, error) {
	return dispatch.GetArgument[int64](c, name)
}

// Float32Type parses a bounded 32-bit float.
type Float32Type struct {
	Min float32
	Max float32
}

// Float32 returns a 32-bit float argument type.
func Float32(bounds ...float32) Float32Type {
	t := Float32Type{Min: -math.MaxFloat32, Max: math.MaxFloat32}
	if len(bounds) > 0 {
		t.Min = bounds[0]
	}
	if len(bounds) > 1 {
		t.Max = bounds[1]
	}
	return t
}

func (t Float32Type) Parse(rd *reader.StringReader, _ *dispatch.ContextBuilder) (any, error) {
	start := rd.Cursor()
	value, err := rd.ReadFloat32()
	if err != nil {
		return nil, err
	}
	if value < t.Min {
		rd.SetCursor(start)
		return nil, ErrFloat32TooLow.CreateWithContext(rd, t.Min, value)
	}
	if value > t.Max {
		rd.SetCursor(start)
		return nil, ErrFloat32TooHigh.CreateWithContext(rd, t.Max, value)
	}
	return value, nil
}

func (Float32Type) Suggest(_ context.Context, _ *dispatch.CommandContext, sb *dispatch.SuggestionsBuilder) (*dispatch.Suggestions, error) {
	return dispatch.EmptySuggestions(), nil
}

func (Float32Type) Examples() []string {
	return []string{"0", "1.2", ".5", "-1", "-.5", "-1234.56"}
}

func (t Float32Type) String() string {
	switch {
	case t.Min == -math.MaxFloat32 && t.Max == math.MaxFloat32:
		return "float()"
	case t.Max == math.MaxFloat32:
		return fmt.Sprintf("float(%v)", t.Min)
	default:
		return fmt.Sprintf("float(%v, %v)", t.Min, t.Max)
	}
}

// GetFloat32 returns the bound 32-bit float argument name.
func GetFloat32(c *dispatch.CommandContext, name string) (float32, error) {
	return dispatch.GetArgument[float32](c, name)
}

// Float64Type parses a bounded 64-bit float.
type Float64Type struct {
	Min float64
	Max float64
}

// Float64 returns a 64-bit float argument type.
func Float64(bounds ...float64) Float64Type {
	t := Float64Type{Min: -math.MaxFloat64, Max: math.MaxFloat64}
	if len(bounds) > 0 {
		t.Min = bounds[0]
	}
	if len(bounds) > 1 {
		t.Max = bounds[1]
	}
	return t
}

func (t Float64Type) Parse(rd *reader.StringReader, _ *dispatch.ContextBuilder) (any, error) {
	start := rd.Cursor()
	value, err := rd.ReadFloat64()
	if err != nil {
		return nil, err
	}
	if value < t.Min {
		rd.SetCursor(start)
		return nil, ErrFloat64TooLow.CreateWithContext(rd, t.Min, value)
	}
	if value > t.Max {
		rd.SetCursor(start)
		return nil, ErrFloat64TooHigh.CreateWithContext(rd, t.Max, value)
	}
	return value, nil
}

func (Float64Type) Suggest(_ context.Context, _ *dispatch.CommandContext, sb *dispatch.SuggestionsBuilder) (*dispatch.Suggestions, error) {
	return dispatch.EmptySuggestions(), nil
}

func (Float64Type) Examples() []string {
	return []string{"0", "1.2", ".5", "-1", "-.5", "-1234.56"}
}

func (t Float64Type) String() string {
	switch {
	case t.Min == -math.MaxFloat64 && t.Max == math.MaxFloat64:
		return "double()"
	case t.Max == math.MaxFloat64:
		return fmt.Sprintf("double(%v)", t.Min)
	default:
		return fmt.Sprintf("double(%v, %v)", t.Min, t.Max)
	}
}

// GetFloat64 returns the bound 64-bit float argument name.
func GetFloat64(c *dispatch.CommandContext, name string) (float64, error) {
	return dispatch.GetArgument[float64](c, name)
}
