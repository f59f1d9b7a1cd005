// Package logging defines the structured error channel
// used by the theme loader and the cache, and the slog based
// logger the command line tool routes it to.
package logging

import "fmt"

// Severity of a reported event.
type Severity uint8

const (
	Info Severity = iota
	Warn
	Error
	Critical
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "Info"
	case Warn:
		return "Warn"
	case Error:
		return "Error"
	case Critical:
		return "Critical"
	default:
		return "UNKNOWN"
	}
}

// Code identifies a failure. The numeric values are stable.
type Code uint8

const (
	Unspecified Code = iota
	NoError
	CannotOpenFile
	DocumentParseFailed
	ArrayExpected
	ObjectExpected
	ObjectOrStringExpected
	StringExpected
	NumberExpected
	IntegerExpected
	NameExpected
	ThemeExpected
	InvalidHexColor
	OneOfColorOrGradient
	TooManyGradientStops
	InvalidGradientStopIndex
	GradientStopNotPresent
	RemovingGradientUnsupported
	GradientNotPresent
	InvalidLineCap
)

var codeNames = [...]string{
	Unspecified:                 "Unspecified",
	NoError:                     "NoError",
	CannotOpenFile:              "CannotOpenFile",
	DocumentParseFailed:         "DocumentParseFailed",
	ArrayExpected:               "ArrayExpected",
	ObjectExpected:              "ObjectExpected",
	ObjectOrStringExpected:      "ObjectOrStringExpected",
	StringExpected:              "StringExpected",
	NumberExpected:              "NumberExpected",
	IntegerExpected:             "IntegerExpected",
	NameExpected:                "NameExpected",
	ThemeExpected:               "ThemeExpected",
	InvalidHexColor:             "InvalidHexColor",
	OneOfColorOrGradient:        "OneOfColorOrGradient",
	TooManyGradientStops:        "TooManyGradientStops",
	InvalidGradientStopIndex:    "InvalidGradientStopIndex",
	GradientStopNotPresent:      "GradientStopNotPresent",
	RemovingGradientUnsupported: "RemovingGradientUnsupported",
	GradientNotPresent:          "GradientNotPresent",
	InvalidLineCap:              "InvalidLineCap",
}

func (c Code) String() string {
	if int(c) < len(codeNames) {
		return codeNames[c]
	}
	return fmt.Sprintf("<unknown Code %d>", uint8(c))
}
