package configuration

import (
	"github.com/dustin/go-humanize"
)

// ByteSize is a uint64 value that supports unmarshalling from both
// human-friendly string representations and numeric representations. It can
// be cast to a uint64 value, where it represents a byte count.
type ByteSize uint64

// UnmarshalText implements the text unmarshalling interface used when loading
// from YAML files.
func (s *ByteSize) UnmarshalText(textBytes []byte) error {
	// Convert the bytes to a string.
	text := string(textBytes)

	// Parse and store the value.
	value, err := humanize.ParseBytes(text)
	if err != nil {
		return err
	}
	*s = ByteSize(value)

	// Success.
	return nil
}

// UnmarshalYAML implements YAML unmarshalling for byte sizes. The yaml.v2
// package doesn't invoke encoding.TextUnmarshaler, so this adapter decodes
// the node as a string and delegates to UnmarshalText.
func (s *ByteSize) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var text string
	if err := unmarshal(&text); err != nil {
		return err
	}
	return s.UnmarshalText([]byte(text))
}

// String provides a human-friendly representation of the byte size.
func (s ByteSize) String() string {
	return humanize.Bytes(uint64(s))
}
