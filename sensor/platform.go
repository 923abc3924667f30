package sensor

import (
	"fmt"
	"strings"
)

// Platform identifies the raw axis convention of the host OS
type Platform uint8

const (
	// PlatformIOS reports roll/pitch in the engine's reference convention
	PlatformIOS Platform = iota
	// PlatformAndroid reports both axes with inverted sign
	PlatformAndroid
)

func (p Platform) String() string {
	switch p {
	case PlatformIOS:
		return "ios"
	case PlatformAndroid:
		return "android"
	}
	return "unknown"
}

// ParsePlatform maps a platform name to its Platform
// Unknown names return PlatformIOS and an error
func ParsePlatform(name string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ios", "":
		return PlatformIOS, nil
	case "android":
		return PlatformAndroid, nil
	}
	return PlatformIOS, fmt.Errorf("unknown platform %q", name)
}

// Correct converts a raw reading to the reference convention
// Only the sign of roll and pitch differs between platforms
func (p Platform) Correct(s Sample) Sample {
	if p == PlatformAndroid {
		s.Roll = -s.Roll
		s.Pitch = -s.Pitch
	}
	return s
}
