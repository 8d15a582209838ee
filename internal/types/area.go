// Package types provides shared type definitions used across Atlas packages.
// It exists to break import cycles between perception, prompt and chat and
// holds only foundational data structures.
package types

import (
	"errors"
	"fmt"
	"strings"
)

// Area tags which part of the mythological corpus a conversation pertains to.
// The zero value means "no area".
type Area string

const (
	AreaCelestialClocks  Area = "celestial-clocks"
	AreaMeteorSteel      Area = "meteor-steel"
	AreaFallenStarlight  Area = "fallen-starlight"
	AreaStoryForge       Area = "story-forge"
	AreaMythologyChannel Area = "mythology-channel"
	AreaGames            Area = "games"
	AreaMythicEarth      Area = "mythic-earth"
	AreaLibrary          Area = "library"
	AreaStoryOfStories   Area = "story-of-stories"
	AreaStore            Area = "store"
)

// ErrUnknownArea is returned by ParseArea for strings outside the closed set.
var ErrUnknownArea = errors.New("unknown area")

// ValidAreas lists every area in classifier precedence order.
var ValidAreas = []Area{
	AreaCelestialClocks,
	AreaMeteorSteel,
	AreaFallenStarlight,
	AreaStoryForge,
	AreaMythologyChannel,
	AreaGames,
	AreaMythicEarth,
	AreaLibrary,
	AreaStoryOfStories,
	AreaStore,
}

// IsValid reports whether a is one of ValidAreas.
func (a Area) IsValid() bool {
	for _, v := range ValidAreas {
		if a == v {
			return true
		}
	}
	return false
}

func (a Area) String() string {
	return string(a)
}

// ParseArea validates a caller-supplied area string. The empty string parses
// to the zero Area without error so callers can treat "no area" uniformly.
func ParseArea(s string) (Area, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	a := Area(s)
	if !a.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownArea, s)
	}
	return a, nil
}

// AreaStrings returns ValidAreas as plain strings (for JSON and flag help).
func AreaStrings() []string {
	out := make([]string, len(ValidAreas))
	for i, a := range ValidAreas {
		out[i] = string(a)
	}
	return out
}
