package engine

import "github.com/chazu/cardstock/pkg/card"

// Script is the scene description produced by evaluating a card script.
// It is plain data: the app stages it onto a host afterwards.
type Script struct {
	Cards []card.Spec
	Setup card.Setup
}

// NewScript returns a script description with the default staging setup and
// no cards.
func NewScript() *Script {
	return &Script{Setup: card.DefaultSetup()}
}
