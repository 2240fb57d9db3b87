// Package ui holds the seams through which flows reach the user: moving
// between surfaces and asking for confirmation.
package ui

import "github.com/octabyte/bm-social/enums"

type Navigator interface {
	Navigate(surface enums.Surface)
}

type Confirmer interface {
	Confirm(prompt string) bool
}

type NavigatorFunc func(surface enums.Surface)

func (f NavigatorFunc) Navigate(surface enums.Surface) {
	f(surface)
}

type ConfirmerFunc func(prompt string) bool

func (f ConfirmerFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// Discard is a Navigator that goes nowhere.
var Discard Navigator = NavigatorFunc(func(enums.Surface) {})
