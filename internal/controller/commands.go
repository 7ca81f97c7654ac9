package controller

import (
	"strings"

	"golang.org/x/mobile/event/key"
)

// Command is a discrete transform gesture.
type Command int

const (
	CommandNone Command = iota
	RotateCW
	RotateCCW
	ScaleUp
	ScaleDown
)

func (c Command) String() string {
	switch c {
	case RotateCW:
		return "rotate-cw"
	case RotateCCW:
		return "rotate-ccw"
	case ScaleUp:
		return "scale-up"
	case ScaleDown:
		return "scale-down"
	default:
		return "none"
	}
}

// CommandForCode maps a physical key to a command. Keys other than the four
// arrows map to CommandNone.
func CommandForCode(code key.Code) Command {
	switch code {
	case key.CodeRightArrow:
		return RotateCW
	case key.CodeLeftArrow:
		return RotateCCW
	case key.CodeUpArrow:
		return ScaleUp
	case key.CodeDownArrow:
		return ScaleDown
	}
	return CommandNone
}

var keyNames = map[string]Command{
	"arrowright": RotateCW,
	"arrowleft":  RotateCCW,
	"arrowup":    ScaleUp,
	"arrowdown":  ScaleDown,
	"right":      RotateCW,
	"left":       RotateCCW,
	"up":         ScaleUp,
	"down":       ScaleDown,
}

// CommandForName maps a DOM-style key name ("ArrowRight") or a short arrow
// name ("right") to a command.
func CommandForName(name string) Command {
	if c, ok := keyNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	return CommandNone
}
