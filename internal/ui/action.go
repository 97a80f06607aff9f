package ui

import "fmt"

// ActionKind tags what a region does when tapped
type ActionKind int

const (
	ActionNone ActionKind = iota // decorative region
	ActionStart
	ActionStop
	ActionOpenSettings
	ActionEditField
	ActionSettingsDone
	ActionShutdown
	ActionDigit
	ActionDelete
	ActionCancel
	ActionConfirm
)

var actionNames = map[ActionKind]string{
	ActionNone:         "none",
	ActionStart:        "start",
	ActionStop:         "stop",
	ActionOpenSettings: "open-settings",
	ActionEditField:    "edit-field",
	ActionSettingsDone: "settings-done",
	ActionShutdown:     "shutdown",
	ActionDigit:        "digit",
	ActionDelete:       "delete",
	ActionCancel:       "cancel",
	ActionConfirm:      "confirm",
}

func (k ActionKind) String() string {
	if name, ok := actionNames[k]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(k))
}

// Action is a region's bound behaviour plus its optional argument
type Action struct {
	Kind   ActionKind
	Arg    int
	HasArg bool
}

func Do(kind ActionKind) Action {
	return Action{Kind: kind}
}

func DoWith(kind ActionKind, arg int) Action {
	return Action{Kind: kind, Arg: arg, HasArg: true}
}

func (a Action) String() string {
	if a.HasArg {
		return fmt.Sprintf("%s(%d)", a.Kind, a.Arg)
	}
	return a.Kind.String()
}

// ActionHandler receives the actions picked by Dispatch
type ActionHandler interface {
	HandleAction(Action)
}

// HandlerFunc adapts a function to ActionHandler
type HandlerFunc func(Action)

func (f HandlerFunc) HandleAction(a Action) {
	f(a)
}
