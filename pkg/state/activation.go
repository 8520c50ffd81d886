package state

import "fmt"

// Activation tracks the one-shot account activation request.
type Activation struct {
	Loading bool
	Done    bool
	Message string
	Error   string
}

type ActivationAction interface {
	activationAction()
}

type (
	ActivationBegin struct{}

	ActivationSuccess struct {
		Message string
	}

	ActivationFail struct {
		Message string
	}

	ActivationClean struct{}
)

func (ActivationBegin) activationAction()   {}
func (ActivationSuccess) activationAction() {}
func (ActivationFail) activationAction()    {}
func (ActivationClean) activationAction()   {}

func ReduceActivation(s Activation, action ActivationAction) Activation {
	switch a := action.(type) {
	case ActivationBegin:
		return Activation{Loading: true}
	case ActivationSuccess:
		return Activation{Done: true, Message: a.Message}
	case ActivationFail:
		return Activation{Error: a.Message}
	case ActivationClean:
		return Activation{}
	default:
		panic(fmt.Sprintf("state: unknown activation action %T", action))
	}
}
