package ed

import (
	"src.rsed.sh/pkg/ui"
)

// Input supplies actions to an Editor.
type Input interface {
	ReadAction(ui.Mode) (ui.Action, error)
}

// Run reads and handles actions until the editor stops running. Parse errors
// and errors from handling actions are passed to onError, after which Run
// continues with the next action. Any other error from the input ends Run and
// is returned.
func (e *Editor) Run(in Input, onError func(error)) error {
	for e.running {
		action, err := in.ReadAction(e.InputMode())
		if err != nil {
			if KindOf(err) != ParseError {
				logger.Println("error reading input:", err)
				return err
			}
			onError(err)
			continue
		}
		if err := e.Handle(action); err != nil {
			onError(err)
		}
	}
	return nil
}
