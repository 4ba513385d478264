package cli

import (
	"fmt"

	"scriptpad/internal/model"
	"scriptpad/internal/script"
)

func errNotFound(kind, id string) error {
	return model.NotFoundError{Kind: kind, ID: id}
}

type usageError struct {
	msg string
}

func (e usageError) Error() string { return e.msg }

func errUsage(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

// noButtonError is returned when --press names a label the alert does not offer.
type noButtonError struct {
	alert script.Alert
	text  string
}

func (e noButtonError) Error() string {
	labels := make([]string, 0, len(e.alert.Buttons))
	for _, b := range e.alert.Buttons {
		labels = append(labels, fmt.Sprintf("%q", b.Text))
	}
	return fmt.Sprintf("alert %d has no button %q (buttons: %v)", e.alert.ID, e.text, labels)
}
