package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestUserError(t *testing.T) {
	cause := fmt.Errorf("%w: status 401", ErrAuthentication)
	err := NewUserError("Session expired", cause)

	if !errors.Is(err, ErrAuthentication) {
		t.Error("wrapped sentinel must survive")
	}
	if Message(err) != "Session expired" {
		t.Errorf("Message = %q", Message(err))
	}

	var ue *UserError
	if !errors.As(err, &ue) {
		t.Fatal("expected a UserError")
	}
	if ue.Unwrap() != cause {
		t.Error("Unwrap must return the cause")
	}
}

func TestUserError_WithoutCause(t *testing.T) {
	err := NewUserError("Please fill in all fields", nil)
	if err.Error() != "Please fill in all fields" {
		t.Errorf("Error = %q", err.Error())
	}
}

func TestMessage_PlainError(t *testing.T) {
	if got := Message(errors.New("boom")); got != "boom" {
		t.Errorf("Message = %q", got)
	}
	if got := Message(nil); got != "" {
		t.Errorf("Message(nil) = %q", got)
	}
}

func TestClassifiers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{name: "validation", err: NewUserError("bad input", ErrValidation), check: IsValidation},
		{name: "connectivity", err: NewUserError("offline", fmt.Errorf("%w: dial tcp", ErrConnectivity)), check: IsConnectivity},
		{name: "server", err: NewUserError("oops", fmt.Errorf("%w: status 500", ErrServer)), check: IsServer},
		{name: "authentication", err: NewUserError("nope", fmt.Errorf("%w: status 401", ErrAuthentication)), check: IsAuthentication},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.check(tt.err) {
				t.Errorf("classifier missed %v", tt.err)
			}
			if tt.name != "validation" && IsValidation(tt.err) {
				t.Error("cross-class match")
			}
		})
	}
}
