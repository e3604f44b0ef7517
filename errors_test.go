package parvec

import (
	"errors"
	"strings"
	"testing"
)

func TestStructuredErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantType ErrorType
		wantOp   string
		wantMsg  string
		checkFn  func(error) bool
	}{
		{
			name:     "Invalid Size Error",
			err:      ErrInvalidSize,
			wantType: ErrTypeInvalidArg,
			wantOp:   "Malloc",
			wantMsg:  "size must be non-negative",
			checkFn:  IsInvalidArgError,
		},
		{
			name:     "Double Free Error",
			err:      ErrDoubleFree,
			wantType: ErrTypeMemory,
			wantOp:   "Free",
			wantMsg:  "double free detected",
			checkFn:  IsMemoryError,
		},
		{
			name:     "Invalid Device Error",
			err:      ErrInvalidDevice,
			wantType: ErrTypeInvalidArg,
			wantOp:   "SetDevice",
			wantMsg:  "invalid device ID",
			checkFn:  IsInvalidArgError,
		},
		{
			name:     "Length Mismatch Error",
			err:      ErrLengthMismatch,
			wantType: ErrTypeInvalidArg,
			wantOp:   "Add",
			wantMsg:  "input lengths differ",
			checkFn:  IsInvalidArgError,
		},
		{
			name:     "Device Error",
			err:      NewDeviceError("Launch", "kernel thread fault", nil),
			wantType: ErrTypeDevice,
			wantOp:   "Launch",
			wantMsg:  "kernel thread fault",
			checkFn:  IsDeviceError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e *Error
			if !errors.As(tt.err, &e) {
				t.Fatalf("expected *Error, got %T", tt.err)
			}
			if e.Type != tt.wantType {
				t.Errorf("Type = %v, want %v", e.Type, tt.wantType)
			}
			if e.Op != tt.wantOp {
				t.Errorf("Op = %q, want %q", e.Op, tt.wantOp)
			}
			if e.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", e.Message, tt.wantMsg)
			}
			if !tt.checkFn(tt.err) {
				t.Error("type check helper returned false")
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("underlying fault")
	err := NewDeviceError("Synchronize", "device reported failure", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if !strings.Contains(err.Error(), "caused by: underlying fault") {
		t.Errorf("error string should include cause, got %q", err.Error())
	}
}

func TestErrorTypeString(t *testing.T) {
	cases := map[ErrorType]string{
		ErrTypeMemory:     "Memory",
		ErrTypeInvalidArg: "InvalidArgument",
		ErrTypeExecution:  "Execution",
		ErrTypeDevice:     "Device",
		ErrorType(99):     "Unknown",
	}

	for typ, want := range cases {
		if got := typ.String(); got != want {
			t.Errorf("ErrorType(%d).String() = %q, want %q", typ, got, want)
		}
	}
}
