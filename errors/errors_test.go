package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseDereference,
				Kind:   KindNullDereference,
				Path:   []string{"wafer", "points", "3"},
				GoType: "wafer.Concentration",
				Detail: "no resource",
			},
			contains: []string{"[dereference]", "null_dereference", "wafer.points.3", "wafer.Concentration", " - no resource"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseIndex,
				Kind:  KindOutOfRange,
			},
			contains: []string{"[index]", "out_of_range"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseAdopt,
				Kind:   KindAllocation,
				Detail: "budget exhausted",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[adopt]", "allocation", ": budget exhausted", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseAdopt,
		Kind:  KindAllocation,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseDereference,
		Kind:  KindNullDereference,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseDereference, Kind: KindNullDereference}) {
		t.Error("Is should match same phase and kind")
	}

	if err.Is(&Error{Phase: PhaseIndex, Kind: KindNullDereference}) {
		t.Error("Is should not match different phase")
	}

	if err.Is(&Error{Phase: PhaseDereference, Kind: KindAllocation}) {
		t.Error("Is should not match different kind")
	}

	// Sentinels carry no phase and match on kind alone
	if !errors.Is(err, ErrNullDereference) {
		t.Error("errors.Is should match the kind sentinel")
	}
	if errors.Is(err, ErrAllocation) {
		t.Error("errors.Is should not match another kind sentinel")
	}

	wrapped := Wrap(PhaseSimulate, KindInvalidInput, err, "set density")
	if !errors.Is(wrapped, ErrNullDereference) {
		t.Error("errors.Is should find the kind through the cause chain")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseAdopt, KindAllocation).
		Path("wafer", "seed").
		GoType("wafer.Concentration").
		Value(8).
		Cause(cause).
		Detail("budget of %d cells exhausted", 8).
		Build()

	if err.Phase != PhaseAdopt {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseAdopt)
	}
	if err.Kind != KindAllocation {
		t.Errorf("Kind = %v, want %v", err.Kind, KindAllocation)
	}
	if len(err.Path) != 2 || err.Path[0] != "wafer" || err.Path[1] != "seed" {
		t.Errorf("Path = %v, want [wafer seed]", err.Path)
	}
	if err.GoType != "wafer.Concentration" {
		t.Errorf("GoType = %v, want 'wafer.Concentration'", err.GoType)
	}
	if err.Value != 8 {
		t.Errorf("Value = %v, want 8", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "budget of 8 cells exhausted" {
		t.Errorf("Detail = %v, want 'budget of 8 cells exhausted'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("NullDereference", func(t *testing.T) {
		err := NullDereference(PhaseDereference, "*int")
		if err.Kind != KindNullDereference {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNullDereference)
		}
		if err.GoType != "*int" {
			t.Errorf("GoType = %v, want '*int'", err.GoType)
		}
	})

	t.Run("AllocationFailed", func(t *testing.T) {
		cause := errors.New("no memory")
		err := AllocationFailed(PhaseAdopt, "count cell", cause)
		if err.Kind != KindAllocation {
			t.Errorf("Kind = %v, want %v", err.Kind, KindAllocation)
		}
		if !strings.Contains(err.Detail, "count cell") {
			t.Errorf("Detail = %v, should name what failed", err.Detail)
		}
		if !errors.Is(err, cause) {
			t.Error("AllocationFailed should wrap its cause")
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := Unsupported(PhaseIndex, "release policy has no element accessor")
		if err.Kind != KindUnsupported {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnsupported)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseLookup, "element", "Xx")
		if err.Kind != KindNotFound {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNotFound)
		}
		if err.Value != "Xx" {
			t.Errorf("Value = %v, want Xx", err.Value)
		}
	})

	t.Run("InvalidInput", func(t *testing.T) {
		err := InvalidInput(PhaseConfig, []string{"step"}, "must be positive")
		if err.Kind != KindInvalidInput {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidInput)
		}
		if !strings.Contains(err.Error(), "at step") {
			t.Errorf("Error() = %q, should contain path", err.Error())
		}
	})

	t.Run("DoubleRelease", func(t *testing.T) {
		err := DoubleRelease("int", 0x1000)
		if err.Kind != KindDoubleRelease || err.Phase != PhaseRelease {
			t.Errorf("got %v/%v", err.Phase, err.Kind)
		}
		if !strings.Contains(err.Detail, "0x1000") {
			t.Errorf("Detail = %v, should contain address", err.Detail)
		}
	})

	t.Run("OutOfRange", func(t *testing.T) {
		err := OutOfRange(PhaseSimulate, []string{"points"}, 10, 5)
		if err.Kind != KindOutOfRange {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfRange)
		}
		if err.Value != 10 {
			t.Errorf("Value = %v, want 10", err.Value)
		}
	})
}
