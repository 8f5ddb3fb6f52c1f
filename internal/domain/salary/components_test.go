package salary

import (
	"errors"
	"testing"
)

func TestDefaultComponentsValid(t *testing.T) {
	if err := DefaultComponents().Validate(); err != nil {
		t.Fatalf("default components should validate: %v", err)
	}
}

func TestComponentsValidate(t *testing.T) {
	cases := []struct {
		name       string
		components Components
		wantErr    bool
	}{
		{"empty", Components{}, true},
		{"nil", nil, true},
		{"negative", Components{"BASIC": -10, "HOUSING": 110}, true},
		{"over hundred", Components{"BASIC": 150}, true},
		{"sum short", Components{"BASIC": 60, "HOUSING": 30}, true},
		{"sum over tolerance", Components{"BASIC": 50, "HOUSING": 50.02}, true},
		{"sum within tolerance", Components{"BASIC": 50, "HOUSING": 50.005}, false},
		{"exact", Components{"BASIC": 70, "HOUSING": 30}, false},
	}

	for _, tc := range cases {
		err := tc.components.Validate()
		if tc.wantErr && !errors.Is(err, ErrConfiguration) {
			t.Fatalf("%s: err = %v, want ErrConfiguration", tc.name, err)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("%s: unexpected err %v", tc.name, err)
		}
	}
}

func TestNewCalculatorRejectsInvalidConfiguration(t *testing.T) {
	if _, err := NewCalculator(Components{"BASIC": 99}); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("err = %v, want ErrConfiguration", err)
	}
	if _, err := NewCalculatorWithEmployerRate(DefaultComponents(), 0.05); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("err = %v, want ErrConfiguration for sub-minimum employer rate", err)
	}
}

func TestCalculatorFreezesComponents(t *testing.T) {
	components := DefaultComponents()
	calc, err := NewCalculator(components)
	if err != nil {
		t.Fatalf("NewCalculator: %v", err)
	}

	components[ComponentBasic] = 99

	if got := calc.Components()[ComponentBasic]; got != 30 {
		t.Fatalf("BASIC = %v after caller mutation, want frozen 30", got)
	}
}

func TestParseContractType(t *testing.T) {
	cases := []struct {
		in   string
		want ContractType
	}{
		{"Full Time", ContractFullTime},
		{"full time", ContractFullTime},
		{" FULL TIME ", ContractFullTime},
		{"Contract", ContractContract},
		{"contract", ContractContract},
	}
	for _, tc := range cases {
		got, err := ParseContractType(tc.in)
		if err != nil {
			t.Fatalf("ParseContractType(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseContractType(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	if _, err := ParseContractType("intern"); !errors.Is(err, ErrUnknownContractType) {
		t.Fatalf("err = %v, want ErrUnknownContractType", err)
	}
}
