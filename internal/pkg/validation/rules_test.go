package validation

import (
	"errors"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin/binding"
)

type form struct {
	Name  string `binding:"required,notblank"`
	Email string `binding:"required"`
}

func TestBindingRules(t *testing.T) {
	if err := RegisterBindingRules(); err != nil {
		t.Fatalf("RegisterBindingRules: %v", err)
	}
	if err := RegisterBindingRules(); err != nil {
		t.Fatalf("second RegisterBindingRules: %v", err)
	}

	tests := []struct {
		name string
		in   form
		want []string
	}{
		{"valid", form{Name: "Ann", Email: "a@x.com"}, nil},
		{"blank name", form{Name: "   ", Email: "a@x.com"}, []string{"Name must not be blank"}},
		{"missing both", form{}, []string{"Name is required", "Email is required"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(&tt.in)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error %v", err)
				}
				return
			}
			if got := Describe(err); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Describe = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDescribePlainError(t *testing.T) {
	got := Describe(errors.New("EOF"))
	if len(got) != 1 || got[0] != "EOF" {
		t.Fatalf("Describe = %q", got)
	}
}
