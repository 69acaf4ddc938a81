package validation_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/tazhibayda/piazza-service/internal/domain"
	"github.com/tazhibayda/piazza-service/internal/validation"
)

type payload struct {
	Name   string   `json:"name" validate:"required,min=3,max=8"`
	Email  string   `json:"email" validate:"required,email"`
	Topics []string `json:"topics" validate:"required,min=1,dive,len=24,hexadecimal"`
}

func TestCheck(t *testing.T) {
	ok := payload{Name: "alice", Email: "a@example.com", Topics: []string{"65f1c0ffee0000000000abcd"}}
	if err := validation.Check(ok); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	cases := []struct {
		name string
		in   payload
		want string
	}{
		{"short name", payload{Name: "al", Email: "a@example.com", Topics: ok.Topics}, `"name" length must be at least 3`},
		{"bad email", payload{Name: "alice", Email: "nope", Topics: ok.Topics}, `"email" must be a valid email`},
		{"no topics", payload{Name: "alice", Email: "a@example.com", Topics: []string{}}, `"topics" must contain at least 1`},
		{"bad topic id", payload{Name: "alice", Email: "a@example.com", Topics: []string{"xyz"}}, `"topics[0]" length must be 24`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validation.Check(tc.in)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("want ErrValidation, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("reason %q does not contain %q", err.Error(), tc.want)
			}
		})
	}
}
