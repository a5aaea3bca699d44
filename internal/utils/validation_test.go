package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsPastDate(t *testing.T) {
	now := time.Date(2024, time.June, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{name: "long ago", value: "1970-02-15", want: true},
		{name: "yesterday", value: "2024-06-09", want: true},
		{name: "today", value: "2024-06-10", want: false},
		{name: "tomorrow", value: "2024-06-11", want: false},
		{name: "not a date", value: "15/02/1970", want: false},
		{name: "empty", value: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPastDate(tt.value, now))
		})
	}
}
