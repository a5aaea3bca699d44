package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateEmailLocalPart(t *testing.T) {
	localPart := GenerateEmailLocalPart("王伟")
	assert.Regexp(t, regexp.MustCompile(`^wangwei[0-9]{1,3}$`), localPart)
}

func TestGenerateRandomEmployee(t *testing.T) {
	now := time.Now()

	for i := 0; i < 20; i++ {
		in := GenerateRandomEmployee("example.com")

		require.NotEmpty(t, in.FirstName)
		require.NotEmpty(t, in.LastName)
		assert.Regexp(t, regexp.MustCompile(`^[a-z]+[0-9]{1,3}@example\.com$`), in.Email)
		assert.True(t, IsPastDate(in.Birthday.String(), now))
		assert.NotNil(t, in.Hobbies)
		assert.LessOrEqual(t, len(in.Hobbies), 3)
	}
}
