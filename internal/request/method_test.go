package request

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_LookupMethod_All_Tokens_Any_Case(t *testing.T) {
	for m := MethodUnknown + 1; m < methodCount; m++ {
		tok := m.String()
		variants := []string{tok, strings.ToLower(tok), mixCase(tok)}
		for _, v := range variants {
			got, ok := LookupMethod([]byte(v))
			assert.True(t, ok, v)
			assert.Equal(t, m, got, v)
		}
	}
	assert.Equal(t, 33, int(methodCount)-1)
}

func Test_LookupMethod_Unknown(t *testing.T) {
	for _, v := range []string{"", "GE", "GETS", "M-SEARCH", "BREW", "DELETEX", "ABCDEFGHIJKLMNOPQRSTUVWXYZ"} {
		got, ok := LookupMethod([]byte(v))
		assert.False(t, ok, v)
		assert.Equal(t, MethodUnknown, got, v)
	}
}

func Test_Method_String(t *testing.T) {
	assert.Equal(t, "GET", MethodGet.String())
	assert.Equal(t, "MKCALENDAR", MethodMkCalendar.String())
	assert.Equal(t, "", MethodUnknown.String())
	assert.Equal(t, "", Method(200).String())
}

func mixCase(s string) string {
	b := []byte(s)
	for i := range b {
		if i%2 == 1 {
			b[i] = b[i] + ('a' - 'A')
		}
	}
	return string(b)
}
