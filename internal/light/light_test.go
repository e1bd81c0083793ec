package light

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordPin struct {
	calls []bool
	err   error
}

func (p *recordPin) Set(_ context.Context, on bool) error {
	p.calls = append(p.calls, on)
	return p.err
}

func Test_State_Set(t *testing.T) {
	pin := &recordPin{}
	s := NewState(pin, true)
	assert.True(t, s.On())

	require.NoError(t, s.Set(context.Background(), false))
	assert.False(t, s.On())
	require.NoError(t, s.Set(context.Background(), true))
	assert.True(t, s.On())
	assert.Equal(t, []bool{false, true}, pin.calls)
}

func Test_State_Pin_Error(t *testing.T) {
	boom := errors.New("gpio busy")
	s := NewState(&recordPin{err: boom}, true)
	err := s.Set(context.Background(), false)
	assert.ErrorIs(t, err, boom)
	assert.False(t, s.On())
}

func Test_State_Without_Pin(t *testing.T) {
	s := NewState(nil, false)
	require.NoError(t, s.Set(context.Background(), true))
	assert.True(t, s.On())
}

func Test_LogPin(t *testing.T) {
	assert.NoError(t, LogPin{Name: "led0"}.Set(context.Background(), true))
}
