package types

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackedObjectLifetime(t *testing.T) {
	obj := TrackedObject{CreationFrame: 10, LastFrame: 15}
	assert.Equal(t, 5, obj.Lifetime())
}

func TestDebugLoggerKeepsLatest(t *testing.T) {
	d := NewDebugLogger(3)
	d.originalOutput = nil

	d.Log("ignored while disabled")
	assert.Empty(t, d.GetLogs())

	assert.True(t, d.Toggle())
	for i := 1; i <= 5; i++ {
		d.Log(fmt.Sprintf("line %d", i))
	}
	assert.Equal(t, []string{"line 3", "line 4", "line 5"}, d.GetLogs())

	assert.False(t, d.Toggle())
	d.Log("line 6")
	assert.Len(t, d.GetLogs(), 3)
}

func TestDebugLoggerStripsTimestamp(t *testing.T) {
	d := NewDebugLogger(5)
	d.originalOutput = nil
	d.Toggle()

	n, err := d.Write([]byte("2024/01/02 15:04:05 Object 1 lost at frame 12\n"))
	assert.NoError(t, err)
	assert.Equal(t, 46, n)
	assert.Equal(t, []string{"Object 1 lost at frame 12"}, d.GetLogs())
}
