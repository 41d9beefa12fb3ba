package native

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandle_Predefined(t *testing.T) {
	for _, h := range Predefined {
		assert.True(t, h.IsPredefined(), h.RootName())
		assert.NotEmpty(t, h.RootName())
	}
	assert.False(t, InvalidHandle.IsPredefined())
	assert.Empty(t, Handle(42).RootName())
}

func TestHandle_Remotable(t *testing.T) {
	assert.True(t, HKEY_LOCAL_MACHINE.Remotable())
	assert.True(t, HKEY_USERS.Remotable())
	assert.True(t, HKEY_PERFORMANCE_TEXT.Remotable())
	assert.False(t, HKEY_CURRENT_USER.Remotable())
	assert.False(t, HKEY_CLASSES_ROOT.Remotable())
	assert.False(t, HKEY_CURRENT_CONFIG.Remotable())
}
