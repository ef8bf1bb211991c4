package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("ASSESSMENT_SHUFFLE_ON_RETAKE", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.False(t, cfg.ShuffleOnRetake)
	assert.Equal(t, "course-events", cfg.RedisChannel)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"memory", Config{StoreDriver: DriverMemory}, false},
		{"redis without addr", Config{StoreDriver: DriverRedis}, true},
		{"redis with addr", Config{StoreDriver: DriverRedis, RedisAddr: "localhost:6379"}, false},
		{"unknown driver", Config{StoreDriver: "mongo"}, true},
		{"half a superadmin", Config{StoreDriver: DriverMemory, SuperAdminEmail: "root@example.com"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetEnvBoolFallsBackOnGarbage(t *testing.T) {
	t.Setenv("SOME_FLAG", "maybe")
	assert.True(t, getEnvBool("SOME_FLAG", true))
}
