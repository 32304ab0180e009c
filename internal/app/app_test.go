package app

import (
	"testing"

	"learnify_backend/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestShouldMigrate(t *testing.T) {
	cases := []struct {
		name  string
		mode  string
		force bool
		want  bool
	}{
		{"DebugAlwaysMigrates", "debug", false, true},
		{"ReleaseSkipsByDefault", "release", false, false},
		{"ReleaseWithForceFlag", "release", true, true},
		{"DebugWithForceFlag", "debug", true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Config{ForceMigrate: tc.force}
			cfg.Server.Mode = tc.mode
			assert.Equal(t, tc.want, shouldMigrate(cfg))
		})
	}
}
