package main

import (
	"testing"

	"github.com/e0087/matiate/common/config"
	"github.com/stretchr/testify/assert"
)

func TestResolveLogLevel(t *testing.T) {
	conf := config.Default()
	conf.Log.Level = "debug"

	assert.Equal(t, "debug", resolveLogLevel("info", false, conf))
	assert.Equal(t, "warn", resolveLogLevel("warn", true, conf))

	conf.Log.Level = ""
	assert.Equal(t, "info", resolveLogLevel("info", false, conf))
}
