package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/doclex/pkg/config"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()

	assert.Equal(t, "java", cfg.Dialect)
	assert.Equal(t, config.DefaultTabStop, cfg.TabStop)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.Equal(t, config.ViewTokens, cfg.View)
	assert.Equal(t, byte('@'), cfg.Introducer())
	assert.Contains(t, cfg.Extensions, ".java")

	// Defaults must not share backing storage between configs.
	cfg.Extensions[0] = ".changed"
	assert.Equal(t, ".java", config.DefaultExtensions[0])
}

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies slices", func(t *testing.T) {
		t.Parallel()

		original := &config.Config{
			Extensions: []string{".java"},
			Ignore:     []string{"vendor/**"},
			Strict:     true,
			Color:      config.ColorNever,
		}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, original, clone)
		assert.Equal(t, original, clone)

		clone.Extensions[0] = ".go"
		clone.Ignore[0] = "changed"
		assert.Equal(t, ".java", original.Extensions[0])
		assert.Equal(t, "vendor/**", original.Ignore[0])
	})
}

func TestConfig_Introducer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		introducer string
		want       byte
	}{
		{name: "default", introducer: "", want: '@'},
		{name: "custom", introducer: "!", want: '!'},
		{name: "too long", introducer: "@@", want: '@'},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			cfg := &config.Config{TagIntroducer: testCase.introducer}
			assert.Equal(t, testCase.want, cfg.Introducer())
		})
	}
}

func TestFormatAndViewValidity(t *testing.T) {
	t.Parallel()

	assert.True(t, config.FormatJSON.IsValid())
	assert.False(t, config.OutputFormat("sarif").IsValid())
	assert.True(t, config.ViewOutline.IsValid())
	assert.False(t, config.View("html").IsValid())
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	original := config.NewConfig()
	original.Ignore = []string{"build/**"}
	original.Jobs = 4
	original.Strict = true

	data, err := original.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "tab_stop: 8")
	assert.NotContains(t, string(data), "strict")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, original.Dialect, parsed.Dialect)
	assert.Equal(t, original.Extensions, parsed.Extensions)
	assert.Equal(t, original.Ignore, parsed.Ignore)
	assert.Equal(t, 4, parsed.Jobs)
	assert.False(t, parsed.Strict)
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.FromYAML(nil)
		require.NoError(t, err)
		assert.Equal(t, &config.Config{}, cfg)
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()
		_, err := config.FromYAML([]byte("tabstop: 4\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse yaml")
	})

	t.Run("partial", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.FromYAML([]byte("dialect: go\nview: outline\n"))
		require.NoError(t, err)
		assert.Equal(t, "go", cfg.Dialect)
		assert.Equal(t, config.ViewOutline, cfg.View)
		assert.Zero(t, cfg.TabStop)
	})
}

func TestToYAMLWithHeader(t *testing.T) {
	t.Parallel()

	data, err := (&config.Config{Dialect: "go"}).ToYAMLWithHeader("# doclex")
	require.NoError(t, err)
	assert.Equal(t, "# doclex\n\ndialect: go\n", string(data))
}
