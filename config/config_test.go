package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromLookupDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupOf(nil))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "cattle_farm.db", cfg.DBPath)
	assert.Equal(t, 10, cfg.RecentLimit)
	assert.Equal(t, "EverGraze Farms", cfg.FarmName)
	assert.Equal(t, "fs", cfg.Export.Driver)
	assert.Equal(t, "static", cfg.Export.Dir)
}

func TestFromLookupOverrides(t *testing.T) {
	cfg, err := FromLookup(lookupOf(map[string]string{
		"PORT":                 "9000",
		"DB_PATH":              "/tmp/farm.db",
		"RECENT_LIMIT":         "25",
		"EXPORT_DRIVER":        "S3",
		"EXPORT_S3_BUCKET":     "farm-exports",
		"EXPORT_S3_PATH_STYLE": "true",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "/tmp/farm.db", cfg.DBPath)
	assert.Equal(t, 25, cfg.RecentLimit)
	assert.Equal(t, "s3", cfg.Export.Driver)
	assert.Equal(t, "farm-exports", cfg.Export.S3Bucket)
	assert.True(t, cfg.Export.S3PathStyle)
}

func TestFromLookupRejectsBadValues(t *testing.T) {
	cases := map[string]map[string]string{
		"zero limit":     {"RECENT_LIMIT": "0"},
		"text limit":     {"RECENT_LIMIT": "ten"},
		"unknown driver": {"EXPORT_DRIVER": "ftp"},
		"s3 w/o bucket":  {"EXPORT_DRIVER": "s3"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromLookup(lookupOf(env))
			assert.Error(t, err)
		})
	}
}
