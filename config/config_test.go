package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	c := DefaultConfig()
	is.Equal(c.GetInt(ConfigMaxDepth), 4)
	is.Equal(c.GetInt(ConfigThreads), 1)
	is.Equal(c.GetBool(ConfigDebug), false)
	is.NoErr(c.Validate())
}

func TestLoadFlags(t *testing.T) {
	is := is.New(t)
	c := &Config{}
	is.NoErr(c.Load([]string{"--max-depth", "3", "--threads=4", "--debug", "demo"}))
	is.Equal(c.GetInt(ConfigMaxDepth), 3)
	is.Equal(c.GetInt(ConfigThreads), 4)
	is.True(c.GetBool(ConfigDebug))
	is.Equal(c.Args(), []string{"demo"})
}

func TestLoadLeavesCommandFlags(t *testing.T) {
	is := is.New(t)
	c := &Config{}
	is.NoErr(c.Load([]string{"--threads", "2", "autoplay", "-games", "5", "--threads", "8"}))
	is.Equal(c.GetInt(ConfigThreads), 2)
	is.Equal(c.Args(), []string{"autoplay", "-games", "5", "--threads", "8"})
}

func TestLoadEnv(t *testing.T) {
	is := is.New(t)
	t.Setenv("OG_MAX_DEPTH", "2")
	c := &Config{}
	is.NoErr(c.Load(nil))
	is.Equal(c.GetInt(ConfigMaxDepth), 2)

	// flags win over the environment
	is.NoErr(c.Load([]string{"--max-depth=5"}))
	is.Equal(c.GetInt(ConfigMaxDepth), 5)
}

func TestLoadFile(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "og.yaml")
	is.NoErr(os.WriteFile(path, []byte("max-depth: 6\nautoplay-games: 3\n"), 0o644))
	c := &Config{}
	is.NoErr(c.Load([]string{"--config", path}))
	is.Equal(c.GetInt(ConfigMaxDepth), 6)
	is.Equal(c.GetInt(ConfigAutoplayGames), 3)
}

func TestLoadRejectsBadValues(t *testing.T) {
	is := is.New(t)
	c := &Config{}
	is.True(c.Load([]string{"--threads=0"}) != nil)
	is.True(c.Load([]string{"--max-depth=-1"}) != nil)
	is.True(c.Load([]string{"--no-such-flag"}) != nil)
	is.True(c.Load([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}) != nil)
}
