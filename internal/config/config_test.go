package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoad_Defaults(t *testing.T) {
	resetViper()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"RootDir", cfg.RootDir, "."},
		{"Verbose", cfg.Verbose, false},
		{"Env", cfg.Env, "development"},
		{"StoreDriver", cfg.Store.Driver, DriverMemory},
		{"StorePath", cfg.Store.Path, ".filelink/index.db"},
		{"Dirs", cfg.Dirs, nil},
		{"Production", cfg.Production(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
	if diff := cmp.Diff([]string{"**/*"}, cfg.Sources); diff != "" {
		t.Errorf("Sources mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "root_dir",
			envKey: "FILELINK_ROOT_DIR",
			envVal: "/srv/site",
			field:  func(c Config) any { return c.RootDir },
			want:   "/srv/site",
		},
		{
			name:   "verbose",
			envKey: "FILELINK_VERBOSE",
			envVal: "true",
			field:  func(c Config) any { return c.Verbose },
			want:   true,
		},
		{
			name:   "env",
			envKey: "FILELINK_ENV",
			envVal: "production",
			field:  func(c Config) any { return c.Production() },
			want:   true,
		},
		{
			name:   "dirs",
			envKey: "FILELINK_DIRS",
			envVal: "src/images",
			field:  func(c Config) any { return c.Dirs },
			want:   "src/images",
		},
		{
			name:   "store.driver",
			envKey: "FILELINK_STORE_DRIVER",
			envVal: "sqlite",
			field:  func(c Config) any { return c.Store.Driver },
			want:   "sqlite",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			viper.SetEnvPrefix("FILELINK")
			viper.SetEnvKeyReplacer(envKeyReplacer)
			viper.AutomaticEnv()

			t.Setenv(tt.envKey, tt.envVal)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			got := tt.field(cfg)
			if got != tt.want {
				t.Errorf("%s: got %v (%T), want %v (%T)", tt.name, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestLoad_UnknownDriver(t *testing.T) {
	resetViper()
	viper.Set("store.driver", "postgres")

	if _, err := Load(); err == nil {
		t.Error("Load() accepted unknown store driver")
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	resetViper()

	dir := t.TempDir()
	file := filepath.Join(dir, ".filelink.toml")
	body := `root_dir = "site"
verbose = true
sources = ["src/**/*"]

[dirs]
fileByPhoto = "src/images"
fileByDoc = "static/docs"

[store]
driver = "sqlite"
path = "index.db"

[[fields]]
field = "cover"
extension = "fileByPhoto"

[[fields]]
field = "attachments"
extension = "fileByAbsolutePath"
path = "static"
`
	if err := os.WriteFile(file, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	viper.SetConfigFile(file)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	wantDirs := map[string]any{"fileByPhoto": "src/images", "fileByDoc": "static/docs"}
	if diff := cmp.Diff(wantDirs, cfg.Dirs); diff != "" {
		t.Errorf("Dirs mismatch (-want +got):\n%s", diff)
	}
	wantFields := []FieldBinding{
		{Field: "cover", Extension: "fileByPhoto"},
		{Field: "attachments", Extension: "fileByAbsolutePath", Path: "static"},
	}
	if diff := cmp.Diff(wantFields, cfg.Fields); diff != "" {
		t.Errorf("Fields mismatch (-want +got):\n%s", diff)
	}
	if cfg.RootDir != "site" || !cfg.Verbose || cfg.Store.Driver != DriverSQLite || cfg.Store.Path != "index.db" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}
