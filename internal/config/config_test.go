package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	if cfg.App.Name != "complaint-service" {
		t.Errorf("App.Name = %q, want %q", cfg.App.Name, "complaint-service")
	}
	if cfg.App.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q, want %q", cfg.App.Addr(), "0.0.0.0:8080")
	}
	if cfg.Storage.MaxUploadBytes != 5<<20 {
		t.Errorf("MaxUploadBytes = %d, want %d", cfg.Storage.MaxUploadBytes, 5<<20)
	}
	if cfg.Storage.UserDataFile != "data/users.json" {
		t.Errorf("UserDataFile = %q, want %q", cfg.Storage.UserDataFile, "data/users.json")
	}
	if cfg.Auth.AccessTokenTTL() != time.Hour {
		t.Errorf("AccessTokenTTL() = %v, want %v", cfg.Auth.AccessTokenTTL(), time.Hour)
	}
}

func TestLoad_Overrides(t *testing.T) {
	os.Clearenv()
	os.Setenv("APP_PORT", "9999")
	os.Setenv("UPLOAD_MAX_BYTES", "1048576")
	os.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "5")
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	if cfg.App.Port != "9999" {
		t.Errorf("App.Port = %q, want %q", cfg.App.Port, "9999")
	}
	if cfg.Storage.MaxUploadBytes != 1<<20 {
		t.Errorf("MaxUploadBytes = %d, want %d", cfg.Storage.MaxUploadBytes, 1<<20)
	}
	if cfg.App.RequestTimeout() != 5*time.Second {
		t.Errorf("RequestTimeout() = %v, want %v", cfg.App.RequestTimeout(), 5*time.Second)
	}
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	os.Clearenv()
	os.Setenv("UPLOAD_MAX_BYTES", "not-a-number")
	defer os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}
	if cfg.Storage.MaxUploadBytes != 5<<20 {
		t.Errorf("MaxUploadBytes = %d, want default %d", cfg.Storage.MaxUploadBytes, 5<<20)
	}
}
