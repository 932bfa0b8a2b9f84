package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bootstrap.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	return path
}

func TestLoadBootstrap(t *testing.T) {
	path := writeSeed(t, `
admins:
  - username: root
    password: changeme
quotas:
  car: 50
  bus: 100
dmt:
  - registration_number: CAB-1234
    engine_number: ENG-1
    vehicle_type: car
    fuel_type: petrol
    owner_name: Nimal
`)
	b, err := LoadBootstrap(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(b.Admins) != 1 || b.Admins[0].Username != "root" {
		t.Fatalf("admins = %+v", b.Admins)
	}
	if b.Quotas["bus"] != 100 || b.Quotas["car"] != 50 {
		t.Fatalf("quotas = %+v", b.Quotas)
	}
	if len(b.DMT) != 1 || b.DMT[0].EngineNumber != "ENG-1" || b.DMT[0].OwnerName != "Nimal" {
		t.Fatalf("dmt = %+v", b.DMT)
	}
}

func TestLoadBootstrapEmptyPath(t *testing.T) {
	b, err := LoadBootstrap("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if b.Quotas == nil || len(b.Admins) != 0 {
		t.Fatalf("unexpected seed %+v", b)
	}
}

func TestLoadBootstrapRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"admin without password": "admins:\n  - username: root\n",
		"negative quota":         "quotas:\n  car: -1\n",
		"malformed yaml":         "admins: [",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadBootstrap(writeSeed(t, body)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
	if _, err := LoadBootstrap(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
