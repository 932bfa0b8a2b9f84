package dto

import "testing"

func TestLoginRequestCredentials(t *testing.T) {
	cases := []struct {
		name       string
		req        LoginRequest
		identifier string
		secret     string
	}{
		{"generic", LoginRequest{Identifier: "a", Secret: "b"}, "a", "b"},
		{"username", LoginRequest{Username: "emp1", Password: "pw"}, "emp1", "pw"},
		{"station", LoginRequest{Name: "Station A", Password: "pw"}, "Station A", "pw"},
		{"vehicle", LoginRequest{RegistrationNumber: "CAB-1234", EngineNumber: "ENG-1"}, "CAB-1234", "ENG-1"},
		{"generic wins", LoginRequest{Identifier: "a", Username: "b", Secret: "s", Password: "p"}, "a", "s"},
		{"empty", LoginRequest{}, "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, secret := tc.req.Credentials()
			if id != tc.identifier || secret != tc.secret {
				t.Fatalf("got %q/%q, want %q/%q", id, secret, tc.identifier, tc.secret)
			}
		})
	}
}
