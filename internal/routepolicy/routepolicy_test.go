package routepolicy

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClassify(t *testing.T) {
	policy := Default()

	tests := []struct {
		path       string
		needsUser  bool
		needsAdmin bool
	}{
		{"/", false, false},
		{"/products", false, false},
		{"/products/espresso", false, false},
		{"/auth/login", false, false},
		{"/cart", true, false},
		{"/cart/add", true, false},
		{"/checkout", true, false},
		{"/orders", true, false},
		{"/orders/123", true, false},
		{"/api/cart/count", true, false},
		{"/api/checkout", true, false},
		{"/admin", false, true},
		{"/admin/products", false, true},
		{"/api/admin/orders/update", false, true},
		{"/api/auth/login", false, false},
		{"/api/reviews/submit", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := policy.Classify(tt.path)
			if got.NeedsUser != tt.needsUser || got.NeedsAdmin != tt.needsAdmin {
				t.Errorf("Classify(%q) = %+v, want user=%v admin=%v",
					tt.path, got, tt.needsUser, tt.needsAdmin)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		policy  Policy
		wantErr bool
	}{
		{
			name:   "default policy is valid",
			policy: *Default(),
		},
		{
			name: "overlapping user and admin prefixes",
			policy: Policy{
				UserPrefixes:  []string{"/admin/orders"},
				AdminPrefixes: []string{"/admin"},
			},
			wantErr: true,
		},
		{
			name: "admin prefix under a user prefix",
			policy: Policy{
				UserPrefixes:  []string{"/cart"},
				AdminPrefixes: []string{"/cart/admin"},
			},
			wantErr: true,
		},
		{
			name: "empty prefix rejected",
			policy: Policy{
				UserPrefixes: []string{""},
			},
			wantErr: true,
		},
		{
			name: "prefix without leading slash rejected",
			policy: Policy{
				AdminPrefixes: []string{"admin"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.policy.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")

	content := `user_prefixes:
  - /cart
  - /orders
admin_prefixes:
  - /admin
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write policy file: %v", err)
	}

	policy, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if got := policy.Classify("/orders/5"); !got.NeedsUser {
		t.Error("expected /orders/5 to need a user session")
	}
	if got := policy.Classify("/checkout"); got.NeedsUser {
		t.Error("override removed /checkout from the user list")
	}
}

func TestLoadFile_RejectsOverlap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")

	content := `user_prefixes: ["/admin/orders"]
admin_prefixes: ["/admin"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write policy file: %v", err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Error("expected overlap error, got nil")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile("/nonexistent/policy.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}
