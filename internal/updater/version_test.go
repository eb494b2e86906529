package updater

import "testing"

func TestCompareVersions(t *testing.T) {
	cases := []struct {
		current, latest string
		want            int
	}{
		{"1.0.0", "1.0.1", -1},
		{"v1.0.0", "1.0.0", 0},
		{"2.1.0", "v2.0.9", 1},
		{"0.9.0", "1.0.0-rc.1", -1},
	}
	for _, tc := range cases {
		got, err := CompareVersions(tc.current, tc.latest)
		if err != nil {
			t.Errorf("CompareVersions(%q, %q): %v", tc.current, tc.latest, err)
			continue
		}
		if got != tc.want {
			t.Errorf("CompareVersions(%q, %q) = %d, want %d", tc.current, tc.latest, got, tc.want)
		}
	}
}

func TestCompareVersions_Invalid(t *testing.T) {
	if _, err := CompareVersions("dev", "1.0.0"); err == nil {
		t.Error("expected error for non-semver current version")
	}
}

func TestIsUpdateAvailable(t *testing.T) {
	available, err := IsUpdateAvailable("1.0.0", "1.1.0")
	if err != nil {
		t.Fatal(err)
	}
	if !available {
		t.Error("expected update to be available")
	}

	available, err = IsUpdateAvailable("1.1.0", "1.1.0")
	if err != nil {
		t.Fatal(err)
	}
	if available {
		t.Error("same version should not report an update")
	}
}
