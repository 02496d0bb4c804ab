package pycforge

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClassifyKnownVersions(t *testing.T) {
	registry := NewRegistry()

	for _, short := range registry.Shorts() {
		t.Run(short, func(t *testing.T) {
			spec, err := registry.Classify(short)
			if err != nil {
				t.Fatalf("Classify(%q) returned error: %v", short, err)
			}

			if spec.Short != short {
				t.Errorf("expected Short %q, got %q", short, spec.Short)
			}
			if spec.Full == "" {
				t.Errorf("expected a full release identifier for %q", short)
			}

			switch spec.Era {
			case EraAncient, EraLegacy, EraLicensed, EraModern:
			default:
				t.Errorf("unexpected era %v for %q", spec.Era, short)
			}

			// Classification must be stable across calls.
			again, err := registry.Classify(short)
			if err != nil {
				t.Fatalf("second Classify(%q) returned error: %v", short, err)
			}
			if diff := cmp.Diff(spec, again); diff != "" {
				t.Errorf("Classify(%q) not stable (-first +second):\n%s", short, diff)
			}
		})
	}
}

func TestClassifyUnknownVersion(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Classify("9.9")
	if err == nil {
		t.Fatal("expected error for unknown version")
	}

	var unknown *UnknownVersionError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownVersionError, got %T: %v", err, err)
	}
	if unknown.Short != "9.9" {
		t.Errorf("expected Short \"9.9\", got %q", unknown.Short)
	}
}

func TestTarballNamesByEra(t *testing.T) {
	testCases := []struct {
		short   string
		tarball string
	}{
		{"0.9", "python0.9.1.tar.gz"},
		{"1.0", "python1.0.1.tar.gz"},
		{"1.2", "python-1.2.tar.gz"},
		{"1.6", "python-1.6.1.tar.gz"},
		{"2.7", "Python-2.7.18.tgz"},
		{"3.8", "Python-3.8.20.tgz"},
	}

	registry := NewRegistry()
	for _, tc := range testCases {
		t.Run(tc.short, func(t *testing.T) {
			spec, err := registry.Classify(tc.short)
			if err != nil {
				t.Fatalf("Classify(%q) returned error: %v", tc.short, err)
			}
			if got := spec.TarballName(); got != tc.tarball {
				t.Errorf("expected tarball %q, got %q", tc.tarball, got)
			}
		})
	}
}

func TestSourceURLsByEra(t *testing.T) {
	const (
		legacyHost = "https://legacy.example/src"
		modernHost = "https://modern.example/ftp"
	)

	testCases := []struct {
		short string
		url   string
	}{
		{"1.0", "https://legacy.example/src/python1.0.1.tar.gz"},
		{"1.2", "https://legacy.example/src/python-1.2.tar.gz"},
		{"1.6", ""},
		{"3.8", "https://modern.example/ftp/3.8.20/Python-3.8.20.tgz"},
	}

	registry := NewRegistry()
	for _, tc := range testCases {
		t.Run(tc.short, func(t *testing.T) {
			spec, err := registry.Classify(tc.short)
			if err != nil {
				t.Fatalf("Classify(%q) returned error: %v", tc.short, err)
			}
			if got := spec.SourceURL(legacyHost, modernHost); got != tc.url {
				t.Errorf("expected URL %q, got %q", tc.url, got)
			}
		})
	}
}

func TestInstallTarget(t *testing.T) {
	registry := NewRegistry()

	for _, short := range registry.Shorts() {
		spec, err := registry.Classify(short)
		if err != nil {
			t.Fatalf("Classify(%q) returned error: %v", short, err)
		}

		want := "install"
		if short == "3.0" {
			want = "fullinstall"
		}
		if got := spec.InstallTarget(); got != want {
			t.Errorf("InstallTarget for %s: expected %q, got %q", short, want, got)
		}
	}
}

func TestParseEra(t *testing.T) {
	for _, era := range []Era{EraAncient, EraLegacy, EraLicensed, EraModern} {
		parsed, err := ParseEra(era.String())
		if err != nil {
			t.Fatalf("ParseEra(%q) returned error: %v", era.String(), err)
		}
		if parsed != era {
			t.Errorf("ParseEra(%q) = %v, expected %v", era.String(), parsed, era)
		}
	}

	if _, err := ParseEra("antique"); err == nil {
		t.Error("expected error for unknown era name")
	}
}
