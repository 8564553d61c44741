package annotate

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"custid/internal/identity/models"
	pstrings "custid/pkg/platform/strings"
)

// DefaultCapabilities describes the three known systems when no capability file is given.
// No system carries a consent signal by default.
func DefaultCapabilities() models.CapabilitySet {
	return models.CapabilitySet{
		models.SourceStorefront: {
			Identifiers:   []models.IdentifierType{models.IdentifierEmail, models.IdentifierPhone},
			ExportFormat:  formatPtr(models.PortabilityJSON),
			RetentionDays: intPtr(2555),
			Erasable:      true,
			Consent:       models.ConsentUnknown,
		},
		models.SourceBookings: {
			Identifiers:   []models.IdentifierType{models.IdentifierEmail, models.IdentifierPhone},
			ExportFormat:  formatPtr(models.PortabilityCSV),
			RetentionDays: intPtr(365),
			Erasable:      true,
			Consent:       models.ConsentUnknown,
		},
		models.SourceSupport: {
			Identifiers:   []models.IdentifierType{models.IdentifierPhone},
			RetentionDays: intPtr(730),
			Erasable:      true,
			Consent:       models.ConsentUnknown,
		},
	}
}

// capabilityFile is the YAML shape of a capability override file:
//
//	sources:
//	  support:
//	    identifiers: [phone]
//	    retention_days: 730
//	    erasable: true
//	    consent: IMPLICIT
type capabilityFile struct {
	Sources map[string]sourceEntry `yaml:"sources"`
}

type sourceEntry struct {
	Identifiers   []string `yaml:"identifiers"`
	ExportFormat  string   `yaml:"export_format,omitempty"`
	RetentionDays *int     `yaml:"retention_days,omitempty"`
	Erasable      bool     `yaml:"erasable"`
	Consent       string   `yaml:"consent,omitempty"`
}

// LoadCapabilitiesFile reads a capability file. An empty path returns the defaults.
func LoadCapabilitiesFile(path string) (models.CapabilitySet, error) {
	if path == "" {
		return DefaultCapabilities(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read capability file: %w", err)
	}
	return LoadCapabilities(bytes.NewReader(data))
}

// LoadCapabilities parses capability overrides. Systems named in the file replace their
// defaults entirely; systems not named keep them.
func LoadCapabilities(r io.Reader) (models.CapabilitySet, error) {
	var file capabilityFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse capability YAML: %w", err)
	}

	caps := DefaultCapabilities()
	for name, entry := range file.Sources {
		sys := models.SourceSystem(name)
		if !sys.IsValid() {
			return nil, fmt.Errorf("unknown source system %q", name)
		}
		c, err := entry.toCapabilities()
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", name, err)
		}
		caps[sys] = c
	}
	return caps, nil
}

func (e sourceEntry) toCapabilities() (models.SourceCapabilities, error) {
	c := models.SourceCapabilities{
		Erasable: e.Erasable,
		Consent:  models.ConsentUnknown,
	}
	for _, raw := range pstrings.DedupeAndTrim(e.Identifiers) {
		switch it := models.IdentifierType(raw); it {
		case models.IdentifierEmail, models.IdentifierPhone:
			c.Identifiers = append(c.Identifiers, it)
		default:
			return c, fmt.Errorf("unknown identifier type %q", raw)
		}
	}
	if e.ExportFormat != "" {
		switch f := models.PortabilityFormat(e.ExportFormat); f {
		case models.PortabilityJSON, models.PortabilityCSV:
			c.ExportFormat = &f
		default:
			return c, fmt.Errorf("unknown export format %q", e.ExportFormat)
		}
	}
	if e.RetentionDays != nil {
		if *e.RetentionDays < 0 {
			return c, fmt.Errorf("retention_days must not be negative")
		}
		days := *e.RetentionDays
		c.RetentionDays = &days
	}
	if e.Consent != "" {
		switch s := models.ConsentStatus(e.Consent); s {
		case models.ConsentUnknown, models.ConsentImplicit, models.ConsentExplicit:
			c.Consent = s
		default:
			return c, fmt.Errorf("unknown consent status %q", e.Consent)
		}
	}
	return c, nil
}

func formatPtr(f models.PortabilityFormat) *models.PortabilityFormat {
	return &f
}

func intPtr(v int) *int {
	return &v
}
