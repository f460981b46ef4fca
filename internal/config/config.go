// Package config loads runtime settings from environment variables and an
// optional .env file. Defaults reproduce the constants the legacy capture
// tool embedded in its headers, so a bare environment still generates the
// historical GH/SE lines.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/jdlsoft/it3t-filing/internal/models"
)

// Config holds every tunable the filing tool reads from the environment.
type Config struct {
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	ServerPort  string `mapstructure:"SERVER_PORT"`
	OutputDir   string `mapstructure:"OUTPUT_DIR"`

	// TestDataIndicator is "T" for test files, "L" for live submissions.
	TestDataIndicator string `mapstructure:"TEST_DATA_INDICATOR"`

	SoftwareName     string `mapstructure:"SOFTWARE_NAME"`
	SoftwareVersion  string `mapstructure:"SOFTWARE_VERSION"`
	ContactFirstName string `mapstructure:"CONTACT_FIRST_NAME"`
	ContactLastName  string `mapstructure:"CONTACT_LAST_NAME"`
	ContactPhone1    string `mapstructure:"CONTACT_PHONE1"`
	ContactPhone2    string `mapstructure:"CONTACT_PHONE2"`
	ContactCell      string `mapstructure:"CONTACT_CELL"`
	ContactEmail     string `mapstructure:"CONTACT_EMAIL"`
	SecurityToken    string `mapstructure:"SECURITY_TOKEN"`

	EntityNature          string `mapstructure:"ENTITY_NATURE"`
	EntitySurname         string `mapstructure:"ENTITY_SURNAME"`
	EntityInitials        string `mapstructure:"ENTITY_INITIALS"`
	EntityFirstNames      string `mapstructure:"ENTITY_FIRST_NAMES"`
	EntityIDType          string `mapstructure:"ENTITY_ID_TYPE"`
	EntityIDNumber        string `mapstructure:"ENTITY_ID_NUMBER"`
	EntityCountry         string `mapstructure:"ENTITY_COUNTRY"`
	EntityMembershipNo    string `mapstructure:"ENTITY_MEMBERSHIP_NUMBER"`
	EntityControllingBody string `mapstructure:"ENTITY_CONTROLLING_BODY"`
	PracticeNumber        string `mapstructure:"PRACTICE_NUMBER"`
	EntityPostalLine1     string `mapstructure:"ENTITY_POSTAL_LINE1"`
	EntityPostalLine2     string `mapstructure:"ENTITY_POSTAL_LINE2"`
	EntityPostalLine3     string `mapstructure:"ENTITY_POSTAL_LINE3"`
	EntityPostalLine4     string `mapstructure:"ENTITY_POSTAL_LINE4"`
	EntityPostalCode      string `mapstructure:"ENTITY_POSTAL_CODE"`
	EntityPhone1          string `mapstructure:"ENTITY_PHONE1"`
	EntityPhone2          string `mapstructure:"ENTITY_PHONE2"`
	EntityEmail           string `mapstructure:"ENTITY_EMAIL"`
}

// Load reads configuration from the environment, after loading an optional
// .env file from path (ignored when absent).
func Load(path string) (Config, error) {
	if path != "" {
		_ = godotenv.Load(strings.TrimSuffix(path, "/") + "/.env")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("OUTPUT_DIR", "IT3(t)")
	v.SetDefault("TEST_DATA_INDICATOR", "T")

	v.SetDefault("SOFTWARE_NAME", "GreatSoft")
	v.SetDefault("SOFTWARE_VERSION", "2024.3.1")
	v.SetDefault("CONTACT_FIRST_NAME", "Karin")
	v.SetDefault("CONTACT_LAST_NAME", "Roux")
	v.SetDefault("CONTACT_PHONE1", "0123428393")
	v.SetDefault("CONTACT_PHONE2", "0606868076")
	v.SetDefault("CONTACT_CELL", "0823714777")
	v.SetDefault("CONTACT_EMAIL", "karin@rosspienaar.co.za")
	v.SetDefault("SECURITY_TOKEN", "9CD036C9-210F-40C5-91F7-82959AB269C02228AE14-53A7-4AC2-A539-A20D1D5654E6F4A52305-B91E-4435-B25E-46E38A528398D60DAB72-1C44-4490-99AF-FA572D3AFC69")

	v.SetDefault("ENTITY_NATURE", "INDIVIDUAL")
	v.SetDefault("ENTITY_SURNAME", "Pienaar")
	v.SetDefault("ENTITY_INITIALS", "DJ")
	v.SetDefault("ENTITY_FIRST_NAMES", "Daniel Jacobus")
	v.SetDefault("ENTITY_ID_TYPE", "001")
	v.SetDefault("ENTITY_ID_NUMBER", "6307205099081")
	v.SetDefault("ENTITY_COUNTRY", "ZA")
	v.SetDefault("ENTITY_MEMBERSHIP_NUMBER", "00212071")
	v.SetDefault("ENTITY_CONTROLLING_BODY", "SAICA")
	v.SetDefault("PRACTICE_NUMBER", "1517179642")
	v.SetDefault("ENTITY_POSTAL_LINE1", "PO BOX 35336")
	v.SetDefault("ENTITY_POSTAL_LINE2", "MENLOPARK")
	v.SetDefault("ENTITY_POSTAL_CODE", "0102")
	v.SetDefault("ENTITY_PHONE1", "0123428393")
	v.SetDefault("ENTITY_PHONE2", "0606868076")
	v.SetDefault("ENTITY_EMAIL", "tax@rosspienaar.co.za")

	// AutomaticEnv alone does not surface env values through Unmarshal;
	// each key needs an explicit binding.
	for _, key := range []string{
		"DATABASE_URL", "SERVER_PORT", "OUTPUT_DIR", "TEST_DATA_INDICATOR",
		"SOFTWARE_NAME", "SOFTWARE_VERSION",
		"CONTACT_FIRST_NAME", "CONTACT_LAST_NAME",
		"CONTACT_PHONE1", "CONTACT_PHONE2", "CONTACT_CELL", "CONTACT_EMAIL",
		"SECURITY_TOKEN",
		"ENTITY_NATURE", "ENTITY_SURNAME", "ENTITY_INITIALS", "ENTITY_FIRST_NAMES",
		"ENTITY_ID_TYPE", "ENTITY_ID_NUMBER", "ENTITY_COUNTRY",
		"ENTITY_MEMBERSHIP_NUMBER", "ENTITY_CONTROLLING_BODY", "PRACTICE_NUMBER",
		"ENTITY_POSTAL_LINE1", "ENTITY_POSTAL_LINE2", "ENTITY_POSTAL_LINE3",
		"ENTITY_POSTAL_LINE4", "ENTITY_POSTAL_CODE",
		"ENTITY_PHONE1", "ENTITY_PHONE2", "ENTITY_EMAIL",
	} {
		_ = v.BindEnv(key)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	switch cfg.TestDataIndicator {
	case "T", "L":
	default:
		return Config{}, fmt.Errorf("TEST_DATA_INDICATOR must be T or L, got %q", cfg.TestDataIndicator)
	}

	return cfg, nil
}

// Submitter assembles the GH header metadata from the configuration.
func (c Config) Submitter() models.Submitter {
	return models.Submitter{
		SoftwareName:     c.SoftwareName,
		SoftwareVersion:  c.SoftwareVersion,
		ContactFirstName: c.ContactFirstName,
		ContactLastName:  c.ContactLastName,
		Phone1:           c.ContactPhone1,
		Phone2:           c.ContactPhone2,
		CellNumber:       c.ContactCell,
		Email:            c.ContactEmail,
		SecurityToken:    c.SecurityToken,
	}
}

// Entity assembles the SE header metadata from the configuration.
func (c Config) Entity() models.SubmittingEntity {
	return models.SubmittingEntity{
		Nature:             c.EntityNature,
		Surname:            c.EntitySurname,
		Initials:           c.EntityInitials,
		FirstNames:         c.EntityFirstNames,
		IdentificationType: c.EntityIDType,
		IDNumber:           c.EntityIDNumber,
		PassportCountry:    c.EntityCountry,
		MembershipNumber:   c.EntityMembershipNo,
		ControllingBody:    c.EntityControllingBody,
		PracticeNumber:     c.PracticeNumber,
		PostalAddressLine1: c.EntityPostalLine1,
		PostalAddressLine2: c.EntityPostalLine2,
		PostalAddressLine3: c.EntityPostalLine3,
		PostalAddressLine4: c.EntityPostalLine4,
		PostalCode:         c.EntityPostalCode,
		Phone1:             c.EntityPhone1,
		Phone2:             c.EntityPhone2,
		Email:              c.EntityEmail,
	}
}
