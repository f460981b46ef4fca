package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.TestDataIndicator != "T" {
		t.Errorf("expected test indicator T, got %q", cfg.TestDataIndicator)
	}
	if cfg.SoftwareName != "GreatSoft" {
		t.Errorf("expected default software name, got %q", cfg.SoftwareName)
	}
	if cfg.PracticeNumber != "1517179642" {
		t.Errorf("expected default practice number, got %q", cfg.PracticeNumber)
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.ServerPort)
	}
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Setenv("SOFTWARE_NAME", "OtherSoft")
	t.Setenv("TEST_DATA_INDICATOR", "L")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SoftwareName != "OtherSoft" {
		t.Errorf("environment override ignored, got %q", cfg.SoftwareName)
	}
	if cfg.TestDataIndicator != "L" {
		t.Errorf("expected live indicator, got %q", cfg.TestDataIndicator)
	}
}

func TestLoadRejectsBadIndicator(t *testing.T) {
	t.Setenv("TEST_DATA_INDICATOR", "X")

	if _, err := Load(""); err == nil {
		t.Error("expected an error for an invalid test data indicator")
	}
}

func TestSubmitterAndEntity(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	sub := cfg.Submitter()
	if sub.SoftwareName != cfg.SoftwareName || sub.SecurityToken != cfg.SecurityToken {
		t.Errorf("submitter not assembled from config: %+v", sub)
	}

	ent := cfg.Entity()
	if ent.PracticeNumber != cfg.PracticeNumber || ent.Surname != cfg.EntitySurname {
		t.Errorf("entity not assembled from config: %+v", ent)
	}
}
