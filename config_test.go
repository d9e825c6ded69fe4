package kafka

import "testing"

func TestNewConfigDefaults(t *testing.T) {
	c := NewConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("default config should validate, got: %s", err)
	}
	if c.Producer.Retry.Max != 4 {
		t.Errorf("default Retry.Max = %d, want 4", c.Producer.Retry.Max)
	}
	if c.Producer.RequiredAcks != WaitForLocal {
		t.Errorf("default RequiredAcks = %d, want WaitForLocal", c.Producer.RequiredAcks)
	}
}

func TestConfigValidateRejectsBadAcks(t *testing.T) {
	c := NewConfig()
	c.Producer.RequiredAcks = 7
	if err := c.Validate(); err == nil {
		t.Error("expected an error for an out-of-range RequiredAcks value")
	}
}

func TestConfigValidateRejectsEmptyClientID(t *testing.T) {
	c := NewConfig()
	c.ClientID = ""
	if err := c.Validate(); err == nil {
		t.Error("expected an error for an empty ClientID")
	}
}
