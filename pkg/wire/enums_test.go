package wire

import (
	"testing"
)

func TestPropertyTableSymmetry(t *testing.T) {
	for _, name := range PropertyNames() {
		p, err := ParseProperty(name)
		if err != nil {
			t.Errorf("ParseProperty(%q) failed: %v", name, err)
			continue
		}
		if p.String() != name {
			t.Errorf("Property %q round-tripped to %q", name, p.String())
		}
	}
}

func TestParsePropertyCaseInsensitive(t *testing.T) {
	p, err := ParseProperty("POWER")
	if err != nil {
		t.Fatalf("ParseProperty failed: %v", err)
	}
	if p != PropertyPower {
		t.Errorf("got %v, want PropertyPower", p)
	}

	if _, err := ParseProperty("voltage"); err == nil {
		t.Error("expected error for unknown property")
	}
}

func TestBackgroundPropertyNames(t *testing.T) {
	// bg_lmode is the one background name that does not follow the
	// bg_<prop> pattern.
	if PropertyBgColorMode.String() != "bg_lmode" {
		t.Errorf("PropertyBgColorMode = %q, want bg_lmode", PropertyBgColorMode.String())
	}
	if PropertyNightLightBright.String() != "nl_br" {
		t.Errorf("PropertyNightLightBright = %q, want nl_br", PropertyNightLightBright.String())
	}
}

func TestVocabularyParsers(t *testing.T) {
	if p, err := ParsePower("Off"); err != nil || p != PowerOff {
		t.Errorf("ParsePower(Off) = %v, %v", p, err)
	}
	if e, err := ParseEffect("SUDDEN"); err != nil || e != EffectSudden {
		t.Errorf("ParseEffect(SUDDEN) = %v, %v", e, err)
	}
	if a, err := ParseAdjustAction("circle"); err != nil || a != AdjustCircle {
		t.Errorf("ParseAdjustAction(circle) = %v, %v", a, err)
	}
	if c, err := ParseSceneClass("auto_delay_off"); err != nil || c != SceneAutoDelayOff {
		t.Errorf("ParseSceneClass(auto_delay_off) = %v, %v", c, err)
	}
	if m, err := ParsePowerMode("nightlight"); err != nil || m != ModeNightLight {
		t.Errorf("ParsePowerMode(nightlight) = %v, %v", m, err)
	}
	if a, err := ParseFlowAction("stay"); err != nil || a != FlowStay {
		t.Errorf("ParseFlowAction(stay) = %v, %v", a, err)
	}
}

func TestNumericVocabularyWireCodes(t *testing.T) {
	// These codes are fixed by the device firmware; a change here breaks
	// every deployed bulb.
	checks := []struct {
		param Param
		want  string
	}{
		{ModeNormal.Param(), "0"},
		{ModeNightLight.Param(), "5"},
		{CronPowerOff.Param(), "0"},
		{FlowRecover.Param(), "0"},
		{FlowOff.Param(), "2"},
		{MusicOn.Param(), "1"},
		{MusicOff.Param(), "0"},
	}
	for _, c := range checks {
		data, err := c.param.MarshalJSON()
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		if string(data) != c.want {
			t.Errorf("param rendered %s, want %s", data, c.want)
		}
	}
}
