package intent

import "testing"

func TestClassify_Technical(t *testing.T) {
	c := NewClassifier()

	got := c.Classify(
		[]string{"kubernetes networking", "api gateway architecture"},
		"platform engineering developer teams",
	)

	if got.Label != "technical" {
		t.Fatalf("label = %q, want technical", got.Label)
	}
	if got.TargetReadability != 35 {
		t.Errorf("target = %d, want 35", got.TargetReadability)
	}
	if got.Confidence != "high" {
		t.Errorf("confidence = %q, want high", got.Confidence)
	}
}

func TestClassify_Consumer(t *testing.T) {
	c := NewClassifier()

	got := c.Classify([]string{"easy home cleaning tips"}, "busy families on a budget")

	if got.Label != "consumer" {
		t.Fatalf("label = %q, want consumer", got.Label)
	}
	if got.TargetReadability != 70 {
		t.Errorf("target = %d, want 70", got.TargetReadability)
	}
}

func TestClassify_MixedTechnicalConsumer(t *testing.T) {
	c := NewClassifier()

	got := c.Classify([]string{"beginner guide to api development"}, "")

	if got.Label != "mixed" {
		t.Fatalf("label = %q, want mixed", got.Label)
	}
	if got.TargetReadability != 60 {
		t.Errorf("target = %d, want 60", got.TargetReadability)
	}
	if got.Confidence != "medium" {
		t.Errorf("confidence = %q, want medium", got.Confidence)
	}
}

func TestClassify_EmotionalForOlderAdults(t *testing.T) {
	c := NewClassifier()

	got := c.Classify([]string{"coping with grief", "bereavement support"}, "seniors who recently lost a spouse")

	if got.Label != "emotional-older-adults" {
		t.Fatalf("label = %q, want emotional-older-adults", got.Label)
	}
	if got.TargetReadability != 58 {
		t.Errorf("target = %d, want 58", got.TargetReadability)
	}
}

func TestClassify_Younger(t *testing.T) {
	c := NewClassifier()

	got := c.Classify([]string{"study habits"}, "high school student teen readers")

	if got.Label != "younger" {
		t.Fatalf("label = %q, want younger", got.Label)
	}
	if got.TargetReadability != 75 {
		t.Errorf("target = %d, want 75", got.TargetReadability)
	}
}

func TestClassify_Professional(t *testing.T) {
	c := NewClassifier()

	got := c.Classify([]string{"regulatory compliance checklist"}, "enterprise audit stakeholders")

	if got.Label != "professional" {
		t.Fatalf("label = %q, want professional", got.Label)
	}
	if got.TargetReadability != 50 {
		t.Errorf("target = %d, want 50", got.TargetReadability)
	}
}

func TestClassify_DefaultWhenNoSignals(t *testing.T) {
	c := NewClassifier()

	got := c.Classify(nil, "")

	if got.Label != "general" {
		t.Fatalf("label = %q, want general", got.Label)
	}
	if got.TargetReadability != 55 {
		t.Errorf("target = %d, want 55", got.TargetReadability)
	}
	if got.Confidence != "medium" {
		t.Errorf("confidence = %q, want medium", got.Confidence)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	c := NewClassifier()
	kw := []string{"api design", "simple guide"}

	first := c.Classify(kw, "developers")
	second := c.Classify(kw, "developers")
	if first != second {
		t.Errorf("classification not deterministic: %+v vs %+v", first, second)
	}
}
