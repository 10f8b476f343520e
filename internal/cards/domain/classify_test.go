package domain

import "testing"

func TestClassifyPriorityOrder(t *testing.T) {
	cases := []struct {
		name        string
		title       string
		description string
		want        ServiceType
	}{
		{"fast beats flytte", "Fast rengøring", "kunden skal flytte snart", ServiceFast},
		{"flytte", "Flytterengøring udført", "", ServiceFlyt},
		{"hoved", "", "Hovedrengøring af lejlighed", ServiceHoved},
		{"restaurant", "Restaurant Smagsløget", "", ServiceErhverv},
		{"kontor", "", "Ugentlig rengøring af kontor", ServiceErhverv},
		{"erhverv", "", "Erhvervsrengøring aftalt", ServiceErhverv},
		{"forretning", "", "Rengøring af forretning", ServiceErhverv},
		{"default", "Rengøring", "Almindelig rengøring hos kunde", ServicePrivat},
		{"empty text still classifies", "", "", ServicePrivat},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cls := Classify(tc.title, tc.description)
			if cls.Type != tc.want {
				t.Fatalf("Classify(%q, %q) = %s, want %s", tc.title, tc.description, cls.Type, tc.want)
			}
			if !cls.Type.IsKnown() {
				t.Fatalf("classification produced unknown type %q", cls.Type)
			}
			if cls.Name != tc.want.DisplayName() {
				t.Fatalf("name = %q, want %q", cls.Name, tc.want.DisplayName())
			}
		})
	}
}

func TestClassifyFirstTimeMarkers(t *testing.T) {
	cases := []struct {
		description string
		want        bool
	}{
		{"Fast rengøring #1, 45 m², 3 timer", true},
		{"Fast rengøring, første gang hos kunden", true},
		{"Fast rengøring, first time", true},
		{"Fast rengøring, grundig omgang", true},
		{"Fast rengøring #4, vedligeholdelse", false},
	}

	for _, tc := range cases {
		cls := Classify("", tc.description)
		if cls.Type != ServiceFast {
			t.Fatalf("Classify(%q) = %s, want %s", tc.description, cls.Type, ServiceFast)
		}
		if cls.IsFirstTime == nil {
			t.Fatalf("Classify(%q) left isFirstTime unset", tc.description)
		}
		if *cls.IsFirstTime != tc.want {
			t.Fatalf("Classify(%q) isFirstTime = %v, want %v", tc.description, *cls.IsFirstTime, tc.want)
		}
	}
}

func TestClassifyNonFastLeavesFirstTimeAbsent(t *testing.T) {
	cls := Classify("Hovedrengøring", "grundig omgang")
	if cls.IsFirstTime != nil {
		t.Fatalf("isFirstTime should be absent outside fast rengøring, got %v", *cls.IsFirstTime)
	}
}
