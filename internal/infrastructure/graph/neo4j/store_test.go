package neo4j

import "testing"

func TestConceptIDNormalization(t *testing.T) {
	cases := []struct {
		term string
		want string
	}{
		{"Personal Data", "personal_data"},
		{"  data principal ", "data_principal"},
		{"consent", "consent"},
		{"Right to Erasure", "right_to_erasure"},
	}
	for _, tc := range cases {
		if got := conceptIDFor(tc.term); got != tc.want {
			t.Fatalf("conceptIDFor(%q) = %q, want %q", tc.term, got, tc.want)
		}
	}
}
