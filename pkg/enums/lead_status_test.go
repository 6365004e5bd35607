package enums

import "testing"

func TestParseLeadStatus(t *testing.T) {
	status, err := ParseLeadStatus("proposal_sent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != LeadStatusProposalSent {
		t.Fatalf("unexpected status %s", status)
	}

	if _, err := ParseLeadStatus("bogus"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestFunnelIndexOrdering(t *testing.T) {
	last := -1
	for _, stage := range FunnelStages {
		idx := stage.FunnelIndex()
		if idx <= last {
			t.Fatalf("funnel ordering broken at %s", stage)
		}
		last = idx
	}
	if LeadStatusLost.FunnelIndex() != -1 {
		t.Fatal("lost must sit outside the funnel")
	}
}

func TestActiveStatuses(t *testing.T) {
	if !LeadStatusContacted.IsActive() {
		t.Fatal("contacted should count as active workload")
	}
	if LeadStatusConverted.IsActive() {
		t.Fatal("converted should not count as active workload")
	}
	if !LeadStatusConverted.IsTerminal() || !LeadStatusLost.IsTerminal() {
		t.Fatal("converted and lost are terminal")
	}
}
