package refdata

import "testing"

func TestDeriveBucketIdentity(t *testing.T) {
	id, err := DeriveBucketIdentity("lab7", "us-west-2")
	if err != nil {
		t.Fatalf("Failed to derive identity: %v\n", err)
	}
	if id.Name != "lab7-omics-analysis-us-west-2" {
		t.Fatalf("Wrong bucket name: Got %v\n", id.Name)
	}
	if id.Region != "us-west-2" {
		t.Fatalf("Wrong region: Got %v\n", id.Region)
	}
}

func TestDeriveBucketIdentityRejectsBadNames(t *testing.T) {
	badPrefixes := []string{"", "Uppercase", "under_score", "-leading"}
	for _, prefix := range badPrefixes {
		if _, err := DeriveBucketIdentity(prefix, "us-west-2"); err == nil {
			t.Errorf("Prefix %q should have been rejected\n", prefix)
		}
	}
}

func TestValidateRejectsEmptyRegion(t *testing.T) {
	id := BucketIdentity{Name: "lab7-omics-analysis-us-west-2"}
	if err := id.Validate(); err == nil {
		t.Fatal("Empty region should have been rejected")
	}
}

func TestParseGroup(t *testing.T) {
	for _, g := range AllGroups {
		parsed, err := ParseGroup(string(g))
		if err != nil {
			t.Fatalf("Failed to parse %v: %v\n", g, err)
		}
		if parsed != g {
			t.Fatalf("Expected %v, Got %v\n", g, parsed)
		}
	}

	if _, err := ParseGroup("t2t"); err == nil {
		t.Fatal("Unknown group should have been rejected")
	}
}

func TestIncludedGroupsKeepsDeclaredOrder(t *testing.T) {
	v := DefaultCatalog().Default()
	included := v.IncludedGroups(ExclusionSet{GroupB37: true})

	if len(included) != 2 || included[0] != GroupHG38 || included[1] != GroupGIAB {
		t.Fatalf("Wrong group order: Got %v\n", included)
	}
}
