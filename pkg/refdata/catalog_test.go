package refdata

import (
	"reflect"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()

	def := catalog.Default()
	if def.ID != DefaultVersion {
		t.Fatalf("Wrong default version: Got %v\n", def.ID)
	}
	if def.MarkerContent != def.ID {
		t.Fatalf("Marker content must identify the version: Got %v\n", def.MarkerContent)
	}
	if len(def.Groups) == 0 {
		t.Fatal("Version group set must not be empty")
	}
	for _, g := range def.Groups {
		if len(def.Sources[g]) == 0 {
			t.Errorf("Group %v has no source trees\n", g)
		}
		for _, spec := range def.Sources[g] {
			if spec.DestPrefix[:len(g)] != string(g) {
				t.Errorf("Group %v dest prefix %q is outside its folder\n", g, spec.DestPrefix)
			}
		}
	}
}

func TestCatalogLookup(t *testing.T) {
	catalog := DefaultCatalog()

	v, err := catalog.Lookup(DefaultVersion)
	if err != nil {
		t.Fatalf("Failed to look up registered version: %v\n", err)
	}
	if v.ID != DefaultVersion {
		t.Fatalf("Expected %v, Got %v\n", DefaultVersion, v.ID)
	}
}

func TestCatalogLookupUnknown(t *testing.T) {
	catalog := DefaultCatalog()

	_, err := catalog.Lookup("9.9.9")
	unknown, ok := err.(*UnknownVersionError)
	if !ok {
		t.Fatalf("Expected *UnknownVersionError, Got %T: %v\n", err, err)
	}
	if unknown.ID != "9.9.9" {
		t.Fatalf("Error should carry the requested id, Got %v\n", unknown.ID)
	}
	if !reflect.DeepEqual(unknown.Known, catalog.VersionIDs()) {
		t.Fatalf("Error should list the supported versions, Got %v\n", unknown.Known)
	}
}

func TestCatalogIsInjectable(t *testing.T) {
	// Tests and importers supply their own catalogs; nothing global.
	custom := NewCatalog("test.1", ReferenceVersion{
		ID:            "test.1",
		SourceBucket:  "test-source",
		Groups:        []GroupName{GroupHG38},
		Sources:       map[GroupName][]CopySpec{GroupHG38: {{"src/", "hg38/"}}},
		MarkerContent: "test.1",
	})

	if custom.Default().ID != "test.1" {
		t.Fatalf("Wrong default: Got %v\n", custom.Default().ID)
	}
	if _, err := custom.Lookup(DefaultVersion); err == nil {
		t.Fatal("Custom catalog should not know the shipped release")
	}
}
