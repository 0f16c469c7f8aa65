package camera

import (
	"errors"
	"reflect"
	"testing"

	"librarydesk/internal/library"
)

func TestAddCamera(t *testing.T) {
	t.Parallel()
	roster := NewRoster(SeedCameras())
	before := roster.List()

	cam, err := roster.Add("Lobby South", "Entrance")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if cam.ID == "" {
		t.Error("generated id is empty")
	}
	for _, existing := range before {
		if cam.ID == existing.ID {
			t.Errorf("generated id %q collides with existing unit", cam.ID)
		}
	}
	if cam.Status != StatusOnline {
		t.Errorf("status: got %q, want %q", cam.Status, StatusOnline)
	}
	if cam.LastSeen == "" {
		t.Error("last seen is empty")
	}
	if got := len(roster.List()); got != len(before)+1 {
		t.Errorf("collection length: got %d, want %d", got, len(before)+1)
	}
}

func TestAddCameraRequiresName(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		camName string
	}{
		{name: "blank", camName: ""},
		{name: "whitespace", camName: "   "},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			roster := NewRoster(nil)
			_, err := roster.Add(test.camName, "Storage")
			var verr library.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Add: got %v, want ValidationError", err)
			}
			if got := len(roster.List()); got != 0 {
				t.Errorf("collection grew on rejected add: %d", got)
			}
		})
	}
}

func TestAddCameraPermitsDuplicateNames(t *testing.T) {
	t.Parallel()
	roster := NewRoster(nil)

	first, err := roster.Add("Reading Hall", "AC Room")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	second, err := roster.Add("Reading Hall", "AC Room")
	if err != nil {
		t.Fatalf("Add duplicate name: %v", err)
	}
	if first.ID == second.ID {
		t.Errorf("ids must differ: both %q", first.ID)
	}
}

func TestAddThenRemoveRoundTrip(t *testing.T) {
	t.Parallel()
	roster := NewRoster(SeedCameras())
	before := roster.List()

	cam, err := roster.Add("Temporary Unit", "Storage")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	roster.Remove(cam.ID)

	if got := roster.List(); !reflect.DeepEqual(got, before) {
		t.Errorf("add/remove pair changed the collection:\n got %+v\nwant %+v", got, before)
	}
}

func TestRemoveUnknownIDIsNoop(t *testing.T) {
	t.Parallel()
	roster := NewRoster(SeedCameras())
	before := roster.List()

	roster.Remove("cam-does-not-exist")
	roster.Remove("cam-does-not-exist")

	if got := roster.List(); !reflect.DeepEqual(got, before) {
		t.Errorf("removing an absent id changed the collection:\n got %+v\nwant %+v", got, before)
	}
}

func TestCountByStatus(t *testing.T) {
	t.Parallel()
	roster := NewRoster(SeedCameras())

	got := roster.CountByStatus()
	want := Counts{Online: 2, Offline: 1}
	if got != want {
		t.Errorf("counts: got %+v, want %+v", got, want)
	}
}
