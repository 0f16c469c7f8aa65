package library

import (
	"errors"
	"testing"
)

func TestMarkRejectsInvalidInput(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		studentID string
		studName  string
		room      Room
	}{
		{name: "blank id", studentID: "", studName: "Rahul Mehta", room: RoomAC},
		{name: "whitespace id", studentID: "   ", studName: "Rahul Mehta", room: RoomAC},
		{name: "blank name", studentID: "S1002", studName: "", room: RoomAC},
		{name: "whitespace name", studentID: "S1002", studName: "  \t", room: RoomNonAC},
		{name: "unknown room", studentID: "S1002", studName: "Rahul Mehta", room: Room("Balcony")},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			store := NewStore(SeedAttendance())
			before := len(store.Records())

			_, err := store.Mark(test.studentID, test.studName, test.room)

			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Mark: got %v, want ValidationError", err)
			}
			if got := len(store.Records()); got != before {
				t.Errorf("log length changed on rejected mark: got %d, want %d", got, before)
			}
		})
	}
}

func TestMarkRejectsDuplicateStudent(t *testing.T) {
	t.Parallel()
	store := NewStore(SeedAttendance())

	// S1001 is already on the seeded log; a second check-in must not land,
	// even with a different name or room.
	_, err := store.Mark("S1001", "Aisha Kapoor", RoomNonAC)

	var dup DuplicateEntryError
	if !errors.As(err, &dup) {
		t.Fatalf("Mark: got %v, want DuplicateEntryError", err)
	}
	if dup.StudentID != "S1001" {
		t.Errorf("StudentID: got %q, want %q", dup.StudentID, "S1001")
	}
	if got := len(store.Records()); got != 2 {
		t.Errorf("log length: got %d, want 2", got)
	}
}

func TestMarkAppendsInOrder(t *testing.T) {
	t.Parallel()
	store := NewStore(SeedAttendance())

	rec, err := store.Mark("S1002", "Rahul Mehta", RoomAC)
	if err != nil {
		t.Fatalf("Mark: %v", err)
	}
	if rec.StudentID != "S1002" || rec.Name != "Rahul Mehta" || rec.Room != RoomAC {
		t.Errorf("record fields: got %+v", rec)
	}
	if rec.Timestamp == "" {
		t.Error("timestamp is empty")
	}

	records := store.Records()
	if len(records) != 3 {
		t.Fatalf("log length: got %d, want 3", len(records))
	}
	if records[2].StudentID != "S1002" {
		t.Errorf("insertion order broken: last record is %q", records[2].StudentID)
	}
}

func TestStatsAfterCheckIn(t *testing.T) {
	t.Parallel()
	roster := SeedRoster()
	store := NewStore(SeedAttendance())

	if _, err := store.Mark("S1002", "Rahul Mehta", RoomAC); err != nil {
		t.Fatalf("Mark: %v", err)
	}

	got := store.ComputeStats(roster)
	want := Stats{Present: 3, AC: 2, NonAC: 1, Absent: 5}
	if got != want {
		t.Errorf("stats: got %+v, want %+v", got, want)
	}

	absent := store.Absentees(roster)
	wantAbsent := []string{"S1004", "S1005", "S1006", "S1007", "S1008"}
	if len(absent) != len(wantAbsent) {
		t.Fatalf("absentees: got %d, want %d", len(absent), len(wantAbsent))
	}
	for i, stu := range absent {
		if stu.ID != wantAbsent[i] {
			t.Errorf("absentees[%d]: got %q, want %q", i, stu.ID, wantAbsent[i])
		}
	}
}

func TestPresentPlusAbsentMatchesRoster(t *testing.T) {
	t.Parallel()
	roster := SeedRoster()
	store := NewStore(nil)

	checkins := []struct {
		id   string
		name string
		room Room
	}{
		{"S1005", "Fatima Zahra", RoomAC},
		{"S1001", "Aisha Kapoor", RoomNonAC},
		{"S1008", "Hiroki Tanaka", RoomAC},
		{"S1003", "Lin Wei", RoomNonAC},
	}
	for _, ci := range checkins {
		if _, err := store.Mark(ci.id, ci.name, ci.room); err != nil {
			t.Fatalf("Mark(%s): %v", ci.id, err)
		}
		st := store.ComputeStats(roster)
		if st.Present+st.Absent != len(roster) {
			t.Fatalf("after %s: present %d + absent %d != roster %d", ci.id, st.Present, st.Absent, len(roster))
		}
		if st.AC+st.NonAC != st.Present {
			t.Fatalf("after %s: room counts %d+%d != present %d", ci.id, st.AC, st.NonAC, st.Present)
		}
	}
}

func TestAbsenteesDisjointFromPresent(t *testing.T) {
	t.Parallel()
	roster := SeedRoster()
	store := NewStore(SeedAttendance())

	present := make(map[string]struct{})
	for _, rec := range store.Records() {
		present[rec.StudentID] = struct{}{}
	}

	for _, stu := range store.Absentees(roster) {
		if !roster.Contains(stu.ID) {
			t.Errorf("absentee %q is not on the roster", stu.ID)
		}
		if _, ok := present[stu.ID]; ok {
			t.Errorf("absentee %q has an attendance record", stu.ID)
		}
	}
}
