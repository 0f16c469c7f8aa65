package library

import (
	"strings"
	"sync"
	"time"
)

// Room is the occupancy preference a student reports at check-in.
type Room string

const (
	RoomAC    Room = "AC"
	RoomNonAC Room = "Non-AC"
)

// TimeLayout is the display format used for check-in timestamps.
const TimeLayout = "2006-01-02 15:04"

// Record is a single check-in: one per student per session, never mutated
// or deleted once written.
type Record struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	Room      Room   `json:"room"`
	Timestamp string `json:"timestamp"`
}

// Stats are the derived attendance counts. They are recomputed from the log
// on every read, never stored, so Present+Absent always equals the roster size.
type Stats struct {
	Present int `json:"present"`
	AC      int `json:"ac"`
	NonAC   int `json:"non_ac"`
	Absent  int `json:"absent"`
}

// Store is the in-memory attendance log. Append-only, insertion order
// preserved; at most one record per student id.
type Store struct {
	mu      sync.Mutex
	records []Record
	now     func() time.Time
}

// NewStore creates a store pre-populated with seed records.
func NewStore(seed []Record) *Store {
	s := &Store{now: time.Now}
	s.records = append(s.records, seed...)
	return s
}

// SeedAttendance returns the check-ins already on the log at startup.
func SeedAttendance() []Record {
	return []Record{
		{StudentID: "S1001", Name: "Aisha Kapoor", Room: RoomAC, Timestamp: "2024-05-20 08:30"},
		{StudentID: "S1003", Name: "Lin Wei", Room: RoomNonAC, Timestamp: "2024-05-20 08:45"},
	}
}

// Mark records a check-in. It fails with ValidationError on a blank id or
// name or an unknown room, and with DuplicateEntryError when the student id
// is already on the log. On success the log grows by exactly one record.
func (s *Store) Mark(studentID, name string, room Room) (Record, error) {
	studentID = strings.TrimSpace(studentID)
	name = strings.TrimSpace(name)
	if studentID == "" {
		return Record{}, ValidationError{Field: "student_id", Reason: "required"}
	}
	if name == "" {
		return Record{}, ValidationError{Field: "name", Reason: "required"}
	}
	if room != RoomAC && room != RoomNonAC {
		return Record{}, ValidationError{Field: "room", Reason: "must be AC or Non-AC"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.records {
		if rec.StudentID == studentID {
			return Record{}, DuplicateEntryError{StudentID: studentID}
		}
	}
	rec := Record{
		StudentID: studentID,
		Name:      name,
		Room:      room,
		Timestamp: s.now().Format(TimeLayout),
	}
	s.records = append(s.records, rec)
	return rec, nil
}

// Records returns a copy of the log in insertion order.
func (s *Store) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Absentees returns the roster members with no record on the log,
// preserving roster order.
func (s *Store) Absentees(roster Roster) []Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	return absentFrom(s.records, roster)
}

// ComputeStats derives the attendance counts from the current log. Both
// halves of the present/absent split come from the same view of the log, so
// Present+Absent always matches the roster size.
func (s *Store) ComputeStats(roster Roster) Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Stats{Present: len(s.records)}
	for _, rec := range s.records {
		switch rec.Room {
		case RoomAC:
			st.AC++
		case RoomNonAC:
			st.NonAC++
		}
	}
	st.Absent = len(absentFrom(s.records, roster))
	return st
}

func absentFrom(records []Record, roster Roster) []Student {
	present := make(map[string]struct{}, len(records))
	for _, rec := range records {
		present[rec.StudentID] = struct{}{}
	}
	absent := make([]Student, 0, len(roster))
	for _, stu := range roster {
		if _, ok := present[stu.ID]; !ok {
			absent = append(absent, stu)
		}
	}
	return absent
}
