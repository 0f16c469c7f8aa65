package library

// Student is a registered library member eligible to check in.
type Student struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Roster is the fixed list of registered students for the session.
// It is seed data: read-only after construction.
type Roster []Student

// Contains reports whether the roster has a student with the given id.
func (r Roster) Contains(id string) bool {
	for _, s := range r {
		if s.ID == id {
			return true
		}
	}
	return false
}

// SeedRoster returns the registered-student roster used at startup.
func SeedRoster() Roster {
	return Roster{
		{ID: "S1001", Name: "Aisha Kapoor"},
		{ID: "S1002", Name: "Rahul Mehta"},
		{ID: "S1003", Name: "Lin Wei"},
		{ID: "S1004", Name: "Carlos Mendez"},
		{ID: "S1005", Name: "Fatima Zahra"},
		{ID: "S1006", Name: "James Carter"},
		{ID: "S1007", Name: "Sarah Jenkins"},
		{ID: "S1008", Name: "Hiroki Tanaka"},
	}
}
