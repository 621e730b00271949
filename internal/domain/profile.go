package domain

// Profile is the composed, renderable public view of a user: display
// name, the day's habit statuses, and ordered cards and links. It is
// assembled on demand and never persisted.
type Profile struct {
	Username    string
	DisplayName string
	Habits      []HabitStatus
	Cards       []ProfileCard
	Links       []PublicLink
}
