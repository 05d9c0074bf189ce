package domain

// Notification is a transient message shown to the viewer, the server side of
// a toast.
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
