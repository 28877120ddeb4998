package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// Conventional ticket statuses. Status is free-form; only StatusOpen is
// assigned by the server.
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusClosed     = "closed"
)

// Owner records who created a ticket. The zero value is an unset owner,
// which is how tickets created before ownership tracking are represented.
type Owner struct {
	username string
	set      bool
}

// Unowned returns the unset owner.
func Unowned() Owner {
	return Owner{}
}

// OwnedBy returns an owner set to username.
func OwnedBy(username string) Owner {
	return Owner{username: username, set: true}
}

// OwnerFromNullable maps a nullable column value onto an Owner.
func OwnerFromNullable(username *string) Owner {
	if username == nil {
		return Unowned()
	}
	return OwnedBy(*username)
}

// IsUnset reports whether the ticket has no recorded creator.
func (o Owner) IsUnset() bool {
	return !o.set
}

// Username returns the creator's username and whether one is recorded.
func (o Owner) Username() (string, bool) {
	return o.username, o.set
}

// Nullable returns the owner as a nullable column value.
func (o Owner) Nullable() *string {
	if !o.set {
		return nil
	}
	username := o.username
	return &username
}

// IsOwnerOrUnset reports whether username may act as the ticket's owner.
func (o Owner) IsOwnerOrUnset(username string) bool {
	return !o.set || o.username == username
}

func (o Owner) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Nullable())
}

func (o *Owner) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Unowned()
		return nil
	}
	var username string
	if err := json.Unmarshal(data, &username); err != nil {
		return err
	}
	*o = OwnedBy(username)
	return nil
}

// Ticket is a support request.
type Ticket struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Assignee    *string   `json:"assignee"`
	CreatedBy   Owner     `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
