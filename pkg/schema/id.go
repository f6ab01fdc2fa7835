package schema

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// NewPrincipalID generates a new principal ID in format user_{nanoid(12)}.
func NewPrincipalID() (string, error) {
	id, err := gonanoid.New(12)
	if err != nil {
		return "", err
	}
	return "user_" + id, nil
}

// NewMessageID generates a new chat message ID in format msg_{nanoid(10)}.
func NewMessageID() (string, error) {
	id, err := gonanoid.New(10)
	if err != nil {
		return "", err
	}
	return "msg_" + id, nil
}

// NewAssignmentID generates a new assignment ID in format asg_{nanoid(10)}.
func NewAssignmentID() (string, error) {
	id, err := gonanoid.New(10)
	if err != nil {
		return "", err
	}
	return "asg_" + id, nil
}

// NewNewsID generates a new news item ID in format news_{nanoid(10)}.
func NewNewsID() (string, error) {
	id, err := gonanoid.New(10)
	if err != nil {
		return "", err
	}
	return "news_" + id, nil
}
