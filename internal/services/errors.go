// Package services defines the business logic for accounts, rooms and posts,
// profiles, the matching board, reactions and the champion gallery.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// Translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import "errors"

// Validation errors.
var (
	// ErrMissingField is returned when a required input is blank or zero.
	ErrMissingField = errors.New("missing required field")

	// ErrMissingFile is returned when an upload carries no file.
	ErrMissingFile = errors.New("no file uploaded")

	// ErrDisallowedFileType is returned when an upload's extension is not one
	// of png, jpg, jpeg or gif.
	ErrDisallowedFileType = errors.New("file type not allowed")

	// ErrInvalidReaction is returned for a reaction kind other than "like"
	// or "heart".
	ErrInvalidReaction = errors.New("invalid reaction")
)

// Conflict and permission errors.
var (
	// ErrDuplicateRoomName indicates that another room already uses the name.
	ErrDuplicateRoomName = errors.New("room name already exists")

	// ErrAlreadyLiked is returned when a user likes the same match post twice.
	ErrAlreadyLiked = errors.New("already liked")

	// ErrForbidden is returned when the caller may not perform the operation
	// (not the room creator, not the champion, not an admin).
	ErrForbidden = errors.New("forbidden")
)

// Lookup errors.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrRoomNotFound      = errors.New("room not found")
	ErrMatchPostNotFound = errors.New("match post not found")
)
