package article

import "errors"

var (
	ErrArticleNotFound = errors.New("article not found")
	ErrVersionConflict = errors.New("article was modified concurrently")
	ErrBusy            = errors.New("article is locked by another operation, please try again")
)
