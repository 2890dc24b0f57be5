package repository

import "errors"

var (
	// ErrMemberNotFound возвращается, если участник организации не найден в БД.
	ErrMemberNotFound = errors.New("member not found")

	// ErrMemberExists возвращается при попытке повторно добавить участника с тем же id или email.
	ErrMemberExists = errors.New("member already exists")
)
