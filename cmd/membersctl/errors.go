package main

import (
	"fmt"
	"strings"

	"members-service/internal/model"
)

func errInvalidRole(role string) error {
	names := make([]string, 0, len(model.Roles()))
	for _, r := range model.Roles() {
		names = append(names, r.String())
	}
	return fmt.Errorf("invalid --role %q: must be one of %s", role, strings.Join(names, ", "))
}
